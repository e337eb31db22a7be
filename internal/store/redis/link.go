package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/navs/internal/domain"
)

// SaveLinks stores links in Redis (bulk operation)
func (s *Store) SaveLinks(ctx context.Context, links []*domain.Link) error {
	if err := saveMany(ctx, s.client, AllLinksKey(), links, linkName, LinkKey); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// ListLinks retrieves all links accepted by filter
func (s *Store) ListLinks(ctx context.Context, filter domain.LinkFilter) ([]*domain.Link, error) {
	links, err := loadAll[domain.Link](ctx, s.client, AllLinksKey(), LinkKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	out := links[:0]
	for _, l := range links {
		if filter.Match(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// DeleteLink removes a link from Redis
func (s *Store) DeleteLink(ctx context.Context, name string) error {
	return deleteOne(ctx, s.client, AllLinksKey(), LinkKey(name), name)
}

func linkName(l *domain.Link) string { return l.Name }
