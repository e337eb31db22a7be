package redis

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/navs/internal/domain"
)

// SaveGroups stores groups in Redis (bulk operation)
func (s *Store) SaveGroups(ctx context.Context, groups []*domain.Group) error {
	if err := saveMany(ctx, s.client, AllGroupsKey(), groups, groupName, GroupKey); err != nil {
		return fmt.Errorf("failed to save groups: %w", err)
	}
	return nil
}

// ListGroups retrieves all groups accepted by filter
func (s *Store) ListGroups(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	groups, err := loadAll[domain.Group](ctx, s.client, AllGroupsKey(), GroupKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	out := groups[:0]
	for _, g := range groups {
		if filter.Match(g) {
			out = append(out, g)
		}
	}
	return out, nil
}

// DeleteGroup removes a group from Redis
func (s *Store) DeleteGroup(ctx context.Context, name string) error {
	return deleteOne(ctx, s.client, AllGroupsKey(), GroupKey(name), name)
}

func groupName(g *domain.Group) string { return g.Name }
