// Package finder answers navigation queries. Every call takes a fresh
// snapshot from the reader and recomputes its result; nothing is cached.
package finder

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/store"
)

// Finder groups, orders and assembles links and groups read from a store.
type Finder struct {
	reader store.Reader
	log    logger.Logger
}

// New creates a Finder over reader.
func New(reader store.Reader, log logger.Logger) *Finder {
	return &Finder{reader: reader, log: log}
}

// ListLinksByGroup returns the live links of one group, sorted. A blank
// groupName selects the ungrouped links.
func (f *Finder) ListLinksByGroup(ctx context.Context, groupName string, sort domain.Sort) ([]*domain.Link, error) {
	links, err := f.links(ctx, nil)
	if err != nil {
		return nil, err
	}
	return domain.FilterLinksByGroup(links, groupName, domain.Comparator[*domain.Link](sort)), nil
}

// GroupWithLinks partitions every live link into its group. Groups come in
// group order; the ungrouped bucket is always last.
func (f *Finder) GroupWithLinks(ctx context.Context) ([]*domain.GroupWithLinks, error) {
	groups, err := f.ListAllGroups(ctx, nil)
	if err != nil {
		return nil, err
	}
	links, err := f.links(ctx, nil)
	if err != nil {
		return nil, err
	}
	return domain.GroupLinks(groups, links, domain.Comparator[*domain.Link](nil)), nil
}

// ListAllGroups returns every live group, sorted.
func (f *Finder) ListAllGroups(ctx context.Context, sort domain.Sort) ([]*domain.Group, error) {
	groups, err := f.groups(ctx, nil)
	if err != nil {
		return nil, err
	}
	domain.SortBy(groups, domain.Comparator[*domain.Group](sort))
	return groups, nil
}

// ListGroupsAsTree assembles the group hierarchy. An empty root returns every
// top-level node; otherwise only the named node, or nothing.
func (f *Finder) ListGroupsAsTree(ctx context.Context, root string) ([]*domain.GroupTreeNode, error) {
	forest, err := f.Tree(ctx, root)
	if err != nil {
		return nil, err
	}
	return forest.Nodes, nil
}

// Tree is ListGroupsAsTree with the broken parent cycles reported.
func (f *Finder) Tree(ctx context.Context, root string) (*domain.Forest, error) {
	groups, err := f.ListAllGroups(ctx, nil)
	if err != nil {
		return nil, err
	}

	forest := domain.BuildForest(groups, root)
	for _, cycle := range forest.Cycles {
		f.log.Warn("group hierarchy contains a cycle, detaching one member",
			logger.Strings("groups", cycle))
	}
	return forest, nil
}

// ListLinks returns one page of live links matching q.
func (f *Finder) ListLinks(ctx context.Context, q domain.LinkQuery) (*domain.ListResult[*domain.Link], error) {
	links, err := f.links(ctx, q.Filter())
	if err != nil {
		return nil, err
	}
	domain.SortBy(links, domain.Comparator[*domain.Link](q.Sort))
	return domain.Paginate(links, q.Page, q.Size), nil
}

// ListGroups returns one page of live groups matching q.
func (f *Finder) ListGroups(ctx context.Context, q domain.GroupQuery) (*domain.ListResult[*domain.Group], error) {
	groups, err := f.groups(ctx, q.Filter())
	if err != nil {
		return nil, err
	}
	domain.SortBy(groups, domain.Comparator[*domain.Group](q.Sort))
	return domain.Paginate(groups, q.Page, q.Size), nil
}

func (f *Finder) links(ctx context.Context, extra domain.LinkFilter) ([]*domain.Link, error) {
	links, err := f.reader.ListLinks(ctx, func(l *domain.Link) bool {
		return domain.NotDeletingLink(l) && extra.Match(l)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return links, nil
}

func (f *Finder) groups(ctx context.Context, extra domain.GroupFilter) ([]*domain.Group, error) {
	groups, err := f.reader.ListGroups(ctx, func(g *domain.Group) bool {
		return domain.NotDeletingGroup(g) && extra.Match(g)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}
