package index

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/store"
)

// MemoryIndex keeps links and groups in memory and serves every read.
// Records are copied on the way in and on the way out, so callers never
// share state with the index.
type MemoryIndex struct {
	mu         sync.RWMutex
	links      map[string]*domain.Link  // Name -> Link
	groups     map[string]*domain.Group // Name -> Group
	lastReload time.Time
}

var _ store.Store = (*MemoryIndex)(nil)

// NewMemoryIndex creates an empty memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		links:  make(map[string]*domain.Link),
		groups: make(map[string]*domain.Group),
	}
}

// Replace swaps the whole content of the index in one step.
func (idx *MemoryIndex) Replace(links []*domain.Link, groups []*domain.Group) {
	nextLinks := make(map[string]*domain.Link, len(links))
	for _, l := range links {
		nextLinks[l.Name] = l.Clone()
	}
	nextGroups := make(map[string]*domain.Group, len(groups))
	for _, g := range groups {
		nextGroups[g.Name] = g.Clone()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.links = nextLinks
	idx.groups = nextGroups
	idx.lastReload = time.Now()
}

// ─────────────────────────────────────────────────────────────────
// Reads
// ─────────────────────────────────────────────────────────────────

// ListLinks returns copies of the links accepted by filter.
func (idx *MemoryIndex) ListLinks(_ context.Context, filter domain.LinkFilter) ([]*domain.Link, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	links := make([]*domain.Link, 0, len(idx.links))
	for _, l := range idx.links {
		if filter.Match(l) {
			links = append(links, l.Clone())
		}
	}
	return links, nil
}

// ListGroups returns copies of the groups accepted by filter.
func (idx *MemoryIndex) ListGroups(_ context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	groups := make([]*domain.Group, 0, len(idx.groups))
	for _, g := range idx.groups {
		if filter.Match(g) {
			groups = append(groups, g.Clone())
		}
	}
	return groups, nil
}

// GetLink retrieves a link by name
func (idx *MemoryIndex) GetLink(name string) (*domain.Link, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	l, ok := idx.links[name]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// GetGroup retrieves a group by name
func (idx *MemoryIndex) GetGroup(name string) (*domain.Group, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	g, ok := idx.groups[name]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// LinkCount returns the number of links in the index
func (idx *MemoryIndex) LinkCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.links)
}

// GroupCount returns the number of groups in the index
func (idx *MemoryIndex) GroupCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.groups)
}

// GetLastReload returns the timestamp of the last Replace
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// ─────────────────────────────────────────────────────────────────
// Writes
// ─────────────────────────────────────────────────────────────────

// SaveLinks adds or updates links
func (idx *MemoryIndex) SaveLinks(_ context.Context, links []*domain.Link) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, l := range links {
		idx.links[l.Name] = l.Clone()
	}
	return nil
}

// SaveGroups adds or updates groups
func (idx *MemoryIndex) SaveGroups(_ context.Context, groups []*domain.Group) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, g := range groups {
		idx.groups[g.Name] = g.Clone()
	}
	return nil
}

// DeleteLink removes a link from the index
func (idx *MemoryIndex) DeleteLink(_ context.Context, name string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.links[name]; !ok {
		return store.ErrNotFound
	}
	delete(idx.links, name)
	return nil
}

// DeleteGroup removes a group from the index
func (idx *MemoryIndex) DeleteGroup(_ context.Context, name string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, ok := idx.groups[name]; !ok {
		return store.ErrNotFound
	}
	delete(idx.groups, name)
	return nil
}

// Ping always succeeds.
func (idx *MemoryIndex) Ping(context.Context) error { return nil }

// Close is a no-op.
func (idx *MemoryIndex) Close() error { return nil }
