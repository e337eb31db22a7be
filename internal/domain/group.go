package domain

import (
	"slices"
	"time"
)

// UngroupedName is the reserved name of the synthetic bucket holding links
// without a (known) group. It is never stored.
const UngroupedName = "ungrouped"

// Group is a named bucket of links that can nest under other groups.
//
// Nesting is expressed by name: a parent lists its children in Children.
// Names are resolved into parent pointers at assembly time, never stored.
type Group struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	Name              string     `json:"name"`
	CreationTimestamp time.Time  `json:"creationTimestamp"`
	DeletionTimestamp *time.Time `json:"deletionTimestamp,omitempty"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	DisplayName string `json:"displayName"`
	Priority    *int   `json:"priority,omitempty"`

	// ─────────────────────────────
	// Relationships
	// ─────────────────────────────

	// Children holds child group names, in declaration order.
	Children []string `json:"children,omitempty"`

	// Navs lists member link names.
	//
	// Deprecated: membership is carried by Link.GroupName. Navs is only read
	// when migrating old definition files.
	Navs []string `json:"navs,omitempty"`
}

// GroupFilter selects groups when listing from a store. A nil filter matches all.
type GroupFilter func(*Group) bool

// NewUngroupedGroup builds the synthetic ungrouped bucket.
func NewUngroupedGroup() *Group {
	return &Group{
		Name:        UngroupedName,
		DisplayName: "",
		Priority:    Int(0),
	}
}

// IsDeleting reports whether the group carries a deletion marker.
func (g *Group) IsDeleting() bool {
	return g.DeletionTimestamp != nil
}

// Clone returns a deep copy so callers can mutate it freely.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	if g.Priority != nil {
		p := *g.Priority
		c.Priority = &p
	}
	if g.DeletionTimestamp != nil {
		t := *g.DeletionTimestamp
		c.DeletionTimestamp = &t
	}
	c.Children = slices.Clone(g.Children)
	c.Navs = slices.Clone(g.Navs)
	return &c
}

func (g *Group) SortName() string            { return g.Name }
func (g *Group) SortPriority() *int          { return g.Priority }
func (g *Group) SortCreationTime() time.Time { return g.CreationTimestamp }

// Match applies a filter, treating nil as match-all.
func (f GroupFilter) Match(g *Group) bool {
	return f == nil || f(g)
}

// NotDeletingGroup is the filter used by every listing.
func NotDeletingGroup(g *Group) bool { return !g.IsDeleting() }
