package domain

import (
	"strings"
	"time"
)

// Link represents a single navigation entry.
//
// A Link is uniquely identified by its Name. It belongs to at most one Group,
// referenced by name through GroupName. The reference is not enforced: a
// GroupName naming no existing group is treated as ungrouped when links are
// partitioned.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Name is the canonical unique identifier.
	Name string `json:"name"`

	// CreationTimestamp is the first time the link was stored.
	CreationTimestamp time.Time `json:"creationTimestamp"`

	// DeletionTimestamp marks a link as soft-deleted.
	// Soft-deleted links are hidden from listings and purged by the GC.
	DeletionTimestamp *time.Time `json:"deletionTimestamp,omitempty"`

	// ─────────────────────────────
	// Display
	// ─────────────────────────────

	// URL is the navigation target. Always present.
	URL string `json:"url"`

	// DisplayName is the label shown to users. Always present.
	DisplayName string `json:"displayName"`

	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`

	// ─────────────────────────────
	// Placement
	// ─────────────────────────────

	// Priority orders links inside a group. Nil sorts first.
	Priority *int `json:"priority,omitempty"`

	// GroupName is the name of the owning group. Blank means ungrouped.
	GroupName string `json:"groupName,omitempty"`
}

// LinkFilter selects links when listing from a store. A nil filter matches all.
type LinkFilter func(*Link) bool

// IsDeleting reports whether the link carries a deletion marker.
func (l *Link) IsDeleting() bool {
	return l.DeletionTimestamp != nil
}

// IsUngrouped reports whether the link names no group.
func (l *Link) IsUngrouped() bool {
	return strings.TrimSpace(l.GroupName) == ""
}

// Clone returns a deep copy so callers can mutate it freely.
func (l *Link) Clone() *Link {
	if l == nil {
		return nil
	}
	c := *l
	if l.Priority != nil {
		p := *l.Priority
		c.Priority = &p
	}
	if l.DeletionTimestamp != nil {
		t := *l.DeletionTimestamp
		c.DeletionTimestamp = &t
	}
	return &c
}

func (l *Link) SortName() string            { return l.Name }
func (l *Link) SortPriority() *int          { return l.Priority }
func (l *Link) SortCreationTime() time.Time { return l.CreationTimestamp }

// Match applies a filter, treating nil as match-all.
func (f LinkFilter) Match(l *Link) bool {
	return f == nil || f(l)
}

// NotDeletingLink is the filter used by every listing.
func NotDeletingLink(l *Link) bool { return !l.IsDeleting() }

// Int returns a pointer to v. Handy for optional priorities.
func Int(v int) *int { return &v }
