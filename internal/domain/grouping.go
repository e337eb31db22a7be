package domain

import (
	"strings"
	"time"
)

// GroupWithLinks is a group together with the links it owns, sorted.
type GroupWithLinks struct {
	Group *Group  `json:"group"`
	Links []*Link `json:"links"`
}

func (g *GroupWithLinks) SortName() string            { return g.Group.Name }
func (g *GroupWithLinks) SortPriority() *int          { return g.Group.Priority }
func (g *GroupWithLinks) SortCreationTime() time.Time { return g.Group.CreationTimestamp }

// GroupLinks partitions links by owning group.
//
// groups must already be in display order; the result keeps that order and
// appends the ungrouped bucket last. The bucket takes links with a blank
// group name and links naming a group absent from groups, so every link ends
// up in exactly one bucket. A stored group using the reserved ungrouped name
// is skipped.
func GroupLinks(groups []*Group, links []*Link, order Rule[*Link]) []*GroupWithLinks {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.Name == UngroupedName {
			continue
		}
		known[g.Name] = true
	}

	byGroup := make(map[string][]*Link, len(known))
	var ungrouped []*Link
	for _, l := range links {
		if l.IsUngrouped() || !known[l.GroupName] {
			ungrouped = append(ungrouped, l)
			continue
		}
		byGroup[l.GroupName] = append(byGroup[l.GroupName], l)
	}

	result := make([]*GroupWithLinks, 0, len(known)+1)
	for _, g := range groups {
		if g.Name == UngroupedName {
			continue
		}
		result = append(result, newGroupWithLinks(g, byGroup[g.Name], order))
	}
	return append(result, newGroupWithLinks(NewUngroupedGroup(), ungrouped, order))
}

func newGroupWithLinks(g *Group, links []*Link, order Rule[*Link]) *GroupWithLinks {
	sorted := make([]*Link, len(links))
	copy(sorted, links)
	SortBy(sorted, order)
	return &GroupWithLinks{Group: g, Links: sorted}
}

// FilterLinksByGroup returns the links whose group name equals groupName,
// sorted. A blank groupName selects the links that name no group.
func FilterLinksByGroup(links []*Link, groupName string, order Rule[*Link]) []*Link {
	blank := strings.TrimSpace(groupName) == ""
	out := make([]*Link, 0)
	for _, l := range links {
		if (blank && l.IsUngrouped()) || (!blank && l.GroupName == groupName) {
			out = append(out, l)
		}
	}
	SortBy(out, order)
	return out
}
