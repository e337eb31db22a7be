package domain

import (
	"testing"
	"time"
)

func TestGroupLinks_PartitionCompleteness(t *testing.T) {
	groups := []*Group{
		{Name: "dev", DisplayName: "Development", Priority: Int(1)},
		{Name: "media", DisplayName: "Media", Priority: Int(2)},
	}
	links := []*Link{
		{Name: "github", GroupName: "dev", Priority: Int(2)},
		{Name: "gitlab", GroupName: "dev", Priority: Int(1)},
		{Name: "jellyfin", GroupName: "media"},
		{Name: "loose", GroupName: ""},
		{Name: "spaces", GroupName: "   "},
		{Name: "orphan", GroupName: "missing"},
	}

	result := GroupLinks(groups, links, Comparator[*Link](nil))

	if len(result) != 3 {
		t.Fatalf("GroupLinks() returned %d buckets, want 3", len(result))
	}

	seen := make(map[string]int)
	for _, bucket := range result {
		for _, l := range bucket.Links {
			seen[l.Name]++
		}
	}
	for _, l := range links {
		if seen[l.Name] != 1 {
			t.Errorf("link %s appears %d times, want exactly once", l.Name, seen[l.Name])
		}
	}

	if got := linkNames(result[0].Links); !equalStrings(got, []string{"gitlab", "github"}) {
		t.Errorf("dev links = %v, want [gitlab github]", got)
	}
	if got := linkNames(result[2].Links); !equalStrings(got, []string{"loose", "orphan", "spaces"}) {
		t.Errorf("ungrouped links = %v, want [loose orphan spaces]", got)
	}
}

func TestGroupLinks_UngroupedIsLast(t *testing.T) {
	groups := []*Group{
		{Name: "late", Priority: Int(100), CreationTimestamp: baseTime.Add(time.Hour)},
		{Name: "early", Priority: Int(-5)},
	}
	SortBy(groups, Comparator[*Group](nil))

	result := GroupLinks(groups, nil, Comparator[*Link](nil))

	want := []string{"early", "late", UngroupedName}
	if len(result) != len(want) {
		t.Fatalf("GroupLinks() returned %d buckets, want %d", len(result), len(want))
	}
	for i, name := range want {
		if result[i].Group.Name != name {
			t.Errorf("bucket[%d] = %s, want %s", i, result[i].Group.Name, name)
		}
		if result[i].Links == nil {
			t.Errorf("bucket[%d] links is nil, want empty slice", i)
		}
	}

	bucket := result[len(result)-1].Group
	if bucket.DisplayName != "" || bucket.Priority == nil || *bucket.Priority != 0 {
		t.Errorf("ungrouped bucket = %+v, want blank display name and priority 0", bucket)
	}
}

func TestGroupLinks_EmptyInput(t *testing.T) {
	result := GroupLinks(nil, nil, Comparator[*Link](nil))
	if len(result) != 1 || result[0].Group.Name != UngroupedName {
		t.Fatalf("GroupLinks(nil, nil) = %v, want only the ungrouped bucket", result)
	}
	if len(result[0].Links) != 0 {
		t.Errorf("ungrouped links = %d, want 0", len(result[0].Links))
	}
}

func TestGroupLinks_ReservedNameIsSkipped(t *testing.T) {
	groups := []*Group{{Name: UngroupedName, DisplayName: "impostor"}}
	links := []*Link{{Name: "a", GroupName: UngroupedName}}

	result := GroupLinks(groups, links, Comparator[*Link](nil))

	if len(result) != 1 {
		t.Fatalf("GroupLinks() returned %d buckets, want 1", len(result))
	}
	if result[0].Group.DisplayName != "" {
		t.Errorf("bucket display name = %q, want the synthetic bucket", result[0].Group.DisplayName)
	}
	if len(result[0].Links) != 1 {
		t.Errorf("ungrouped links = %d, want 1", len(result[0].Links))
	}
}

func TestGroupLinks_FreshBucketPerCall(t *testing.T) {
	first := GroupLinks(nil, nil, Comparator[*Link](nil))
	second := GroupLinks(nil, nil, Comparator[*Link](nil))
	if first[0].Group == second[0].Group {
		t.Error("ungrouped bucket was shared between calls")
	}
}

func TestFilterLinksByGroup(t *testing.T) {
	links := []*Link{
		{Name: "b", GroupName: "g1"},
		{Name: "a", GroupName: "g1"},
		{Name: "c", GroupName: "g2"},
		{Name: "d"},
	}

	tests := []struct {
		name  string
		group string
		want  []string
	}{
		{name: "named group", group: "g1", want: []string{"a", "b"}},
		{name: "other group", group: "g2", want: []string{"c"}},
		{name: "blank selects ungrouped", group: "", want: []string{"d"}},
		{name: "unknown group", group: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := linkNames(FilterLinksByGroup(links, tt.group, Comparator[*Link](nil)))
			if !equalStrings(got, tt.want) {
				t.Errorf("FilterLinksByGroup(%q) = %v, want %v", tt.group, got, tt.want)
			}
		})
	}
}
