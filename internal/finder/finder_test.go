package finder

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
)

type failingReader struct{ err error }

func (r failingReader) ListLinks(context.Context, domain.LinkFilter) ([]*domain.Link, error) {
	return nil, r.err
}

func (r failingReader) ListGroups(context.Context, domain.GroupFilter) ([]*domain.Group, error) {
	return nil, r.err
}

func newFinder(links []*domain.Link, groups []*domain.Group) *Finder {
	idx := index.NewMemoryIndex()
	idx.Replace(links, groups)
	return New(idx, logger.NewNop())
}

func names[T domain.Sortable](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.SortName())
	}
	return out
}

func sameNames(got, want []string) bool {
	return strings.Join(got, ",") == strings.Join(want, ",")
}

var (
	now     = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	removed = now.Add(-time.Hour)
)

func fixture() ([]*domain.Link, []*domain.Group) {
	links := []*domain.Link{
		{Name: "grafana", DisplayName: "Grafana", URL: "https://grafana.lan", GroupName: "monitoring", Priority: domain.Int(2), CreationTimestamp: now},
		{Name: "prometheus", DisplayName: "Prometheus", URL: "https://prom.lan", GroupName: "monitoring", Priority: domain.Int(1), CreationTimestamp: now},
		{Name: "jellyfin", DisplayName: "Jellyfin", URL: "https://jellyfin.lan", Description: "Movies", GroupName: "media", CreationTimestamp: now},
		{Name: "router", DisplayName: "Router", URL: "http://192.168.1.1", CreationTimestamp: now},
		{Name: "stale", DisplayName: "Stale", URL: "https://stale.lan", GroupName: "media", DeletionTimestamp: &removed},
	}
	groups := []*domain.Group{
		{Name: "home", DisplayName: "Home", Priority: domain.Int(0), Children: []string{"media", "monitoring"}, CreationTimestamp: now},
		{Name: "monitoring", DisplayName: "Monitoring", Priority: domain.Int(2), CreationTimestamp: now},
		{Name: "media", DisplayName: "Media", Priority: domain.Int(1), CreationTimestamp: now},
		{Name: "archive", DisplayName: "Archive", DeletionTimestamp: &removed},
	}
	return links, groups
}

func TestListLinksByGroup(t *testing.T) {
	f := newFinder(fixture())
	ctx := context.Background()

	tests := []struct {
		name  string
		group string
		sort  domain.Sort
		want  []string
	}{
		{name: "default order", group: "monitoring", want: []string{"prometheus", "grafana"}},
		{name: "priority descending", group: "monitoring", sort: domain.ParseSort([]string{"priority,desc"}), want: []string{"grafana", "prometheus"}},
		{name: "soft-deleted links are hidden", group: "media", want: []string{"jellyfin"}},
		{name: "blank group", group: "", want: []string{"router"}},
		{name: "unknown group", group: "nope", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ListLinksByGroup(ctx, tt.group, tt.sort)
			if err != nil {
				t.Fatalf("ListLinksByGroup() error = %v", err)
			}
			if !sameNames(names(got), tt.want) {
				t.Errorf("ListLinksByGroup(%q) = %v, want %v", tt.group, names(got), tt.want)
			}
		})
	}
}

func TestGroupWithLinks(t *testing.T) {
	f := newFinder(fixture())

	got, err := f.GroupWithLinks(context.Background())
	if err != nil {
		t.Fatalf("GroupWithLinks() error = %v", err)
	}

	if want := []string{"home", "media", "monitoring", domain.UngroupedName}; !sameNames(names(got), want) {
		t.Fatalf("buckets = %v, want %v", names(got), want)
	}
	if len(got[0].Links) != 0 {
		t.Errorf("home links = %v, want none", names(got[0].Links))
	}
	if !sameNames(names(got[2].Links), []string{"prometheus", "grafana"}) {
		t.Errorf("monitoring links = %v", names(got[2].Links))
	}
	if !sameNames(names(got[3].Links), []string{"router"}) {
		t.Errorf("ungrouped links = %v", names(got[3].Links))
	}
}

func TestListAllGroups(t *testing.T) {
	f := newFinder(fixture())

	got, err := f.ListAllGroups(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListAllGroups() error = %v", err)
	}
	if want := []string{"home", "media", "monitoring"}; !sameNames(names(got), want) {
		t.Errorf("ListAllGroups() = %v, want %v", names(got), want)
	}
}

func TestListGroupsAsTree(t *testing.T) {
	f := newFinder(fixture())
	ctx := context.Background()

	roots, err := f.ListGroupsAsTree(ctx, "")
	if err != nil {
		t.Fatalf("ListGroupsAsTree() error = %v", err)
	}
	if !sameNames(names(roots), []string{"home"}) {
		t.Fatalf("roots = %v, want [home]", names(roots))
	}
	if !sameNames(names(roots[0].Children), []string{"media", "monitoring"}) {
		t.Errorf("home children = %v", names(roots[0].Children))
	}

	sub, err := f.ListGroupsAsTree(ctx, "media")
	if err != nil {
		t.Fatalf("ListGroupsAsTree() error = %v", err)
	}
	if len(sub) != 1 || sub[0].ParentName != "home" {
		t.Errorf("ListGroupsAsTree(media) = %v", names(sub))
	}

	none, err := f.ListGroupsAsTree(ctx, "archive")
	if err != nil {
		t.Fatalf("ListGroupsAsTree() error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("soft-deleted root returned %v", names(none))
	}
}

func TestTreeReportsCycles(t *testing.T) {
	f := newFinder(nil, []*domain.Group{
		{Name: "a", Children: []string{"b"}},
		{Name: "b", Children: []string{"a"}},
	})

	forest, err := f.Tree(context.Background(), "")
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if len(forest.Cycles) != 1 {
		t.Errorf("cycles = %v, want one", forest.Cycles)
	}
	if len(forest.Nodes) != 1 {
		t.Errorf("roots = %v, want one", names(forest.Nodes))
	}
}

func TestListLinks(t *testing.T) {
	f := newFinder(fixture())
	ctx := context.Background()

	tests := []struct {
		name      string
		query     domain.LinkQuery
		want      []string
		wantTotal int
	}{
		{name: "everything live", query: domain.LinkQuery{}, want: []string{"jellyfin", "router", "prometheus", "grafana"}, wantTotal: 4},
		{name: "keyword on description", query: domain.LinkQuery{Keyword: "movies"}, want: []string{"jellyfin"}, wantTotal: 1},
		{name: "keyword on url", query: domain.LinkQuery{Keyword: "192.168"}, want: []string{"router"}, wantTotal: 1},
		{name: "group filter", query: domain.LinkQuery{GroupName: "monitoring"}, want: []string{"prometheus", "grafana"}, wantTotal: 2},
		{name: "paged", query: domain.LinkQuery{Page: 2, Size: 3}, want: []string{"grafana"}, wantTotal: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.ListLinks(ctx, tt.query)
			if err != nil {
				t.Fatalf("ListLinks() error = %v", err)
			}
			if !sameNames(names(res.Items), tt.want) {
				t.Errorf("items = %v, want %v", names(res.Items), tt.want)
			}
			if res.Total != tt.wantTotal {
				t.Errorf("total = %d, want %d", res.Total, tt.wantTotal)
			}
		})
	}
}

func TestListGroups(t *testing.T) {
	f := newFinder(fixture())

	res, err := f.ListGroups(context.Background(), domain.GroupQuery{Keyword: "MO"})
	if err != nil {
		t.Fatalf("ListGroups() error = %v", err)
	}
	if !sameNames(names(res.Items), []string{"monitoring"}) {
		t.Errorf("ListGroups() = %v, want [monitoring]", names(res.Items))
	}
}

func TestReaderFailure(t *testing.T) {
	boom := errors.New("connection refused")
	f := New(failingReader{err: boom}, logger.NewNop())
	ctx := context.Background()

	calls := map[string]func() error{
		"ListLinksByGroup": func() error { _, err := f.ListLinksByGroup(ctx, "g", nil); return err },
		"GroupWithLinks":   func() error { _, err := f.GroupWithLinks(ctx); return err },
		"ListAllGroups":    func() error { _, err := f.ListAllGroups(ctx, nil); return err },
		"ListGroupsAsTree": func() error { _, err := f.ListGroupsAsTree(ctx, ""); return err },
		"ListLinks":        func() error { _, err := f.ListLinks(ctx, domain.LinkQuery{}); return err },
		"ListGroups":       func() error { _, err := f.ListGroups(ctx, domain.GroupQuery{}); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, boom) {
				t.Errorf("%s() error = %v, want wrapped %v", name, err, boom)
			}
		})
	}
}

func TestRepeatedCallsAreIdempotent(t *testing.T) {
	f := newFinder(fixture())
	ctx := context.Background()

	firstBuckets, err := f.GroupWithLinks(ctx)
	if err != nil {
		t.Fatalf("GroupWithLinks() error = %v", err)
	}
	secondBuckets, err := f.GroupWithLinks(ctx)
	if err != nil {
		t.Fatalf("GroupWithLinks() error = %v", err)
	}
	if !reflect.DeepEqual(firstBuckets, secondBuckets) {
		t.Errorf("GroupWithLinks() differs between calls: %v vs %v", names(firstBuckets), names(secondBuckets))
	}

	sort := domain.ParseSort([]string{"priority,desc"})
	firstGroups, err := f.ListAllGroups(ctx, sort)
	if err != nil {
		t.Fatalf("ListAllGroups() error = %v", err)
	}
	secondGroups, err := f.ListAllGroups(ctx, sort)
	if err != nil {
		t.Fatalf("ListAllGroups() error = %v", err)
	}
	if !reflect.DeepEqual(firstGroups, secondGroups) {
		t.Errorf("ListAllGroups() differs between calls: %v vs %v", names(firstGroups), names(secondGroups))
	}
}
