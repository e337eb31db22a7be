package domain

import "strings"

// LinkQuery describes a paged link listing.
type LinkQuery struct {
	Keyword   string // matched case-insensitively against display name, description and URL
	GroupName string // exact group name; blank means any group
	Sort      Sort
	Page      int // 1-based; 0 disables paging
	Size      int // 0 disables paging
}

// Filter returns the predicate selecting links for the query.
func (q LinkQuery) Filter() LinkFilter {
	keyword := normalizeKeyword(q.Keyword)
	groupName := strings.TrimSpace(q.GroupName)
	return func(l *Link) bool {
		if groupName != "" && l.GroupName != groupName {
			return false
		}
		if keyword == "" {
			return true
		}
		return containsFold(l.DisplayName, keyword) ||
			containsFold(l.Description, keyword) ||
			containsFold(l.URL, keyword)
	}
}

// GroupQuery describes a paged group listing.
type GroupQuery struct {
	Keyword string // matched case-insensitively against display name
	Sort    Sort
	Page    int
	Size    int
}

// Filter returns the predicate selecting groups for the query.
func (q GroupQuery) Filter() GroupFilter {
	keyword := normalizeKeyword(q.Keyword)
	return func(g *Group) bool {
		return keyword == "" || containsFold(g.DisplayName, keyword)
	}
}

func normalizeKeyword(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}

func containsFold(s, lowerSubstr string) bool {
	return strings.Contains(strings.ToLower(s), lowerSubstr)
}

// ListResult is one page of a listing.
type ListResult[T any] struct {
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	First       bool `json:"first"`
	Last        bool `json:"last"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
	Items       []T  `json:"items"`
}

// Paginate cuts one page out of items, which must already be sorted.
// A non-positive page or size returns everything as a single page.
func Paginate[T any](items []T, page, size int) *ListResult[T] {
	total := len(items)
	if page <= 0 || size <= 0 {
		if items == nil {
			items = []T{}
		}
		return &ListResult[T]{
			Total:      total,
			TotalPages: 1,
			First:      true,
			Last:       true,
			Items:      items,
		}
	}

	totalPages := total / size
	if total%size != 0 {
		totalPages++
	}

	// Past the end: checked by division so huge page or size values never
	// overflow the offset.
	start, end := total, total
	if page-1 <= total/size {
		start = (page - 1) * size
		end = start + min(size, total-start)
	}

	return &ListResult[T]{
		Page:        page,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		First:       page == 1,
		Last:        page >= totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		Items:       append([]T{}, items[start:end]...),
	}
}
