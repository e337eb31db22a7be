package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Sort fields accepted from callers. Anything else is ignored.
const (
	FieldCreationTimestamp = "creationTimestamp"
	FieldPriority          = "priority"
)

// Sortable is implemented by every entity the ordering rules apply to.
type Sortable interface {
	SortName() string
	SortPriority() *int
	SortCreationTime() time.Time
}

// Direction of a requested sort key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Order is a single requested sort key.
type Order struct {
	Field     string
	Direction Direction
}

// Sort is an ordered list of requested sort keys, highest precedence first.
type Sort []Order

// ParseSort parses query values of the form "field", "field,asc" or
// "field,desc". Fields outside the whitelist are dropped, a repeated field
// keeps its first occurrence, and an unknown direction means ascending.
func ParseSort(values []string) Sort {
	var s Sort
	seen := make(map[string]bool, 2)
	for _, raw := range values {
		parts := strings.Split(raw, ",")
		field := strings.TrimSpace(parts[0])
		if !isSortField(field) || seen[field] {
			continue
		}
		dir := Ascending
		if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			dir = Descending
		}
		seen[field] = true
		s = append(s, Order{Field: field, Direction: dir})
	}
	return s
}

func isSortField(field string) bool {
	return field == FieldCreationTimestamp || field == FieldPriority
}

func (s Sort) String() string {
	parts := make([]string, 0, len(s))
	for _, o := range s {
		parts = append(parts, o.Field+","+o.Direction.String())
	}
	return strings.Join(parts, ";")
}

// Rule compares two values the way cmp.Compare does.
type Rule[T any] func(a, b T) int

// Reversed flips the rule's direction.
func (r Rule[T]) Reversed() Rule[T] {
	return func(a, b T) int { return r(b, a) }
}

// Chain applies rules in order until one of them tells a and b apart.
func Chain[T any](rules ...Rule[T]) Rule[T] {
	return func(a, b T) int {
		for _, r := range rules {
			if c := r(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// ByPriority compares priorities with absent values first (nulls-low).
func ByPriority[T Sortable]() Rule[T] {
	return func(a, b T) int {
		return comparePriority(a.SortPriority(), b.SortPriority())
	}
}

func comparePriority(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}

// ByCreationTimestamp compares creation times, oldest first.
func ByCreationTimestamp[T Sortable]() Rule[T] {
	return func(a, b T) int {
		return a.SortCreationTime().Compare(b.SortCreationTime())
	}
}

// ByName compares names lexically.
func ByName[T Sortable]() Rule[T] {
	return func(a, b T) int {
		return strings.Compare(a.SortName(), b.SortName())
	}
}

// DefaultRules is the fixed tiebreak chain: priority (nulls-low),
// creation time, then name. Name is unique, so the chain is a total order.
func DefaultRules[T Sortable]() []Rule[T] {
	return []Rule[T]{
		ByPriority[T](),
		ByCreationTimestamp[T](),
		ByName[T](),
	}
}

// SortRules resolves requested keys into rules, keeping their order.
func SortRules[T Sortable](s Sort) []Rule[T] {
	rules := make([]Rule[T], 0, len(s))
	for _, o := range s {
		var r Rule[T]
		switch o.Field {
		case FieldCreationTimestamp:
			r = ByCreationTimestamp[T]()
		case FieldPriority:
			r = ByPriority[T]()
		default:
			continue
		}
		if o.Direction == Descending {
			r = r.Reversed()
		}
		rules = append(rules, r)
	}
	return rules
}

// Comparator builds the requested rules followed by DefaultRules.
// With an empty Sort it is exactly the default chain.
func Comparator[T Sortable](s Sort) Rule[T] {
	rules := SortRules[T](s)
	rules = append(rules, DefaultRules[T]()...)
	return Chain(rules...)
}

// SortBy sorts items in place with the given rule.
func SortBy[T any](items []T, rule Rule[T]) {
	slices.SortStableFunc(items, rule)
}
