package navfile

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// namePattern accepts DNS-subdomain style names.
var namePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9._]*[a-z0-9])?$`)

// Rejection records a definition that was skipped.
type Rejection struct {
	Kind   string // "link" or "group"
	Name   string
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s %q: %s", r.Kind, r.Name, r.Reason)
}

// Result is the outcome of mapping a definitions file.
type Result struct {
	Links    []*domain.Link
	Groups   []*domain.Group
	Rejected []Rejection
}

// Mapper converts definitions into domain records.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Validate checks a group definition.
func (g GroupEntry) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Name,
			validation.Required,
			validation.Length(1, 253),
			validation.Match(namePattern),
			validation.NotIn(domain.UngroupedName).Error("is reserved"),
		),
		validation.Field(&g.DisplayName, validation.Required),
		validation.Field(&g.Children, validation.Each(validation.Required)),
	)
}

// Validate checks a link definition. Absolute URLs must be well formed;
// site-relative paths starting with / are accepted as they are.
func (l LinkEntry) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Name,
			validation.Required,
			validation.Length(1, 253),
			validation.Match(namePattern),
		),
		validation.Field(&l.DisplayName, validation.Required),
		validation.Field(&l.URL,
			validation.Required,
			validation.When(!strings.HasPrefix(l.URL, "/"), is.URL),
		),
		validation.Field(&l.Logo, validation.When(strings.Contains(l.Logo, "://"), is.URL)),
	)
}

// Map validates and converts f. Invalid or duplicate definitions are skipped
// and reported in Result.Rejected. Every record gets now as its creation time.
//
// Legacy group navs lists are applied to links without a groupName; the
// first group listing a link wins.
//
// An error is returned only when f has definitions and none are valid.
func (m *Mapper) Map(f File, now time.Time) (*Result, error) {
	res := &Result{
		Links:  make([]*domain.Link, 0, len(f.Links)),
		Groups: make([]*domain.Group, 0, len(f.Groups)),
	}

	seenGroups := make(map[string]bool, len(f.Groups))
	for _, entry := range f.Groups {
		if err := entry.Validate(); err != nil {
			res.reject("group", entry.Name, err.Error())
			continue
		}
		if seenGroups[entry.Name] {
			res.reject("group", entry.Name, "duplicate name")
			continue
		}
		seenGroups[entry.Name] = true

		res.Groups = append(res.Groups, &domain.Group{
			Name:              entry.Name,
			CreationTimestamp: now,
			DisplayName:       entry.DisplayName,
			Priority:          entry.Priority,
			Children:          entry.Children,
			Navs:              entry.Navs,
		})
	}

	seenLinks := make(map[string]*domain.Link, len(f.Links))
	for _, entry := range f.Links {
		if err := entry.Validate(); err != nil {
			res.reject("link", entry.Name, err.Error())
			continue
		}
		if seenLinks[entry.Name] != nil {
			res.reject("link", entry.Name, "duplicate name")
			continue
		}

		link := &domain.Link{
			Name:              entry.Name,
			CreationTimestamp: now,
			URL:               entry.URL,
			DisplayName:       entry.DisplayName,
			Logo:              entry.Logo,
			Description:       entry.Description,
			Priority:          entry.Priority,
			GroupName:         strings.TrimSpace(entry.GroupName),
		}
		seenLinks[entry.Name] = link
		res.Links = append(res.Links, link)
	}

	migrateLegacyNavs(res.Groups, seenLinks)

	total := len(f.Groups) + len(f.Links)
	if total > 0 && len(res.Groups)+len(res.Links) == 0 {
		return nil, fmt.Errorf("no valid definitions found (%d rejected)", len(res.Rejected))
	}

	return res, nil
}

func migrateLegacyNavs(groups []*domain.Group, links map[string]*domain.Link) {
	for _, g := range groups {
		for _, name := range g.Navs {
			if l, ok := links[name]; ok && l.IsUngrouped() {
				l.GroupName = g.Name
			}
		}
	}
}

func (r *Result) reject(kind, name, reason string) {
	r.Rejected = append(r.Rejected, Rejection{Kind: kind, Name: name, Reason: reason})
}
