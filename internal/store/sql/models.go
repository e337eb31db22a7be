package sqlstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"gorm.io/datatypes"
)

// linkRecord is the nav_links row.
type linkRecord struct {
	Name              string     `gorm:"primaryKey;type:varchar(255)"`
	CreationTimestamp time.Time  `gorm:"not null"`
	DeletionTimestamp *time.Time `gorm:"index"`
	URL               string     `gorm:"type:text;not null"`
	DisplayName       string     `gorm:"type:text;not null"`
	Logo              string     `gorm:"type:text"`
	Description       string     `gorm:"type:text"`
	Priority          *int
	GroupName         string    `gorm:"type:varchar(255);index"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime"`
}

func (linkRecord) TableName() string { return "nav_links" }

// groupRecord is the nav_groups row. Children and the legacy Navs list are
// kept as JSON arrays so their order survives.
type groupRecord struct {
	Name              string     `gorm:"primaryKey;type:varchar(255)"`
	CreationTimestamp time.Time  `gorm:"not null"`
	DeletionTimestamp *time.Time `gorm:"index"`
	DisplayName       string     `gorm:"type:text;not null"`
	Priority          *int
	Children          datatypes.JSON
	Navs              datatypes.JSON
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime"`
}

func (groupRecord) TableName() string { return "nav_groups" }

func toLinkRecord(l *domain.Link) linkRecord {
	return linkRecord{
		Name:              l.Name,
		CreationTimestamp: l.CreationTimestamp.UTC(),
		DeletionTimestamp: utcPtr(l.DeletionTimestamp),
		URL:               l.URL,
		DisplayName:       l.DisplayName,
		Logo:              l.Logo,
		Description:       l.Description,
		Priority:          l.Priority,
		GroupName:         l.GroupName,
	}
}

func (r *linkRecord) toDomain() *domain.Link {
	return &domain.Link{
		Name:              r.Name,
		CreationTimestamp: r.CreationTimestamp.UTC(),
		DeletionTimestamp: utcPtr(r.DeletionTimestamp),
		URL:               r.URL,
		DisplayName:       r.DisplayName,
		Logo:              r.Logo,
		Description:       r.Description,
		Priority:          r.Priority,
		GroupName:         r.GroupName,
	}
}

func toGroupRecord(g *domain.Group) (groupRecord, error) {
	children, err := marshalNames(g.Children)
	if err != nil {
		return groupRecord{}, fmt.Errorf("failed to encode children of %s: %w", g.Name, err)
	}
	navs, err := marshalNames(g.Navs)
	if err != nil {
		return groupRecord{}, fmt.Errorf("failed to encode navs of %s: %w", g.Name, err)
	}
	return groupRecord{
		Name:              g.Name,
		CreationTimestamp: g.CreationTimestamp.UTC(),
		DeletionTimestamp: utcPtr(g.DeletionTimestamp),
		DisplayName:       g.DisplayName,
		Priority:          g.Priority,
		Children:          children,
		Navs:              navs,
	}, nil
}

func (r *groupRecord) toDomain() (*domain.Group, error) {
	children, err := unmarshalNames(r.Children)
	if err != nil {
		return nil, fmt.Errorf("failed to decode children of %s: %w", r.Name, err)
	}
	navs, err := unmarshalNames(r.Navs)
	if err != nil {
		return nil, fmt.Errorf("failed to decode navs of %s: %w", r.Name, err)
	}
	return &domain.Group{
		Name:              r.Name,
		CreationTimestamp: r.CreationTimestamp.UTC(),
		DeletionTimestamp: utcPtr(r.DeletionTimestamp),
		DisplayName:       r.DisplayName,
		Priority:          r.Priority,
		Children:          children,
		Navs:              navs,
	}, nil
}

func marshalNames(names []string) (datatypes.JSON, error) {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalNames(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return names, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
