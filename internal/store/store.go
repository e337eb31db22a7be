// Package store defines how navigation records are fetched and persisted.
package store

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/navs/internal/domain"
)

// ErrNotFound is returned when a record addressed by name does not exist.
var ErrNotFound = errors.New("record not found")

// Reader fetches full snapshots of links and groups. A nil filter selects
// everything. Results are unordered and owned by the caller.
type Reader interface {
	ListLinks(ctx context.Context, filter domain.LinkFilter) ([]*domain.Link, error)
	ListGroups(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error)
}

// Store is a persistence backend for navigation records.
type Store interface {
	Reader

	SaveLinks(ctx context.Context, links []*domain.Link) error
	SaveGroups(ctx context.Context, groups []*domain.Group) error
	DeleteLink(ctx context.Context, name string) error
	DeleteGroup(ctx context.Context, name string) error

	Ping(ctx context.Context) error
	Close() error
}
