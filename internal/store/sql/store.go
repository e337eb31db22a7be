// Package sqlstore persists navigation records through GORM, on SQLite or
// PostgreSQL.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store implements store.Store on a relational database.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to dsn and migrates the schema.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if IsSQLite(db) {
		// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	if err := db.AutoMigrate(&linkRecord{}, &groupRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Dialect reports the driver in use.
func (s *Store) Dialect() string {
	return DialectName(s.db)
}

// ─────────────────────────────────────────────────────────────────
// Links
// ─────────────────────────────────────────────────────────────────

// ListLinks returns every link accepted by filter.
func (s *Store) ListLinks(ctx context.Context, filter domain.LinkFilter) ([]*domain.Link, error) {
	var rows []linkRecord
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}

	links := make([]*domain.Link, 0, len(rows))
	for i := range rows {
		l := rows[i].toDomain()
		if filter.Match(l) {
			links = append(links, l)
		}
	}
	return links, nil
}

// SaveLinks upserts links by name.
func (s *Store) SaveLinks(ctx context.Context, links []*domain.Link) error {
	if len(links) == 0 {
		return nil
	}

	rows := make([]linkRecord, 0, len(links))
	for _, l := range links {
		rows = append(rows, toLinkRecord(l))
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}
	return nil
}

// DeleteLink removes a link by name.
func (s *Store) DeleteLink(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&linkRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete link %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("link %s: %w", name, store.ErrNotFound)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Groups
// ─────────────────────────────────────────────────────────────────

// ListGroups returns every group accepted by filter.
func (s *Store) ListGroups(ctx context.Context, filter domain.GroupFilter) ([]*domain.Group, error) {
	var rows []groupRecord
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	groups := make([]*domain.Group, 0, len(rows))
	for i := range rows {
		g, err := rows[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to list groups: %w", err)
		}
		if filter.Match(g) {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// SaveGroups upserts groups by name.
func (s *Store) SaveGroups(ctx context.Context, groups []*domain.Group) error {
	if len(groups) == 0 {
		return nil
	}

	rows := make([]groupRecord, 0, len(groups))
	for _, g := range groups {
		row, err := toGroupRecord(g)
		if err != nil {
			return fmt.Errorf("failed to save groups: %w", err)
		}
		rows = append(rows, row)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save groups: %w", err)
	}
	return nil
}

// DeleteGroup removes a group by name.
func (s *Store) DeleteGroup(ctx context.Context, name string) error {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&groupRecord{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete group %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("group %s: %w", name, store.ErrNotFound)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// Lifecycle
// ─────────────────────────────────────────────────────────────────

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlDB.Close()
}
