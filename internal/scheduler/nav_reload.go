package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/sources/navfile"
	"github.com/MrSnakeDoc/navs/internal/store"
)

// snapshotIndex is the part of the memory index the reloader merges into.
type snapshotIndex interface {
	store.Reader
	Replace(links []*domain.Link, groups []*domain.Group)
}

// NavReloader periodically loads the definitions file into the index and
// the persistence store.
type NavReloader struct {
	loader        *navfile.Loader
	mapper        *navfile.Mapper
	store         store.Store
	index         snapshotIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
	now           func() time.Time
}

// NewNavReloader creates a new definitions file reloader. store may be nil.
func NewNavReloader(
	sourceFile string,
	st store.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *NavReloader {
	return &NavReloader{
		loader:        navfile.NewLoader(sourceFile),
		mapper:        navfile.NewMapper(),
		store:         st,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
	}
}

// Start loads once, then keeps reloading on the ticker and on every manual
// trigger until Stop or ctx is done.
func (nr *NavReloader) Start(ctx context.Context) error {
	if err := nr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	runLoop(ctx, nr.interval, nr.manualTrigger, nr.stopCh, nr.logger, "definitions reload", nr.Reload)
	return nil
}

// Stop stops the reloader
func (nr *NavReloader) Stop() {
	close(nr.stopCh)
}

// Reload reads the definitions file and applies it.
//
// Records that vanished from the file are soft-deleted, so they drop out of
// listings and are purged later by the garbage collector. Records that are
// still present keep their original creation time.
func (nr *NavReloader) Reload(ctx context.Context) error {
	nr.logger.Info("reloading navigation definitions",
		logger.String("file", nr.loader.Path()))

	file, err := nr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	now := nr.now()
	res, err := nr.mapper.Map(file, now)
	if err != nil {
		return fmt.Errorf("failed to map definitions: %w", err)
	}
	for _, r := range res.Rejected {
		nr.logger.Warn("skipping invalid definition",
			logger.String("kind", r.Kind),
			logger.String("name", r.Name),
			logger.String("reason", r.Reason))
	}

	existingLinks, err := nr.index.ListLinks(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to read indexed links: %w", err)
	}
	existingGroups, err := nr.index.ListGroups(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to read indexed groups: %w", err)
	}

	links, removedLinks := mergeLinks(existingLinks, res.Links, now)
	groups, removedGroups := mergeGroups(existingGroups, res.Groups, now)

	nr.logger.Info("loaded navigation definitions",
		logger.Int("links", len(res.Links)),
		logger.Int("groups", len(res.Groups)),
		logger.Int("rejected", len(res.Rejected)))

	if removedLinks+removedGroups > 0 {
		nr.logger.Info("marking removed definitions as deleted",
			logger.Int("links", removedLinks),
			logger.Int("groups", removedGroups))
	}

	nr.index.Replace(links, groups)

	// Best effort: the index is what queries read.
	if nr.store != nil {
		if err := nr.store.SaveGroups(ctx, groups); err != nil {
			nr.logger.Warn("failed to save groups to store", logger.Error(err))
		} else if err := nr.store.SaveLinks(ctx, links); err != nil {
			nr.logger.Warn("failed to save links to store", logger.Error(err))
		} else {
			nr.logger.Info("definitions saved to store")
		}
	}

	return nil
}

// mergeLinks applies fresh definitions over the existing set and reports how
// many records were newly soft-deleted.
func mergeLinks(existing, fresh []*domain.Link, now time.Time) ([]*domain.Link, int) {
	previous := make(map[string]*domain.Link, len(existing))
	for _, l := range existing {
		previous[l.Name] = l
	}

	out := make([]*domain.Link, 0, len(fresh)+len(existing))
	kept := make(map[string]bool, len(fresh))
	for _, l := range fresh {
		if old, ok := previous[l.Name]; ok && !old.CreationTimestamp.IsZero() {
			l.CreationTimestamp = old.CreationTimestamp
		}
		kept[l.Name] = true
		out = append(out, l)
	}

	removed := 0
	for _, old := range existing {
		if kept[old.Name] {
			continue
		}
		if !old.IsDeleting() {
			deletedAt := now
			old.DeletionTimestamp = &deletedAt
			removed++
		}
		out = append(out, old)
	}
	return out, removed
}

// mergeGroups is mergeLinks for groups.
func mergeGroups(existing, fresh []*domain.Group, now time.Time) ([]*domain.Group, int) {
	previous := make(map[string]*domain.Group, len(existing))
	for _, g := range existing {
		previous[g.Name] = g
	}

	out := make([]*domain.Group, 0, len(fresh)+len(existing))
	kept := make(map[string]bool, len(fresh))
	for _, g := range fresh {
		if old, ok := previous[g.Name]; ok && !old.CreationTimestamp.IsZero() {
			g.CreationTimestamp = old.CreationTimestamp
		}
		kept[g.Name] = true
		out = append(out, g)
	}

	removed := 0
	for _, old := range existing {
		if kept[old.Name] {
			continue
		}
		if !old.IsDeleting() {
			deletedAt := now
			old.DeletionTimestamp = &deletedAt
			removed++
		}
		out = append(out, old)
	}
	return out, removed
}
