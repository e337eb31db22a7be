package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/store"
)

const (
	// DefaultGCThreshold is how long a soft-deleted record is kept
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector purges records that have been soft-deleted for longer
// than the threshold.
type GarbageCollector struct {
	store     store.Store
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	now       func() time.Time
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	st store.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     st,
		index:     idx,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	runLoop(ctx, gc.interval, nil, gc.stopCh, gc.logger, "garbage collection", gc.Collect)
	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect removes expired soft-deleted links and groups.
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	gc.logger.Debug("running garbage collection for deleted links and groups")

	now := gc.now()

	linksDeleted, err := gc.collectLinks(ctx, now)
	if err != nil {
		return err
	}
	groupsDeleted, err := gc.collectGroups(ctx, now)
	if err != nil {
		return err
	}

	if total := linksDeleted + groupsDeleted; total > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("links_deleted", linksDeleted),
			logger.Int("groups_deleted", groupsDeleted),
			logger.Int("total_deleted", total))
	} else {
		gc.logger.Debug("no items to garbage collect")
	}

	return nil
}

func (gc *GarbageCollector) expired(deletedAt *time.Time, now time.Time) (time.Duration, bool) {
	if deletedAt == nil {
		return 0, false
	}
	age := now.Sub(*deletedAt)
	return age, age >= gc.threshold
}

func (gc *GarbageCollector) collectLinks(ctx context.Context, now time.Time) (int, error) {
	links, err := gc.index.ListLinks(ctx, nil)
	if err != nil {
		return 0, err
	}

	deletedCount := 0
	for _, link := range links {
		age, ok := gc.expired(link.DeletionTimestamp, now)
		if !ok {
			continue
		}

		_ = gc.index.DeleteLink(ctx, link.Name)
		gc.deleteFromStore(ctx, "link", link.Name, gc.storeDeleteLink)

		gc.logger.Info("garbage collected deleted link",
			logger.String("name", link.Name),
			logger.Duration("deleted_for", age))
		deletedCount++
	}
	return deletedCount, nil
}

func (gc *GarbageCollector) collectGroups(ctx context.Context, now time.Time) (int, error) {
	groups, err := gc.index.ListGroups(ctx, nil)
	if err != nil {
		return 0, err
	}

	deletedCount := 0
	for _, group := range groups {
		age, ok := gc.expired(group.DeletionTimestamp, now)
		if !ok {
			continue
		}

		_ = gc.index.DeleteGroup(ctx, group.Name)
		gc.deleteFromStore(ctx, "group", group.Name, gc.storeDeleteGroup)

		gc.logger.Info("garbage collected deleted group",
			logger.String("name", group.Name),
			logger.Duration("deleted_for", age))
		deletedCount++
	}
	return deletedCount, nil
}

func (gc *GarbageCollector) storeDeleteLink(ctx context.Context, name string) error {
	return gc.store.DeleteLink(ctx, name)
}

func (gc *GarbageCollector) storeDeleteGroup(ctx context.Context, name string) error {
	return gc.store.DeleteGroup(ctx, name)
}

// deleteFromStore is best effort; a record the store never had is fine.
func (gc *GarbageCollector) deleteFromStore(ctx context.Context, kind, name string, del func(context.Context, string) error) {
	if gc.store == nil {
		return
	}
	if err := del(ctx, name); err != nil && !errors.Is(err, store.ErrNotFound) {
		gc.logger.Warn("failed to delete "+kind+" from store",
			logger.String("name", name),
			logger.Error(err))
	}
}
