package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navs/internal/index"
	"github.com/MrSnakeDoc/navs/internal/logger"
	"github.com/MrSnakeDoc/navs/internal/store"
)

// StoreSyncer copies the persistence store into the memory index. It runs
// once at startup, and periodically when the store is the only source of
// records.
type StoreSyncer struct {
	store         store.Reader
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewStoreSyncer creates a new store syncer
func NewStoreSyncer(
	st store.Reader,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *StoreSyncer {
	return &StoreSyncer{
		store:         st,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start syncs once, then keeps syncing on the ticker and on every manual
// trigger.
func (ss *StoreSyncer) Start(ctx context.Context) error {
	if err := ss.Sync(ctx); err != nil {
		return fmt.Errorf("initial sync failed: %w", err)
	}

	runLoop(ctx, ss.interval, ss.manualTrigger, ss.stopCh, ss.logger, "store sync", ss.Sync)
	return nil
}

// Stop stops the syncer
func (ss *StoreSyncer) Stop() {
	close(ss.stopCh)
}

// Sync loads every record, soft-deleted ones included, into the index.
func (ss *StoreSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing navigation records from store to memory")

	links, err := ss.store.ListLinks(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to sync links: %w", err)
	}
	groups, err := ss.store.ListGroups(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to sync groups: %w", err)
	}

	ss.index.Replace(links, groups)

	ss.logger.Info("synced navigation records from store",
		logger.Int("links", len(links)),
		logger.Int("groups", len(groups)))

	return nil
}
