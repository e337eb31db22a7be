package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/navs/internal/logger"
)

// runLoop calls fn on every tick and on every manual trigger in a background
// goroutine. A nil trigger channel is never selected.
func runLoop(
	ctx context.Context,
	interval time.Duration,
	trigger <-chan struct{},
	stopCh <-chan struct{},
	log logger.Logger,
	what string,
	fn func(context.Context) error,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					log.Error(what+" failed", logger.Error(err))
				}
			case <-trigger:
				log.Info("manual trigger received", logger.String("job", what))
				if err := fn(ctx); err != nil {
					log.Error(what+" failed", logger.Error(err))
				}
			case <-stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}
