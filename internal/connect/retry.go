// Package connect opens backend connections, retrying with exponential
// backoff until a deadline.
package connect

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navs/internal/logger"
)

// RetryOptions defines the connection retry behavior.
type RetryOptions struct {
	ConnectTimeout time.Duration // Total time allowed for connection attempts (ex: 30s)
	RetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	MaxWait        time.Duration // max wait between retries (ex: 10s)
	PingTimeout    time.Duration // timeout for each attempt (ex: 2s)
	WarnThreshold  int           // warn after this many attempts
}

// Validate ensures all retry settings are usable.
func (o RetryOptions) Validate() error {
	switch {
	case o.ConnectTimeout <= 0:
		return fmt.Errorf("ConnectTimeout must be > 0, got %v", o.ConnectTimeout)
	case o.RetryInterval <= 0:
		return fmt.Errorf("RetryInterval must be > 0, got %v", o.RetryInterval)
	case o.MaxWait <= 0:
		return fmt.Errorf("MaxWait must be > 0, got %v", o.MaxWait)
	case o.PingTimeout <= 0:
		return fmt.Errorf("PingTimeout must be > 0, got %v", o.PingTimeout)
	case o.WarnThreshold < 0:
		return fmt.Errorf("WarnThreshold must be >= 0, got %d", o.WarnThreshold)
	}
	return nil
}

// AttemptFunc makes one connection attempt. It must honour ctx.
type AttemptFunc func(ctx context.Context) error

// connectionLogger handles all connection logging for one backend.
type connectionLogger struct {
	logger  logger.Logger
	backend string
	target  string
}

func (cl *connectionLogger) logConnectionStart(timeout time.Duration) {
	cl.logger.Info("connecting to "+cl.backend,
		logger.String("target", cl.target),
		logger.Duration("timeout", timeout))
}

func (cl *connectionLogger) logSuccess(attempts int, elapsed time.Duration) {
	if attempts > 1 {
		cl.logger.Warn("connected to "+cl.backend+" after retry",
			logger.String("target", cl.target),
			logger.Int("attempts", attempts),
			logger.Duration("elapsed", elapsed))
		return
	}
	cl.logger.Info("connected to "+cl.backend,
		logger.String("target", cl.target))
}

func (cl *connectionLogger) logTimeout(attempts int, timeout time.Duration, err error) {
	cl.logger.Error(cl.backend+" unavailable - failed to connect after timeout",
		logger.String("target", cl.target),
		logger.Int("attempts", attempts),
		logger.Duration("timeout", timeout),
		logger.Error(err))
}

func (cl *connectionLogger) logRetry(attempt int, remaining, nextRetry time.Duration, warnThreshold int, err error) {
	fields := []logger.Field{
		logger.String("target", cl.target),
		logger.Int("attempt", attempt),
		logger.Duration("next_retry_in", nextRetry),
		logger.Error(err),
	}
	switch {
	case remaining < 10*time.Second:
		cl.logger.Error(cl.backend+" still down - retrying but timeout approaching",
			append(fields, logger.Duration("remaining", remaining))...)
	case attempt <= warnThreshold:
		cl.logger.Warn(cl.backend+" connection failed, retrying", fields...)
	default:
		cl.logger.Error(cl.backend+" still unavailable - connection attempts failing", fields...)
	}
}

// Retry calls attempt until it succeeds or opts.ConnectTimeout elapses,
// doubling the wait between attempts up to opts.MaxWait. It returns the
// number of attempts made.
func Retry(ctx context.Context, backend, target string, opts RetryOptions, log logger.Logger, attempt AttemptFunc) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, fmt.Errorf("invalid %s retry options: %w", backend, err)
	}
	cl := &connectionLogger{logger: log, backend: backend, target: target}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	cl.logConnectionStart(opts.ConnectTimeout)
	start := time.Now()
	wait := opts.RetryInterval

	for n := 1; ; n++ {
		attemptCtx, attemptCancel := context.WithTimeout(ctx, opts.PingTimeout)
		err := attempt(attemptCtx)
		attemptCancel()

		if err == nil {
			cl.logSuccess(n, time.Since(start))
			return n, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			cl.logTimeout(n, opts.ConnectTimeout, err)
			return n, fmt.Errorf("%s unavailable at %s after %d attempts (timeout: %v): %w",
				backend, target, n, opts.ConnectTimeout, err)

		case <-timer.C:
			cl.logRetry(n, timeLeft(ctx), wait, opts.WarnThreshold, err)
			wait = min(wait*2, opts.MaxWait)
		}
	}
}

// timeLeft returns the remaining time before context deadline.
func timeLeft(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}
	return time.Until(deadline)
}
