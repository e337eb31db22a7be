package connect

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/MrSnakeDoc/navs/internal/logger"
)

func fastRetry() RetryOptions {
	return RetryOptions{
		ConnectTimeout: 500 * time.Millisecond,
		RetryInterval:  5 * time.Millisecond,
		MaxWait:        20 * time.Millisecond,
		PingTimeout:    100 * time.Millisecond,
		WarnThreshold:  1,
	}
}

func TestRetryOptionsValidate(t *testing.T) {
	valid := fastRetry()

	tests := []struct {
		name   string
		mutate func(*RetryOptions)
	}{
		{"connect timeout", func(o *RetryOptions) { o.ConnectTimeout = 0 }},
		{"retry interval", func(o *RetryOptions) { o.RetryInterval = 0 }},
		{"max wait", func(o *RetryOptions) { o.MaxWait = -time.Second }},
		{"ping timeout", func(o *RetryOptions) { o.PingTimeout = 0 }},
		{"warn threshold", func(o *RetryOptions) { o.WarnThreshold = -1 }},
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid options = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			if err := o.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	n, err := Retry(context.Background(), "test", "target", fastRetry(), logger.NewNop(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("refused")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
}

func TestRetry_TimesOut(t *testing.T) {
	cause := errors.New("refused")
	opts := fastRetry()
	opts.ConnectTimeout = 50 * time.Millisecond

	n, err := Retry(context.Background(), "test", "target", opts, logger.NewNop(), func(context.Context) error {
		return cause
	})
	if !errors.Is(err, cause) {
		t.Fatalf("Retry() error = %v, want wrapped cause", err)
	}
	if n < 1 {
		t.Errorf("attempts = %d, want at least 1", n)
	}
}

func TestRetry_InvalidOptions(t *testing.T) {
	called := false
	_, err := Retry(context.Background(), "test", "target", RetryOptions{}, logger.NewNop(), func(context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Error("Retry() with zero options = nil, want error")
	}
	if called {
		t.Error("attempt should not run with invalid options")
	}
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Redis(context.Background(), RedisOptions{Addr: mr.Addr(), Retry: fastRetry()}, logger.NewNop())
	if err != nil {
		t.Fatalf("Redis() error = %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts := fastRetry()
	opts.ConnectTimeout = 100 * time.Millisecond
	if _, err := Redis(context.Background(), RedisOptions{Addr: addr, Retry: opts}, logger.NewNop()); err == nil {
		t.Error("Redis() on a closed server = nil error, want error")
	}
}

func TestSQL(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "navs.db")

	st, err := SQL(context.Background(), dsn, fastRetry(), logger.NewNop())
	if err != nil {
		t.Fatalf("SQL() error = %v", err)
	}
	defer st.Close()

	if err := st.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestSQL_EmptyDSN(t *testing.T) {
	opts := fastRetry()
	opts.ConnectTimeout = 30 * time.Millisecond
	if _, err := SQL(context.Background(), "", opts, logger.NewNop()); err == nil {
		t.Error("SQL(\"\") = nil error, want error")
	}
}
