// Package redis provides trigger condition sources backed by Redis keys,
// for booleans that originate elsewhere on the robot network (a dashboard
// toggle, a field-management flag, another process).
package redis

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Flag mirrors a Redis key into a non-blocking boolean source. It polls
// the key on its own goroutine and caches the latest truth value, so
// sampling from the control cycle never touches the network.
type Flag struct {
	client   *backend.Client
	key      string
	interval time.Duration
	logger   *slog.Logger

	value  atomic.Bool
	cancel context.CancelFunc
	done   chan struct{}
}

// FlagOption configures a Flag.
type FlagOption func(*Flag)

// WithPollInterval sets how often the key is refreshed (default 100ms).
func WithPollInterval(d time.Duration) FlagOption {
	return func(f *Flag) {
		f.interval = d
	}
}

// WithLogger sets a logger for refresh failures.
func WithLogger(logger *slog.Logger) FlagOption {
	return func(f *Flag) {
		f.logger = logger
	}
}

// NewFlag starts mirroring the given key. The first refresh happens
// synchronously so the initial sample reflects the store; afterwards the
// flag refreshes in the background until Close or ctx cancellation.
func NewFlag(ctx context.Context, client *backend.Client, key string, opts ...FlagOption) *Flag {
	f := &Flag{
		client:   client,
		key:      key,
		interval: 100 * time.Millisecond,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}

	ctx, f.cancel = context.WithCancel(ctx)
	f.refresh(ctx)
	go f.loop(ctx)
	return f
}

// Source returns the sampling function to hand to a trigger. It is pure
// from the scheduler's point of view: it only reads the cached value.
func (f *Flag) Source() func() bool {
	return f.value.Load
}

// Close stops the background refresh.
func (f *Flag) Close() {
	f.cancel()
	<-f.done
}

func (f *Flag) loop(ctx context.Context) {
	defer close(f.done)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.refresh(ctx)
		}
	}
}

func (f *Flag) refresh(ctx context.Context) {
	raw, err := f.client.Get(ctx, f.key).Result()
	switch {
	case err == backend.Nil:
		f.value.Store(false)
	case err != nil:
		// Keep the last known value; a flapping network must not flap the
		// robot.
		f.logger.Warn("flag refresh failed", "key", f.key, "error", err)
	default:
		f.value.Store(truthy(raw))
	}
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "enabled":
		return true
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
