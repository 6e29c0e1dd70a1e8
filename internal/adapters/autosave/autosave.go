// Package autosave defers writes of frequently edited text.
//
// Schedule records the latest content and restarts a single timer. When the
// timer fires only the most recent content is saved.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/incentivo/pkg/logger"
	"github.com/okian/incentivo/pkg/metrics"
)

const defaultDelay = 800 * time.Millisecond

// ErrStopped is returned by Schedule after Stop.
var ErrStopped = errors.New("autosave stopped")

// SaveFunc persists content.
type SaveFunc func(ctx context.Context, content string) error

// Debouncer runs at most one deferred save at a time.
type Debouncer struct {
	save   SaveFunc
	delay  time.Duration
	logger logger.Logger

	// saveMu serializes saves so content is written in the order it was taken.
	saveMu sync.Mutex

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	dirty   bool
	stopped bool
}

// New creates a Debouncer that calls save after the configured delay.
func New(save SaveFunc, opts ...Option) *Debouncer {
	d := &Debouncer{
		save:  save,
		delay: defaultDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = logger.Get()
	}
	return d
}

// Schedule replaces the pending content and restarts the timer.
func (d *Debouncer) Schedule(content string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrStopped
	}
	d.pending = content
	d.dirty = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
	return nil
}

// Pending returns the content waiting to be saved, if any.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending, d.dirty
}

// Flush cancels the timer and saves pending content now.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	return d.run(ctx)
}

// Stop flushes pending content and rejects later schedules.
func (d *Debouncer) Stop(ctx context.Context) error {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	return d.Flush(ctx)
}

func (d *Debouncer) fire() {
	ctx := context.Background()
	if err := d.run(ctx); err != nil {
		d.logger.Error(ctx, "autosave failed", logger.Error(err))
	}
}

func (d *Debouncer) run(ctx context.Context) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.mu.Lock()
	if !d.dirty {
		d.mu.Unlock()
		return nil
	}
	content := d.pending
	d.dirty = false
	d.mu.Unlock()

	err := d.save(ctx, content)
	metrics.RecordAutosaveFlush(err)
	if err != nil {
		// Keep the content so a later flush can retry, unless newer content arrived.
		d.mu.Lock()
		if !d.dirty {
			d.pending = content
			d.dirty = true
		}
		d.mu.Unlock()
	}
	return err
}
