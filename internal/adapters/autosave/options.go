package autosave

import (
	"time"

	"github.com/okian/incentivo/pkg/logger"
)

// Option applies a configuration option to the Debouncer.
type Option func(*Debouncer)

// WithDelay sets the quiet period before a scheduled save runs.
func WithDelay(delay time.Duration) Option {
	return func(d *Debouncer) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithLogger sets a custom logger for failed background saves.
func WithLogger(l logger.Logger) Option {
	return func(d *Debouncer) {
		if l != nil {
			d.logger = l
		}
	}
}
