package repository

import "time"

const defaultOpenTimeout = time.Second

// Option applies a configuration option to the BoltStore.
type Option func(*boltOptions)

type boltOptions struct {
	timeout time.Duration
	bucket  string
}

// WithOpenTimeout bounds how long Open waits for the database file lock.
func WithOpenTimeout(timeout time.Duration) Option {
	return func(o *boltOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithBucket overrides the top-level bucket name.
func WithBucket(name string) Option {
	return func(o *boltOptions) {
		if name != "" {
			o.bucket = name
		}
	}
}
