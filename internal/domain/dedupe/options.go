package dedupe

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithKeys pre-records keys.
func WithKeys(keys ...string) Option {
	return func(d *inMemoryDeduper) {
		for _, k := range keys {
			d.seen[k] = struct{}{}
		}
	}
}
