package buffer

type options struct {
	capacity int64
	logger   Logger
}

// Option configures a Buffer during creation.
type Option func(*options)

// WithCapacity sets the size of the in-memory window.
func WithCapacity(n int64) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithLogger sets the logger used for spill traces.
func WithLogger(l Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
