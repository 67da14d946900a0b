package iterate

const defaultMinLanes = 256

type options struct {
	workers  int
	minLanes int
}

// Option configures batched generation.
type Option func(*options)

// WithWorkers splits lanes across n goroutines. n <= 0 uses GOMAXPROCS.
// The default is a single goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMinLanes sets the smallest lane chunk handed to one worker.
func WithMinLanes(n int) Option {
	return func(o *options) {
		o.minLanes = n
	}
}

func buildOptions(opts []Option) options {
	o := options{workers: 1, minLanes: defaultMinLanes}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
