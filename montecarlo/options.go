package montecarlo

import "io"

// Options configures a montecarlo.Run call.
type Options struct {
	Parallelism          int
	StoreFailurePatterns bool
	Verbose              bool
	Trace                io.Writer
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions runs single-threaded with pattern deduplication enabled.
func DefaultOptions() Options {
	return Options{Parallelism: 1, StoreFailurePatterns: true}
}

// WithParallelism sets the number of worker goroutines.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

// WithoutFailurePatterns disables pattern deduplication: every iteration
// invokes the analysis function independently, even if its exclusion set
// matches an earlier iteration's.
func WithoutFailurePatterns() Option {
	return func(o *Options) { o.StoreFailurePatterns = false }
}

// WithTrace enables a one-line-per-notable-event trace sink, matching the
// teacher's Verbose/fmt.Printf idiom.
func WithTrace(w io.Writer) Option {
	return func(o *Options) { o.Verbose = true; o.Trace = w }
}
