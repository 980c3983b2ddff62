package treemap

// Row grouping constants.
//
// By default a row may only be closed early once it holds two items and the
// next item would make its worst aspect ratio worse. The classic preset
// drops the two-item minimum, which is the textbook squarified behaviour.
// The dashboard preset keeps the minimum and tolerates ratios up to 2.5:1
// before closing a row early.
const (
	DefaultMinRowSize     = 2
	DefaultAspectCutoff   = 1.0
	ClassicMinRowSize     = 1
	DashboardMinRowSize   = 2
	DashboardAspectCutoff = 2.5
)

// Option configures [Layout].
type Option func(*config)

type config struct {
	minRowSize int
	cutoff     float64
}

func newConfig(opts []Option) config {
	c := config{minRowSize: DefaultMinRowSize, cutoff: DefaultAspectCutoff}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

// WithMinRowSize sets how many items a row must hold before it may be
// closed early. Values below 1 are treated as 1.
func WithMinRowSize(n int) Option {
	return func(c *config) { c.minRowSize = max(1, n) }
}

// WithAspectCutoff sets the worst aspect ratio a row may reach before the
// engine is allowed to close it early. Values below 1 are treated as 1,
// which disables the cutoff.
func WithAspectCutoff(r float64) Option {
	return func(c *config) { c.cutoff = max(1, r) }
}

// Classic closes a row as soon as the next item would make it less square,
// even when the row holds a single item.
func Classic() Option {
	return func(c *config) {
		c.minRowSize = ClassicMinRowSize
		c.cutoff = DefaultAspectCutoff
	}
}

// Dashboard applies the row grouping used by the procurement dashboard
// charts: rows of at least two items and a 2.5:1 ratio cutoff.
func Dashboard() Option {
	return func(c *config) {
		c.minRowSize = DashboardMinRowSize
		c.cutoff = DashboardAspectCutoff
	}
}
