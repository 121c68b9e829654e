package gdf

import "github.com/robert-malhotra/go-gdf/internal/logger"

// Defaults for the per-level resource bounds. Both exist to stop unbounded
// recursion or loops on corrupt or adversarial input.
const (
	DefaultMaxRecurse = 16
	DefaultMaxBlocks  = 1_000_000
)

type options struct {
	maxRecurse int
	maxBlocks  int
	log        logger.Logger
}

func defaultOptions() options {
	return options{
		maxRecurse: DefaultMaxRecurse,
		maxBlocks:  DefaultMaxBlocks,
		log:        logger.Default(),
	}
}

// Option configures Load and Save.
type Option func(*options)

// WithMaxRecurse sets the maximum group nesting depth. Exceeding it fails
// with ErrRecursionLimit on both load and save.
func WithMaxRecurse(n int) Option {
	return func(o *options) { o.maxRecurse = n }
}

// WithMaxBlocks sets the maximum number of blocks decoded per nesting level.
func WithMaxBlocks(n int) Option {
	return func(o *options) { o.maxBlocks = n }
}

// WithLogger routes the codec's non-fatal diagnostics (such as the
// unexpected-version warning) to log instead of the default stderr logger.
func WithLogger(log logger.Logger) Option {
	return func(o *options) { o.log = log }
}
