package canon

import (
	"github.com/hashicorp/go-hclog"

	"github.com/born-ml/cse/internal/parallel"
)

// Options configures an Index.
type Options struct {
	// Logger receives per-node decisions at debug/trace level and a summary at info.
	// Nil means no logging.
	Logger hclog.Logger

	// Parallel controls the fan-out used for work that does not depend on graph order
	// (eligibility screening, initializer hashing).
	Parallel parallel.Config

	// MaxTensorElements caps the size of tensor attributes and initializers that are
	// hashed. Larger ones make their node ineligible (or are left out of initializer
	// dedup). Zero means no limit.
	MaxTensorElements int64
}

// DefaultOptions returns the default configuration: no logging, CPU-sized parallelism,
// no size limit.
func DefaultOptions() Options {
	return Options{
		Logger:            hclog.NewNullLogger(),
		Parallel:          parallel.DefaultConfig(),
		MaxTensorElements: 0,
	}
}
