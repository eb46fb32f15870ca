package sparkle

import "errors"

// Sentinel errors. Callers distinguish the two classes with errors.Is;
// every returned error wraps exactly one of them.
var (
	// ErrConfiguration reports an unusable generator setup: New called
	// with invalid parameters, or a zero-value Generator used before
	// being constructed. Sampling after this error must not be retried
	// without fixing the configuration.
	ErrConfiguration = errors.New("sparkle: invalid configuration")

	// ErrInvalidArgument reports a rejected call argument. The
	// generator state is untouched, so the caller may correct the
	// arguments and retry.
	ErrInvalidArgument = errors.New("sparkle: invalid argument")
)
