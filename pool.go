package textdown

import "runtime"

// Batch sizing constants.
const (
	MinPoolSize = 1
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for file I/O goroutines.
	cpuDivisor = 2
)

// ResolvePoolSize returns the number of batch workers to run.
// An explicit positive count wins; otherwise half of GOMAXPROCS is used,
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
