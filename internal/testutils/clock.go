// Package testutils provides deterministic helpers shared by slashline tests.
package testutils

import (
	"sync"
	"time"
)

// FixedClock returns a clock function that starts at start and advances by
// step on every call. Feeding it to history stores and transcript recorders
// makes timestamps, orderings and durations reproducible across runs.
func FixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(step)
		return t
	}
}
