package retry

import (
	"time"
)

type Func func() error

type ShouldRetry func(err error, attempt int) bool

// WrapWithRetry wraps the given function, retries it if it fails and shouldRetry returns true. Gives up when errors
// come faster than rate per second.
func WrapWithRetry(f Func, shouldRetry ShouldRetry, rate float32) func() error {
	size := int(rate) + 1

	return func() error {
		var errorTimestamps []time.Time

		for attempt := 1; ; attempt++ {
			err := f()
			if err == nil {
				return nil
			}

			if !shouldRetry(err, attempt) {
				return err
			}

			errorTimestamps = append(errorTimestamps, time.Now())
			if len(errorTimestamps) > size {
				errorTimestamps = errorTimestamps[1:]
			}

			if len(errorTimestamps) == size && errorTimestamps[size-1].Sub(errorTimestamps[0]) < time.Second {
				return err
			}
		}
	}
}
