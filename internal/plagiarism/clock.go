package plagiarism

import "time"

// Clock abstracts wall-clock reads so the scan budget can be exhausted
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real-time clock
func SystemClock() Clock { return systemClock{} }
