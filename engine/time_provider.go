package engine

import "time"

// Clock supplies the wall time the coordinator stamps step requests with
type Clock interface {
	Now() time.Time
}

// MonotonicClock reads the system clock with its monotonic component
type MonotonicClock struct{}

func NewMonotonicClock() MonotonicClock {
	return MonotonicClock{}
}

// Now returns the current time with monotonic clock reading
func (MonotonicClock) Now() time.Time {
	return time.Now()
}
