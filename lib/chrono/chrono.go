package chrono

import "time"

// API is the interface that anything depending on the system clock should use.
type API interface {
	// Now returns the current local time.
	Now() time.Time
}

// StandardImpl is the standard implementation of API using the standard library.
type StandardImpl struct{}

// NewStandardImpl is the constructor of StandardImpl.
func NewStandardImpl() StandardImpl {
	return StandardImpl{}
}

func (StandardImpl) Now() time.Time {
	return time.Now()
}

// FixedImpl always reports the same instant, it is used for reproducible runs and tests.
type FixedImpl struct {
	Time time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.Time
}
