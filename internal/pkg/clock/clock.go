// Package clock supplies the current time to draft and store timestamps so
// tests can pin it
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/spell-cards/internal/pkg/clock Clock

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// System reads the wall clock in UTC
type System struct{}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}

// New returns the system clock
func New() Clock {
	return System{}
}
