package services

import "time"

// Clock returns the current time. A nil Clock is time.Now.
type Clock func() time.Time

func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
