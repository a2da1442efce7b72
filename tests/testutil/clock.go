package testutil

import (
	"time"

	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// NewFixedClock creates a mock clock fixed at the given time.
func NewFixedClock(t time.Time) *clock.MockClock {
	return clock.NewMockClock(t)
}

// Day parses a YYYY-MM-DD string into a midnight-UTC time. Panics on bad
// input, test fixtures only.
func Day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}
