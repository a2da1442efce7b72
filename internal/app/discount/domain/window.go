package domain

import (
	"time"

	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// Status is the temporal lifecycle state of a discount, derived from its
// validity window and the current date. It is never stored.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusValid      Status = "valid"
	StatusExpired    Status = "expired"
)

// DateWindow is a validity interval at calendar-day granularity. Both bounds
// are normalized to midnight UTC on construction, so comparisons never
// depend on the time-of-day the window was authored at.
type DateWindow struct {
	validFrom time.Time
	validTo   time.Time
}

// NewDateWindow creates a DateWindow, truncating both bounds to day
// granularity. The end must fall strictly after the start.
func NewDateWindow(validFrom, validTo time.Time) (DateWindow, error) {
	from := clock.TruncateToDay(validFrom)
	to := clock.TruncateToDay(validTo)

	if !to.After(from) {
		return DateWindow{}, ErrInvalidWindow
	}

	return DateWindow{validFrom: from, validTo: to}, nil
}

// NewFutureDateWindow creates a DateWindow whose start must lie strictly
// after today. Used at discount creation: a new discount can begin on the
// next calendar day at the earliest.
func NewFutureDateWindow(validFrom, validTo, now time.Time) (DateWindow, error) {
	w, err := NewDateWindow(validFrom, validTo)
	if err != nil {
		return DateWindow{}, err
	}

	if !w.validFrom.After(clock.TruncateToDay(now)) {
		return DateWindow{}, ErrWindowNotFuture
	}

	return w, nil
}

// ValidFrom returns the first valid day of the window.
func (w DateWindow) ValidFrom() time.Time {
	return w.validFrom
}

// ValidTo returns the last valid day of the window.
func (w DateWindow) ValidTo() time.Time {
	return w.validTo
}

// Status classifies the window against the given instant. The instant is
// truncated to day granularity before comparison, exactly as the bounds
// were, so a discount never appears to start or end partway through a day.
//
//	day(now) < validFrom  → StatusNotStarted
//	day(now) > validTo    → StatusExpired
//	otherwise             → StatusValid
//
// Total over any window with validTo > validFrom; the result only ever
// advances NotStarted → Valid → Expired as time passes.
func (w DateWindow) Status(now time.Time) Status {
	day := clock.TruncateToDay(now)

	if day.Before(w.validFrom) {
		return StatusNotStarted
	}
	if day.After(w.validTo) {
		return StatusExpired
	}
	return StatusValid
}

// Lapsed reports whether the window has fully ended as of the given
// instant. A lapsed discount frees its products for reassignment even if
// its start date lies in the past.
func (w DateWindow) Lapsed(now time.Time) bool {
	return clock.TruncateToDay(now).After(w.validTo)
}

// Equal reports whether two windows cover the same days.
func (w DateWindow) Equal(other DateWindow) bool {
	return w.validFrom.Equal(other.validFrom) && w.validTo.Equal(other.validTo)
}
