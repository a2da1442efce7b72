package domain

import (
	"time"

	"github.com/light-bringer/promo-console-service/internal/pkg/clock"
)

// FieldLocks describes which fields of an existing discount may still be
// edited, based on how far its lifecycle has progressed. Locks only ever
// tighten as time passes.
type FieldLocks struct {
	ValidFrom bool
	ValidTo   bool
	Editable  bool
}

// LockedFields evaluates the edit-lock policy for a discount's original
// window against the given instant.
//
// An expired discount is read-only in its entirety: Editable is false and
// the caller must abandon the edit flow, not merely disable fields.
// Otherwise the per-field locks are independent: validFrom freezes once the
// window has started, validTo once it has ended. The validTo lock can only
// trip when the status check races between screen load and submit, since
// validTo <= now otherwise implies expired.
func LockedFields(original DateWindow, now time.Time) FieldLocks {
	if original.Status(now) == StatusExpired {
		return FieldLocks{ValidFrom: true, ValidTo: true, Editable: false}
	}

	day := clock.TruncateToDay(now)
	return FieldLocks{
		ValidFrom: !original.ValidFrom().After(day),
		ValidTo:   !original.ValidTo().After(day),
		Editable:  true,
	}
}

// Check returns the edit-lock violation for a submitted window, if any:
// ErrDiscountExpired when the discount is read-only, ErrLockedFieldViolation
// when a locked field differs from its original value.
func (l FieldLocks) Check(original, submitted DateWindow) error {
	if !l.Editable {
		return ErrDiscountExpired
	}
	if l.ValidFrom && !submitted.ValidFrom().Equal(original.ValidFrom()) {
		return ErrLockedFieldViolation
	}
	if l.ValidTo && !submitted.ValidTo().Equal(original.ValidTo()) {
		return ErrLockedFieldViolation
	}
	return nil
}

// Sanitize replaces any locked submitted field with its original value
// before use, returning the window the update will actually carry. The
// combined bounds are re-validated since mixing original and submitted
// dates can invert the interval.
func (l FieldLocks) Sanitize(original, submitted DateWindow) (DateWindow, error) {
	if !l.Editable {
		return original, ErrDiscountExpired
	}

	from := submitted.ValidFrom()
	if l.ValidFrom {
		from = original.ValidFrom()
	}
	to := submitted.ValidTo()
	if l.ValidTo {
		to = original.ValidTo()
	}

	return NewDateWindow(from, to)
}
