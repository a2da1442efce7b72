package domain

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
)

// DiscountKind distinguishes how a discount value is interpreted.
type DiscountKind string

const (
	KindPercentage DiscountKind = "percentage"
	KindFixed      DiscountKind = "fixed"
)

// ParseKind converts an incoming kind string to a DiscountKind.
func ParseKind(raw string) (DiscountKind, error) {
	switch DiscountKind(raw) {
	case KindPercentage:
		return KindPercentage, nil
	case KindFixed:
		return KindFixed, nil
	default:
		return "", ErrInvalidKind
	}
}

// Bounds on discount values. Percentages live in (0, 100]; fixed amounts are
// capped at sixteen digits, matching the widest value the admin form accepts.
const (
	maxPercent     = 100
	maxValueDigits = 16
)

// Magnitude is a discount value with precise decimal arithmetic using
// big.Rat. Storing the value as a rational number (numerator/denominator)
// keeps storage round-trips lossless.
type Magnitude struct {
	rat *big.Rat
}

// NewMagnitude creates a Magnitude from numerator and denominator.
func NewMagnitude(numerator, denominator int64) (*Magnitude, error) {
	if denominator == 0 {
		return nil, ErrInvalidMagnitude
	}
	return &Magnitude{rat: big.NewRat(numerator, denominator)}, nil
}

// NormalizeValue canonicalizes a user-entered value string into a Magnitude.
//
// All non-digit runes are stripped before parsing; the admin form re-inserts
// thousands separators for display, so "1.500.000" and "1500000" are the
// same input. The returned bool reports a percentage clamp: values above 100
// are clamped down to 100 rather than rejected, a deliberate accommodation
// for fast typing that the caller surfaces as a recoverable warning.
//
// Fails with ErrInvalidMagnitude when the digits parse to zero, the input
// holds no digits at all, or a fixed value exceeds the sixteen-digit ceiling.
func NormalizeValue(raw string, kind DiscountKind) (*Magnitude, bool, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	cleaned := strings.TrimLeft(digits.String(), "0")
	if cleaned == "" {
		return nil, false, ErrInvalidMagnitude
	}
	if len(cleaned) > maxValueDigits {
		return nil, false, ErrInvalidMagnitude
	}

	// At most 16 digits, so the value always fits in int64.
	value, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil, false, ErrInvalidMagnitude
	}

	clamped := false
	if kind == KindPercentage && value > maxPercent {
		value = maxPercent
		clamped = true
	}

	return &Magnitude{rat: big.NewRat(value, 1)}, clamped, nil
}

// Validate checks the magnitude against the bounds for its kind: positive,
// within the digit ceiling, and for percentages no greater than 100. The
// clamp in NormalizeValue is a UX accommodation; this is the invariant the
// value must still satisfy before acceptance.
func (m *Magnitude) Validate(kind DiscountKind) error {
	if m == nil || m.rat.Sign() <= 0 {
		return ErrInvalidMagnitude
	}

	switch kind {
	case KindPercentage:
		if m.rat.Cmp(big.NewRat(maxPercent, 1)) > 0 {
			return ErrInvalidMagnitude
		}
	case KindFixed:
		if !m.fitsDigitCeiling() {
			return ErrInvalidMagnitude
		}
	default:
		return ErrInvalidKind
	}

	return nil
}

// fitsDigitCeiling reports whether the value stays below 10^16.
func (m *Magnitude) fitsDigitCeiling() bool {
	ceiling := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(maxValueDigits), nil))
	return m.rat.Cmp(ceiling) < 0
}

// Numerator returns the numerator and whether it fits in int64 for storage.
func (m *Magnitude) Numerator() (int64, bool) {
	return m.rat.Num().Int64(), m.rat.Num().IsInt64()
}

// Denominator returns the denominator and whether it fits in int64 for storage.
func (m *Magnitude) Denominator() (int64, bool) {
	return m.rat.Denom().Int64(), m.rat.Denom().IsInt64()
}

// IsSafeForStorage reports whether both components fit in int64 columns.
func (m *Magnitude) IsSafeForStorage() bool {
	return m.rat.Num().IsInt64() && m.rat.Denom().IsInt64()
}

// IsPositive returns true if the value is greater than zero.
func (m *Magnitude) IsPositive() bool {
	return m.rat.Sign() > 0
}

// Equals returns true if this value equals another.
func (m *Magnitude) Equals(other *Magnitude) bool {
	if other == nil {
		return false
	}
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only).
func (m *Magnitude) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns a string representation of the value.
func (m *Magnitude) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Magnitude.
func (m *Magnitude) Copy() *Magnitude {
	return &Magnitude{rat: new(big.Rat).Set(m.rat)}
}
