package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	t.Run("plain digits", func(t *testing.T) {
		m, clamped, err := NormalizeValue("75", KindPercentage)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 75.0, m.Float64())
	})

	t.Run("thousands separators are stripped", func(t *testing.T) {
		m, clamped, err := NormalizeValue("1.500.000", KindFixed)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 1500000.0, m.Float64())
	})

	t.Run("commas and spaces are stripped", func(t *testing.T) {
		m, _, err := NormalizeValue(" 12,500 ", KindFixed)
		require.NoError(t, err)
		assert.Equal(t, 12500.0, m.Float64())
	})

	t.Run("percentage above 100 clamps with warning", func(t *testing.T) {
		m, clamped, err := NormalizeValue("150", KindPercentage)
		require.NoError(t, err)
		assert.True(t, clamped)
		assert.Equal(t, 100.0, m.Float64())
	})

	t.Run("percentage of exactly 100 does not clamp", func(t *testing.T) {
		m, clamped, err := NormalizeValue("100", KindPercentage)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 100.0, m.Float64())
	})

	t.Run("no percentage clamp for fixed values", func(t *testing.T) {
		m, clamped, err := NormalizeValue("150", KindFixed)
		require.NoError(t, err)
		assert.False(t, clamped)
		assert.Equal(t, 150.0, m.Float64())
	})

	t.Run("zero is rejected", func(t *testing.T) {
		_, _, err := NormalizeValue("0", KindFixed)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})

	t.Run("no digits at all is rejected", func(t *testing.T) {
		_, _, err := NormalizeValue("abc", KindFixed)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, _, err := NormalizeValue("", KindFixed)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})

	t.Run("sixteen digits is the ceiling", func(t *testing.T) {
		m, _, err := NormalizeValue(strings.Repeat("9", 16), KindFixed)
		require.NoError(t, err)
		assert.True(t, m.IsPositive())

		_, _, err = NormalizeValue(strings.Repeat("9", 17), KindFixed)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})

	t.Run("leading zeros do not count against the ceiling", func(t *testing.T) {
		m, _, err := NormalizeValue("000000000000000000042", KindFixed)
		require.NoError(t, err)
		assert.Equal(t, 42.0, m.Float64())
	})
}

// Round-tripping through display formatting must not change the numeric
// result: normalize(display(normalize(raw))) == normalize(raw).
func TestNormalizeValue_DisplayRoundTrip(t *testing.T) {
	display := func(m *Magnitude) string {
		// Re-insert thousands separators the way the admin form renders.
		s := m.rat.FloatString(0)
		var b strings.Builder
		for i, r := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				b.WriteRune('.')
			}
			b.WriteRune(r)
		}
		return b.String()
	}

	for _, raw := range []string{"7", "1500000", "999999", "150"} {
		first, _, err := NormalizeValue(raw, KindFixed)
		require.NoError(t, err)

		second, _, err := NormalizeValue(display(first), KindFixed)
		require.NoError(t, err)

		assert.True(t, first.Equals(second), "round trip changed %q", raw)
	}
}

func TestMagnitude_Validate(t *testing.T) {
	t.Run("valid percentage", func(t *testing.T) {
		m, _ := NewMagnitude(50, 1)
		assert.NoError(t, m.Validate(KindPercentage))
	})

	t.Run("percentage above 100 rejected", func(t *testing.T) {
		m, _ := NewMagnitude(101, 1)
		assert.ErrorIs(t, m.Validate(KindPercentage), ErrInvalidMagnitude)
	})

	t.Run("negative rejected", func(t *testing.T) {
		m, _ := NewMagnitude(-5, 1)
		assert.ErrorIs(t, m.Validate(KindFixed), ErrInvalidMagnitude)
	})

	t.Run("zero rejected", func(t *testing.T) {
		m, _ := NewMagnitude(0, 1)
		assert.ErrorIs(t, m.Validate(KindFixed), ErrInvalidMagnitude)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		m, _ := NewMagnitude(10, 1)
		assert.ErrorIs(t, m.Validate(DiscountKind("bogus")), ErrInvalidKind)
	})

	t.Run("zero denominator rejected at construction", func(t *testing.T) {
		_, err := NewMagnitude(10, 0)
		assert.ErrorIs(t, err, ErrInvalidMagnitude)
	})
}

func TestMagnitude_Copy(t *testing.T) {
	m, _ := NewMagnitude(30, 1)
	c := m.Copy()
	require.True(t, m.Equals(c))

	c.rat.SetInt64(99)
	assert.False(t, m.Equals(c))
}
