package m_discount

import "time"

// Data represents the database model for the discounts table. Validity
// bounds are stored as midnight-UTC timestamps, one row per discount; the
// covered product set lives in an ARRAY column since it is only ever read
// and written whole.
type Data struct {
	DiscountID       string    `spanner:"discount_id"`
	Name             string    `spanner:"name"`
	Description      string    `spanner:"description"`
	Kind             string    `spanner:"kind"`
	ValueNumerator   int64     `spanner:"value_numerator"`
	ValueDenominator int64     `spanner:"value_denominator"`
	ValidFrom        time.Time `spanner:"valid_from"`
	ValidTo          time.Time `spanner:"valid_to"`
	ProductIDs       []string  `spanner:"product_ids"`
	Active           bool      `spanner:"active"`
	Version          int64     `spanner:"version"`
	CreatedAt        time.Time `spanner:"created_at"`
	UpdatedAt        time.Time `spanner:"updated_at"`
}
