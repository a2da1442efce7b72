package m_discount

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the discounts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns returns the full column list for loading a discount.
func (m *Model) ReadColumns() []string {
	return []string{
		DiscountID,
		Name,
		Description,
		Kind,
		ValueNumerator,
		ValueDenominator,
		ValidFrom,
		ValidTo,
		ProductIDs,
		Active,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}

// InsertMut creates a Spanner mutation for inserting a discount.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.DiscountID,
			data.Name,
			data.Description,
			data.Kind,
			data.ValueNumerator,
			data.ValueDenominator,
			data.ValidFrom,
			data.ValidTo,
			data.ProductIDs,
			data.Active,
			data.Version,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific discount
// fields. The updates map holds column names and new values.
func (m *Model) UpdateMut(discountID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always refresh the updated_at timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, DiscountID)
	values = append(values, discountID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
