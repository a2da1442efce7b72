package m_product

import "cloud.google.com/go/spanner"

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns returns the column list for reading products.
func (m *Model) ReadColumns() []string {
	return []string{ProductID, Name, Active, CreatedAt, UpdatedAt}
}

// InsertMut creates a Spanner mutation for seeding a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		m.ReadColumns(),
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Active,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}
