package m_product

// Field name constants for the products table. The table is owned by the
// catalog subsystem; this service reads it and only writes dev seed data.
const (
	TableName = "products"

	ProductID = "product_id"
	Name      = "name"
	Active    = "active"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
