package m_discount

// Field name constants for the discounts table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "discounts"

	DiscountID       = "discount_id"
	Name             = "name"
	Description      = "description"
	Kind             = "kind"
	ValueNumerator   = "value_numerator"
	ValueDenominator = "value_denominator"
	ValidFrom        = "valid_from"
	ValidTo          = "valid_to"
	ProductIDs       = "product_ids"
	Active           = "active"
	Version          = "version"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)
