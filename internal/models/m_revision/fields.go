package m_revision

// Table name constant
const TableName = "discount_revisions"

// Field name constants for type-safe database access
const (
	RevisionID          = "revision_id"
	DiscountID          = "discount_id"
	OldValueNumerator   = "old_value_numerator"
	OldValueDenominator = "old_value_denominator"
	NewValueNumerator   = "new_value_numerator"
	NewValueDenominator = "new_value_denominator"
	OldValidFrom        = "old_valid_from"
	OldValidTo          = "old_valid_to"
	NewValidFrom        = "new_valid_from"
	NewValidTo          = "new_valid_to"
	ChangedAt           = "changed_at"
)
