package m_revision

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a discount revision record: the before/after value and
// window of an update, for the admin audit screen. Old columns are null on
// the creation revision.
type Data struct {
	RevisionID          string            `spanner:"revision_id"`
	DiscountID          string            `spanner:"discount_id"`
	OldValueNumerator   spanner.NullInt64 `spanner:"old_value_numerator"`
	OldValueDenominator spanner.NullInt64 `spanner:"old_value_denominator"`
	NewValueNumerator   int64             `spanner:"new_value_numerator"`
	NewValueDenominator int64             `spanner:"new_value_denominator"`
	OldValidFrom        spanner.NullTime  `spanner:"old_valid_from"`
	OldValidTo          spanner.NullTime  `spanner:"old_valid_to"`
	NewValidFrom        time.Time         `spanner:"new_valid_from"`
	NewValidTo          time.Time         `spanner:"new_valid_to"`
	ChangedAt           time.Time         `spanner:"changed_at"`
}

// Model provides type-safe database operations for discount revisions.
type Model struct{}

// NewModel creates a new revision model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a revision record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	mut, _ := spanner.InsertStruct(TableName, data)
	return mut
}

// ReadColumns returns the column names for reading revisions.
func (m *Model) ReadColumns() []string {
	return []string{
		RevisionID,
		DiscountID,
		OldValueNumerator,
		OldValueDenominator,
		NewValueNumerator,
		NewValueDenominator,
		OldValidFrom,
		OldValidTo,
		NewValidFrom,
		NewValidTo,
		ChangedAt,
	}
}
