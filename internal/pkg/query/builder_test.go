package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("discounts").
		Select("discount_id", "name", "kind").
		Build()

	assert.Equal(t, "SELECT discount_id, name, kind FROM discounts", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("discounts").Build()

	assert.Equal(t, "SELECT * FROM discounts", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("discounts").
		Select("discount_id", "name").
		Where(Eq("kind", "percentage")).
		Where(Eq("active", true)).
		Build()

	assert.Equal(t, "SELECT discount_id, name FROM discounts WHERE kind = @p0 AND active = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "percentage",
		"p1": true,
	}, stmt.Params)
}

func TestBuilder_CompleteQuery(t *testing.T) {
	stmt := From("discounts").
		Select("discount_id", "name", "kind", "active").
		Where(Eq("kind", "fixed")).
		Where(Eq("active", true)).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100).
		Build()

	expectedSQL := "SELECT discount_id, name, kind, active FROM discounts WHERE kind = @p0 AND active = @p1 ORDER BY created_at DESC LIMIT @limit OFFSET @offset"
	assert.Equal(t, expectedSQL, stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "fixed",
		"p1":     true,
		"limit":  int64(50),
		"offset": int64(100),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	builder := From("discounts").
		Select("discount_id", "name").
		Where(Eq("active", true)).
		OrderBy("created_at", Desc).
		Limit(50).
		Offset(100)

	// Count query reuses WHERE but drops pagination and ordering.
	countStmt := builder.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM discounts WHERE active = @p0", countStmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": true}, countStmt.Params)

	// Original builder is unchanged.
	mainStmt := builder.Build()
	assert.Contains(t, mainStmt.SQL, "LIMIT @limit")
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("discounts").Select("discount_id")

	stmt1 := base.Where(Eq("active", true)).Build()
	stmt2 := base.Where(Eq("kind", "percentage")).Build()

	assert.Contains(t, stmt1.SQL, "active = @p0")
	assert.NotContains(t, stmt1.SQL, "kind")

	assert.Contains(t, stmt2.SQL, "kind = @p0")
	assert.NotContains(t, stmt2.SQL, "active")
}

func TestCondition_Comparisons(t *testing.T) {
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cond Condition
		sql  string
	}{
		{"gte", Gte("valid_to", today), "valid_to >= @p0"},
		{"lte", Lte("valid_from", today), "valid_from <= @p0"},
		{"gt", Gt("valid_to", today), "valid_to > @p0"},
		{"lt", Lt("valid_from", today), "valid_from < @p0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.cond.SQL(0)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, map[string]interface{}{"p0": today}, params)
		})
	}
}

func TestCondition_ParamIndexing(t *testing.T) {
	sql, params := Eq("kind", "fixed").SQL(5)
	assert.Equal(t, "kind = @p5", sql)
	assert.Equal(t, map[string]interface{}{"p5": "fixed"}, params)
}

func TestCondition_Like(t *testing.T) {
	sql, params := Like("name", "Sale").SQL(2)
	assert.Equal(t, "LOWER(name) LIKE @p2", sql)
	assert.Equal(t, map[string]interface{}{"p2": "%Sale%"}, params)
}

func TestCondition_NullChecks(t *testing.T) {
	sql, params := IsNull("updated_at").SQL(0)
	assert.Equal(t, "updated_at IS NULL", sql)
	assert.Empty(t, params)

	sql, params = IsNotNull("updated_at").SQL(0)
	assert.Equal(t, "updated_at IS NOT NULL", sql)
	assert.Empty(t, params)
}

func TestBuilder_ReservationQuery(t *testing.T) {
	// The shape the exclusivity snapshot uses: active discounts whose
	// window has not fully lapsed.
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	stmt := From("discounts").
		Select("discount_id", "product_ids", "valid_from", "valid_to", "active").
		Where(Eq("active", true)).
		Where(Gte("valid_to", today)).
		Build()

	assert.Equal(t,
		"SELECT discount_id, product_ids, valid_from, valid_to, active FROM discounts WHERE active = @p0 AND valid_to >= @p1",
		stmt.SQL)
	require.Len(t, stmt.Params, 2)
}

func TestBuilder_String(t *testing.T) {
	str := From("discounts").Select("discount_id").Where(Eq("active", true)).String()
	require.NotEmpty(t, str)
	assert.Contains(t, str, "SQL:")
	assert.Contains(t, str, "discounts")
}
