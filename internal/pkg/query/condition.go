package query

import "fmt"

// Condition represents a WHERE clause condition. Implementations generate
// SQL fragments and parameter maps using Spanner's named parameter format
// (@paramName); paramIndex yields unique names (@p0, @p1, ...).
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type cmpCondition struct {
	field string
	op    string
	value interface{}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("%s %s @%s", c.field, c.op, paramName)
	return sql, map[string]interface{}{paramName: c.value}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("active", true) generates "active = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Gte creates a WHERE condition for >= comparison.
// Example: Gte("valid_to", today) generates "valid_to >= @p0"
func Gte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">=", value: value}
}

// Lte creates a WHERE condition for <= comparison.
func Lte(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<=", value: value}
}

// Gt creates a WHERE condition for > comparison.
func Gt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">", value: value}
}

// Lt creates a WHERE condition for < comparison.
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

type likeCondition struct {
	field string
	value string
}

// Like creates a case-insensitive substring match condition.
// Example: Like("name", "sale") generates "LOWER(name) LIKE @p0" with "%sale%".
func Like(field, value string) Condition {
	return &likeCondition{field: field, value: value}
}

func (c *likeCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	sql := fmt.Sprintf("LOWER(%s) LIKE @%s", c.field, paramName)
	return sql, map[string]interface{}{paramName: "%" + c.value + "%"}
}

type isNullCondition struct {
	field string
}

// IsNull creates a WHERE condition for NULL checks.
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

func (c *isNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}

type isNotNullCondition struct {
	field string
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

func (c *isNotNullCondition) SQL(int) (string, map[string]interface{}) {
	return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
}
