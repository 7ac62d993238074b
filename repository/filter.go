package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Op is a comparison operator usable in a filter condition.
type Op string

const (
	OpEq       Op = "eq"
	OpContains Op = "contains"
	OpGte      Op = "gte"
	OpLt       Op = "lt"
)

// Condition compares a single column against a value. Field is a column name
// chosen by calling code, never taken from a client.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Filter is a conjunction of conditions. An empty filter matches every
// record.
type Filter []Condition

// apply translates the filter into parameterized WHERE clauses. Substring
// matching uses LIKE, so its case sensitivity is whatever the store's
// collation says.
func (f Filter) apply(tx *gorm.DB) *gorm.DB {
	for _, c := range f {
		switch c.Op {
		case OpContains:
			tx = tx.Where(c.Field+" LIKE ?", "%"+fmt.Sprint(c.Value)+"%")
		case OpGte:
			tx = tx.Where(c.Field+" >= ?", c.Value)
		case OpLt:
			tx = tx.Where(c.Field+" < ?", c.Value)
		default:
			tx = tx.Where(c.Field+" = ?", c.Value)
		}
	}
	return tx
}
