package option

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueryOption mutates a gorm query before it executes. Options compose left
// to right.
type QueryOption func(tx *gorm.DB) *gorm.DB

type QuerySortBy struct {
	SortBy  string
	OrderBy string
	Allow   map[string]bool
}

// WithSortBy orders the result set. Columns not present in Allow are ignored
// so callers can pass user-supplied sort keys safely. An empty Allow map
// rejects every column.
func WithSortBy(s QuerySortBy) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		if s.SortBy == "" || !s.Allow[s.SortBy] {
			return tx
		}
		order := "ASC"
		if s.OrderBy == "desc" || s.OrderBy == "DESC" {
			order = "DESC"
		}
		return tx.Order(fmt.Sprintf("%s %s", s.SortBy, order))
	}
}

// WithLimit caps the number of rows returned. Non-positive limits are ignored.
func WithLimit(limit int) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit)
	}
}

// Operator is a comparison operator for ApplyOperator conditions.
type Operator string

const (
	GT  Operator = ">"
	GTE Operator = ">="
	LT  Operator = "<"
	LTE Operator = "<="
	NEQ Operator = "<>"
	IN  Operator = "IN"
)

type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

// ApplyOperator adds a non-equality predicate that the struct probe passed to
// Find/FindOne cannot express.
func ApplyOperator(c Condition) QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		if c.Field == "" {
			return tx
		}
		if c.Operator == IN {
			return tx.Where(fmt.Sprintf("%s IN ?", c.Field), c.Value)
		}
		return tx.Where(fmt.Sprintf("%s %s ?", c.Field, c.Operator), c.Value)
	}
}

// LockingUpdate is a gorm scope that acquires FOR UPDATE row locks for every
// query in the transaction it is applied to.
func LockingUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// WithLockingUpdate acquires a FOR UPDATE row lock for a single query.
func WithLockingUpdate() QueryOption {
	return func(tx *gorm.DB) *gorm.DB {
		return LockingUpdate(tx)
	}
}
