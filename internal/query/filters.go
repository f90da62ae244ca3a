package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is one composable filter stage. Stages on disjoint columns are
// order-independent.
type Scope = func(*gorm.DB) *gorm.DB

// Identity leaves the query untouched.
func Identity(db *gorm.DB) *gorm.DB { return db }

// FilterEnabled restricts by the enabled flag. Both flags set means no
// filter; neither set means an empty result. The reference system silently
// fell through to "all" in the neither case, which reads like a bug: two
// unchecked status boxes now select nothing.
func FilterEnabled(showEnabled, showDisabled bool) Scope {
	switch {
	case showEnabled && showDisabled:
		return Identity
	case !showEnabled && !showDisabled:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}
	default:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("enabled = ?", showEnabled)
		}
	}
}

// SearchField matches rows whose column contains text, case-insensitively.
// An empty text is the identity. The column always comes from a Sortable or
// a controller constant, never from request input. A bare column name is
// qualified with the statement's own table; "table.column" names keep their
// explicit table.
func SearchField(column, text string) Scope {
	if text == "" {
		return Identity
	}
	pattern := "%" + strings.ToLower(text) + "%"
	col := clause.Column{Table: clause.CurrentTable, Name: column}
	if i := strings.IndexByte(column, '.'); i >= 0 {
		col.Table = column[:i]
		col.Name = column[i+1:]
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("lower(?) LIKE ?", col, pattern)
	}
}

// FilterField applies an exact match on column, typically a foreign key.
// A nil value is the identity.
func FilterField(column string, value any) Scope {
	if value == nil {
		return Identity
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s = ?", column), value)
	}
}

// OrderBy validates the requested attribute against the whitelist and orders
// by it, breaking ties on id so pagination is deterministic across calls.
// Both columns are qualified with the statement's own table so the ordering
// stays unambiguous when a join scope is in play.
func OrderBy(sortable Sortable, attribute string, ascending bool) (Scope, error) {
	column, err := sortable.Column(attribute)
	if err != nil {
		return nil, err
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: column},
			Desc:   !ascending,
		}).Order(clause.OrderByColumn{
			Column: clause.Column{Table: clause.CurrentTable, Name: "id"},
		})
	}, nil
}
