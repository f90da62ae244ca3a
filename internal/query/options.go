package query

import "errors"

// ErrInvalidSortAttribute is returned when a caller asks to sort by an
// attribute that is not in the entity's whitelist.
var ErrInvalidSortAttribute = errors.New("invalid sort attribute")

const DefaultPageSize = 25

// Sortable is the closed set of attributes an entity can be ordered by,
// mapping the exposed attribute name to its database column. Sort requests
// are validated against it instead of resolving arbitrary field names.
type Sortable map[string]string

// Column returns the database column for an exposed attribute name.
func (s Sortable) Column(attribute string) (string, error) {
	col, ok := s[attribute]
	if !ok {
		return "", ErrInvalidSortAttribute
	}
	return col, nil
}

// Options configures one run of the filter pipeline. Zero-valued filters are
// no-ops: an absent search string or filter value never restricts the result.
type Options struct {
	ShowEnabled   bool
	ShowDisabled  bool
	SortAttribute string
	Ascending     bool
	// Search maps a database column to a case-insensitive substring.
	Search   map[string]string
	Page     int
	PageSize int
}

// DefaultOptions shows everything, sorted ascending, first page.
func DefaultOptions(sortAttribute string) Options {
	return Options{
		ShowEnabled:   true,
		ShowDisabled:  true,
		SortAttribute: sortAttribute,
		Ascending:     true,
		Page:          1,
		PageSize:      DefaultPageSize,
	}
}
