package query

import (
	"gorm.io/gorm"
)

// Page is one bounded slice of an ordered result set. Items are detached
// value copies; nothing in a Page can lazily re-query the store.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalRows  int64 `json:"total_rows"`
	TotalPages int   `json:"total_pages"`
}

// TotalPages computes a 1-minimum page count so an empty result still has
// one (empty) page.
func TotalPages(totalRows int64, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := int((totalRows + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// List runs the pipeline: filter stages, whitelist-validated sort, then
// pagination. Out-of-range pages return an empty page with correct metadata
// rather than an error. Extra scopes are applied before counting so search
// and foreign-key filters shape the total too.
func List[T any](db *gorm.DB, sortable Sortable, opts Options, scopes ...Scope) (Page[T], error) {
	page := Page[T]{
		Items:    []T{},
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}
	if page.PageSize <= 0 {
		page.PageSize = DefaultPageSize
	}

	order, err := OrderBy(sortable, opts.SortAttribute, opts.Ascending)
	if err != nil {
		return page, err
	}

	var model T
	filtered := db.Model(&model).Scopes(FilterEnabled(opts.ShowEnabled, opts.ShowDisabled))
	for column, text := range opts.Search {
		filtered = filtered.Scopes(SearchField(column, text))
	}
	for _, scope := range scopes {
		filtered = filtered.Scopes(scope)
	}
	// New session so the chain can run Count and Find without the first
	// finisher polluting the second.
	filtered = filtered.Session(&gorm.Session{})

	if err := filtered.Count(&page.TotalRows).Error; err != nil {
		return page, err
	}
	page.TotalPages = TotalPages(page.TotalRows, page.PageSize)

	if opts.Page < 1 || opts.Page > page.TotalPages {
		return page, nil
	}

	offset := (opts.Page - 1) * page.PageSize
	err = filtered.Scopes(order).Offset(offset).Limit(page.PageSize).Find(&page.Items).Error
	return page, err
}
