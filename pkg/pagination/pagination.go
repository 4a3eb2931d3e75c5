package pagination

import (
	"strconv"
	"strings"

	appErrors "shopping-list-api/pkg/errors"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a validated listing request. A non-empty Query switches the
// listing into search mode, which returns every match unpaginated.
type Params struct {
	Page  int
	Limit int
	Query string
}

// Parse validates raw query values. Empty values take the defaults; anything
// else must be an integer in range.
func Parse(page, limit, query string) (Params, error) {
	p := Params{Page: DefaultPage, Limit: DefaultLimit, Query: strings.TrimSpace(query)}

	var err error
	if page != "" {
		if p.Page, err = strconv.Atoi(strings.TrimSpace(page)); err != nil || p.Page < 1 {
			return Params{}, appErrors.ErrInvalidPagination
		}
	}
	if limit != "" {
		if p.Limit, err = strconv.Atoi(strings.TrimSpace(limit)); err != nil || p.Limit < 1 {
			return Params{}, appErrors.ErrInvalidPagination
		}
		if p.Limit > MaxLimit {
			return Params{}, appErrors.ErrInvalidPagination.WithMessage("limit must not exceed 100")
		}
	}

	return p, nil
}

func (p Params) Searching() bool {
	return p.Query != ""
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pattern returns the escaped LIKE pattern for the search query, to be used
// with `LIKE ? ESCAPE '\'`.
func (p Params) Pattern() string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(p.Query)) + "%"
}

// Apply orders db by column and, outside search mode, limits it to the page.
func Apply(db *gorm.DB, p Params, column string) *gorm.DB {
	db = db.Order(column + " ASC")
	if p.Searching() {
		return db
	}
	return db.Offset(p.Offset()).Limit(p.Limit)
}

// Search filters db to rows whose column contains the query, case-insensitively.
func Search(db *gorm.DB, p Params, column string) *gorm.DB {
	if !p.Searching() {
		return db
	}
	return db.Where("LOWER("+column+`) LIKE ? ESCAPE '\'`, p.Pattern())
}

type Result[T any] struct {
	Items        []T   `json:"items"`
	Total        int64 `json:"total"`
	Page         int   `json:"page,omitempty"`
	Limit        int   `json:"limit,omitempty"`
	PreviousPage *int  `json:"previous_page"`
	NextPage     *int  `json:"next_page"`
}

// NewResult wraps one page (or the whole search match set) of items. An empty
// page is an EMPTY_RESULT error in both modes.
func NewResult[T any](items []T, total int64, p Params) (*Result[T], error) {
	if len(items) == 0 {
		return nil, appErrors.ErrEmptyResult
	}

	if p.Searching() {
		return &Result[T]{Items: items, Total: int64(len(items))}, nil
	}

	res := &Result[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}
	if p.Page > 1 {
		prev := p.Page - 1
		res.PreviousPage = &prev
	}
	if int64(p.Page)*int64(p.Limit) < total {
		next := p.Page + 1
		res.NextPage = &next
	}

	return res, nil
}

// Map converts the items of r while keeping its paging fields.
func Map[T, U any](r *Result[T], fn func(T) U) *Result[U] {
	items := make([]U, len(r.Items))
	for i, item := range r.Items {
		items[i] = fn(item)
	}
	return &Result[U]{
		Items:        items,
		Total:        r.Total,
		Page:         r.Page,
		Limit:        r.Limit,
		PreviousPage: r.PreviousPage,
		NextPage:     r.NextPage,
	}
}
