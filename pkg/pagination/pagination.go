// Package pagination holds the page and keyset pagination parameters shared by list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

func clampPerPage(n int) int {
	switch {
	case n < 1:
		return defaultPerPage
	case n > maxPerPage:
		return maxPerPage
	}
	return n
}

// PaginationParams selects a page of an offset-paginated listing
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the first page with the default page size
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps the page to >= 1 and the page size to [1, 100]
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = clampPerPage(p.PerPage)
}

func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination is the page metadata returned with a listing
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// CursorDirection is the side of the cursor a keyset page is read from
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the keyset position encoded in an opaque cursor string
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CursorParams selects a keyset page
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

func (c *CursorParams) Validate() {
	c.Limit = clampPerPage(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns nil, nil when no cursor was sent
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor format: %w", err)
	}

	var cursor Cursor
	if err := json.Unmarshal(decoded, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor data: %w", err)
	}
	return &cursor, nil
}

func EncodeCursor(id string, createdAt time.Time) string {
	data, _ := json.Marshal(Cursor{ID: id, CreatedAt: createdAt})
	return base64.URLEncoding.EncodeToString(data)
}

// CursorPagination is the keyset metadata returned with a listing
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// NewCursorPagination trims items fetched with limit+1 back to the requested limit
// and builds the cursors of the first and last kept item. A prev page arrives
// newest first, so it is reversed back into ascending order.
func NewCursorPagination[T any](items []T, params *CursorParams, getID func(T) string, getCreatedAt func(T) time.Time) (*CursorPagination, []T) {
	hasMore := len(items) > params.Limit
	if hasMore {
		items = items[:params.Limit]
	}

	pag := &CursorPagination{Limit: params.Limit}
	if params.Direction == CursorDirectionPrev {
		slices.Reverse(items)
		pag.HasPrev = hasMore
		pag.HasNext = params.Cursor != ""
	} else {
		pag.HasNext = hasMore
		pag.HasPrev = params.Cursor != ""
	}

	if len(items) > 0 {
		last := items[len(items)-1]
		next := EncodeCursor(getID(last), getCreatedAt(last))
		pag.NextCursor = &next

		first := items[0]
		prev := EncodeCursor(getID(first), getCreatedAt(first))
		pag.PrevCursor = &prev
	}
	return pag, items
}

// UnifiedPaginationParams accepts either page or cursor parameters.
// Any cursor or limit switches the listing to keyset pagination.
type UnifiedPaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`

	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

func (u *UnifiedPaginationParams) IsCursorBased() bool {
	return u.Cursor != "" || u.Limit > 0
}

func (u *UnifiedPaginationParams) ToPaginationParams() *PaginationParams {
	params := &PaginationParams{Page: u.Page, PerPage: u.PerPage}
	params.Validate()
	return params
}

// ToCursorParams falls back to per_page when no limit was sent
func (u *UnifiedPaginationParams) ToCursorParams() *CursorParams {
	params := &CursorParams{Cursor: u.Cursor, Direction: u.Direction, Limit: u.Limit}
	if params.Limit == 0 {
		params.Limit = u.PerPage
	}
	params.Validate()
	return params
}

// UnifiedPaginatedResult carries the page fields or the cursor fields, depending on
// how the listing was requested
type UnifiedPaginatedResult[T any] struct {
	Items []T `json:"items"`

	CurrentPage *int   `json:"current_page,omitempty"`
	TotalPages  *int   `json:"total_pages,omitempty"`
	Total       *int64 `json:"total,omitempty"`

	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`

	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
	PerPage int  `json:"per_page"`
}

func NewUnifiedPaginatedResultFromPage[T any](items []T, p *Pagination) *UnifiedPaginatedResult[T] {
	return &UnifiedPaginatedResult[T]{
		Items:       items,
		CurrentPage: &p.CurrentPage,
		TotalPages:  &p.TotalPages,
		Total:       &p.Total,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
		PerPage:     p.PerPage,
	}
}

func NewUnifiedPaginatedResultFromCursor[T any](items []T, p *CursorPagination) *UnifiedPaginatedResult[T] {
	return &UnifiedPaginatedResult[T]{
		Items:      items,
		NextCursor: p.NextCursor,
		PrevCursor: p.PrevCursor,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		PerPage:    p.Limit,
	}
}
