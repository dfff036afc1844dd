package pagination

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/callqa/pkg/query"
)

// SortFields wraps []query.SortField with flexible JSON unmarshaling.
// Accepts either a string ("clinic_name,-call_start_time") or an array of SortField objects.
type SortFields []query.SortField

// UnmarshalJSON supports unmarshaling from a comma-separated string or array format.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest represents a client request for a 1-based page of data with optional sorting.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize adjusts the request to ensure valid pagination values based on the config.
// Page is capped so Offset cannot overflow; a capped page lies past any real
// result set and reads as empty.
func (r *PageRequest) Normalize(cfg Config) {
	r.PageSize = cfg.PageSize(r.PageSize)
	if r.Page < 1 {
		r.Page = 1
	}
	if last := math.MaxInt / r.PageSize; r.Page > last {
		r.Page = last
	}
}

// Offset calculates the number of records to skip based on page and page size.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, page_size, sort. When sort is absent, the
// sort_by and sort_order pair is accepted instead, with sort_order
// defaulting to desc.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	sort := query.ParseSortFields(values.Get("sort"))
	if sort == nil {
		sort = SortFromPair(values.Get("sort_by"), values.Get("sort_order"))
	}

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
	}

	req.Normalize(cfg)
	return req
}

// SortFromPair builds a single-field sort from a field name and an order.
// Order is descending unless it is "asc". Returns nil for an empty field.
func SortFromPair(field, order string) []query.SortField {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	return []query.SortField{{
		Field:      field,
		Descending: !strings.EqualFold(strings.TrimSpace(order), "asc"),
	}}
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
// TotalPages is ceil(total / pageSize), and zero when total is zero.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	totalPages := 0
	if total > 0 && pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
