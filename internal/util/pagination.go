package util

import (
	"math"
	"strconv"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate never overflows: page is capped so that offset+limit fits in an int.
func Calculate(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page > math.MaxInt/size {
		page = math.MaxInt / size
	}
	offset = (page - 1) * size
	return offset, size
}

type Meta struct {
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// Paginate slices items in memory. A page past the end is empty, not an error.
func Paginate[T any](items []T, page, size int) Page[T] {
	offset, limit := Calculate(page, size)
	if page < 1 {
		page = 1
	}

	out := []T{}
	if offset < len(items) {
		end := min(offset+limit, len(items))
		out = append(out, items[offset:end]...)
	}

	total := len(items)
	return Page[T]{
		Data: out,
		Meta: Meta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
			HasPrev:    page > 1,
			HasNext:    offset+limit < total,
		},
	}
}
