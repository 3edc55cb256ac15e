// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
// Every list operation, regardless of backend, derives its page window and its
// metadata from this package so that paging behaves the same for every entity.
package pagination

import (
	"math"
	"net/http"

	"github.com/lotsawa/canon/pkg/convert"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// MinLimit is the lower bound for items per page.
	MinLimit = 1
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Default returns the parameters used when a caller supplies none.
func Default() Params {
	return Params{Page: DefaultPage, Limit: DefaultLimit}
}

// Normalize clamps Limit to [MinLimit, MaxLimit] and Page to at least 1.
// A zero Limit is treated as "not supplied" and becomes [DefaultLimit].
// Page is capped so that Page*Limit never overflows an int.
func (p Params) Normalize() Params {
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < MinLimit {
		p.Limit = MinLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
// The params are normalized first, so the result is never negative.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewMeta constructs pagination metadata for a response.
//
// The params are normalized first, so the metadata always reflects the window
// that was actually served.
func NewMeta(params Params, total int) Meta {
	params = params.Normalize()
	if total < 0 {
		total = 0
	}

	totalPages := (total + params.Limit - 1) / params.Limit

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}

// Slice returns the page window of items described by params, together with
// its metadata.
//
// It never fails: a page past the end yields an empty (non-nil) slice with
// correct metadata. The returned slice shares the backing array of items.
func Slice[T any](items []T, params Params) ([]T, Meta) {
	params = params.Normalize()
	meta := NewMeta(params, len(items))

	offset := params.Offset()
	if offset < 0 || offset >= len(items) {
		return []T{}, meta
	}

	end := offset + params.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end], meta
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Missing or unparseable values fall back to [DefaultPage] and [DefaultLimit];
// out-of-range values are clamped into [MinLimit, MaxLimit] and page >= 1.
func FromRequest(r *http.Request) Params {
	page := convert.ToIntD(r.URL.Query().Get("page"), DefaultPage)
	limit := convert.ToIntD(r.URL.Query().Get("limit"), DefaultLimit)

	if limit == 0 {
		limit = MinLimit
	}

	return Params{Page: page, Limit: limit}.Normalize()
}
