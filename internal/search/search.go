// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package search implements the federated catalog search.

One query fans out to every requested collection at once. Each collection
answers with at most [PerTypeCap] items and the full number of matches, and the
groups are returned side by side. Paging applies to the envelope metadata only;
the capped groups are never re-sliced.

# Types

  - content: texts, matched on every title language and the catalogue numbers
  - taxonomy: categories, matched on slug and title
  - news: news items, matched on title
  - timeline: timeline events, matched on title
*/
package search

import (
	"context"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/constants"
	"github.com/lotsawa/canon/pkg/pagination"
)

// PerTypeCap is the most items any one group carries.
const PerTypeCap = constants.SearchPerTypeCap

// Type selects the collections a query runs against.
type Type string

const (
	TypeAll      Type = "all"
	TypeContent  Type = "content"
	TypeTaxonomy Type = "taxonomy"
	TypeNews     Type = "news"
	TypeTimeline Type = "timeline"
)

// Types lists every accepted type filter.
var Types = []Type{TypeAll, TypeContent, TypeTaxonomy, TypeNews, TypeTimeline}

func (t Type) includes(kind Type) bool {
	return t == TypeAll || t == kind
}

// # Sources

// TextSource matches texts. Both catalog backends satisfy it.
type TextSource interface {
	Search(context context.Context, term string, limit int) ([]*catalog.Text, int, error)
}

// CategorySource matches categories.
type CategorySource interface {
	Search(context context.Context, term string, limit int) ([]*catalog.Category, int, error)
}

// NewsSource matches news items.
type NewsSource interface {
	SearchNews(context context.Context, term string, limit int) ([]*media.NewsItem, int, error)
}

// TimelineSource matches timeline events.
type TimelineSource interface {
	SearchTimeline(context context.Context, term string, limit int) ([]*media.TimelineEvent, int, error)
}

// # Results

// Query is one search request.
type Query struct {
	Term string
	// Type is the raw filter; empty means all.
	Type string
	Page pagination.Params
}

// Group is the result for one collection. Items is never nil; Total counts
// every match, not only the ones returned.
type Group[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func emptyGroup[T any]() Group[T] {
	return Group[T]{Items: []T{}}
}

// Results always carries all four groups so the response shape does not
// depend on the type filter.
type Results struct {
	Content  Group[*catalog.Text]        `json:"content"`
	Taxonomy Group[*catalog.Category]    `json:"taxonomy"`
	News     Group[*media.NewsItem]      `json:"news"`
	Timeline Group[*media.TimelineEvent] `json:"timeline"`
}

func emptyResults() Results {
	return Results{
		Content:  emptyGroup[*catalog.Text](),
		Taxonomy: emptyGroup[*catalog.Category](),
		News:     emptyGroup[*media.NewsItem](),
		Timeline: emptyGroup[*media.TimelineEvent](),
	}
}

// Total is the sum of the per-group totals.
func (results Results) Total() int {
	return results.Content.Total + results.Taxonomy.Total + results.News.Total + results.Timeline.Total
}

// Envelope is the search response body.
type Envelope struct {
	Query      string          `json:"query"`
	Type       Type            `json:"type"`
	Results    Results         `json:"results"`
	Pagination pagination.Meta `json:"pagination"`
}
