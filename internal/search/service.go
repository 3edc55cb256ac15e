// Copyright (c) 2026 Lotsawa. All rights reserved.

package search

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lotsawa/canon/internal/platform/validate"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/slice"
)

// FieldType is the query parameter carrying the type filter.
const FieldType = "type"

// Aggregator runs a query against every requested source concurrently.
type Aggregator struct {
	texts      TextSource
	categories CategorySource
	news       NewsSource
	timeline   TimelineSource
	logger     *slog.Logger
}

// NewAggregator constructs an [Aggregator].
func NewAggregator(texts TextSource, categories CategorySource, news NewsSource, timeline TimelineSource, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		texts:      texts,
		categories: categories,
		news:       news,
		timeline:   timeline,
		logger:     logger,
	}
}

// ParseType validates a raw type filter. An empty filter means [TypeAll].
func ParseType(raw string) (Type, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return TypeAll, nil
	}

	allowed := slice.Map(Types, func(kind Type) string { return string(kind) })

	validator := &validate.Validator{}
	validator.OneOf(FieldType, raw, allowed...)
	if err := validator.Err(); err != nil {
		return "", err
	}
	return Type(raw), nil
}

/*
Search runs query against the selected sources.

Description: A blank term yields an envelope of empty groups without touching
any source, whatever the type; an unknown type is then reported as all. Otherwise each selected source runs in its own goroutine; the first
failure cancels the rest and is returned as is. Groups that were not selected
stay empty.

Returns:
  - *Envelope: every group present, pagination computed from the summed totals
  - error: VALIDATION_ERROR for an unknown type with a non-blank term, or the
    first source failure
*/
func (aggregator *Aggregator) Search(context context.Context, query Query) (*Envelope, error) {
	term := strings.TrimSpace(query.Term)
	kind, err := ParseType(query.Type)
	if term == "" {
		// An unusable type cannot narrow an empty result.
		if err != nil {
			kind = TypeAll
		}
		return &Envelope{
			Query:      term,
			Type:       kind,
			Results:    emptyResults(),
			Pagination: pagination.NewMeta(query.Page, 0),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	envelope := &Envelope{Query: term, Type: kind, Results: emptyResults()}

	group, groupContext := errgroup.WithContext(context)
	results := &envelope.Results

	if kind.includes(TypeContent) {
		group.Go(collect(groupContext, aggregator.texts.Search, term, &results.Content))
	}
	if kind.includes(TypeTaxonomy) {
		group.Go(collect(groupContext, aggregator.categories.Search, term, &results.Taxonomy))
	}
	if kind.includes(TypeNews) {
		group.Go(collect(groupContext, aggregator.news.SearchNews, term, &results.News))
	}
	if kind.includes(TypeTimeline) {
		group.Go(collect(groupContext, aggregator.timeline.SearchTimeline, term, &results.Timeline))
	}

	if err := group.Wait(); err != nil {
		aggregator.logger.Error("search_failed",
			slog.String("term", term),
			slog.String("type", string(kind)),
			slog.Any("error", err),
		)
		return nil, err
	}

	envelope.Pagination = pagination.NewMeta(query.Page, results.Total())
	aggregator.logger.Debug("search_completed",
		slog.String("term", term),
		slog.String("type", string(kind)),
		slog.Int("total", envelope.Pagination.Total),
	)
	return envelope, nil
}

type searchFunc[T any] func(context context.Context, term string, limit int) ([]T, int, error)

// collect runs one source and stores its capped result in target. Each
// goroutine owns a distinct target so no locking is needed.
func collect[T any](context context.Context, search searchFunc[T], term string, target *Group[T]) func() error {
	return func() error {
		items, total, err := search(context, term, PerTypeCap)
		if err != nil {
			return err
		}

		items = slice.Take(items, PerTypeCap)
		if items == nil {
			items = []T{}
		}
		*target = Group[T]{Items: items, Total: total}
		return nil
	}
}
