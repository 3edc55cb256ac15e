// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lotsawa/canon/internal/platform/database/schema"
	"github.com/lotsawa/canon/internal/platform/dberr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/query"
)

// # Periods

func scanPeriod(row pgx.Row) (*Period, error) {
	period := &Period{}
	var name lang.Row

	targets := append([]any{&period.ID}, name.Targets()...)
	if err := row.Scan(append(targets, &period.StartYear, &period.EndYear)...); err != nil {
		return nil, err
	}

	period.Name = name.Text()
	return period, nil
}

func (repository *PostgresRepository) ListPeriods(context context.Context) ([]*Period, error) {
	listQuery := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.MediaPeriod.Columns(), ", "), schema.MediaPeriod.Table, schema.MediaPeriod.StartYear,
	)

	rows, err := repository.pool.Query(context, listQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "Period")
	}

	periods, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Period, error) { return scanPeriod(row) })
	if err != nil {
		return nil, dberr.Wrap(err, "Period")
	}
	return nonNil(periods), nil
}

func (repository *PostgresRepository) FindPeriod(context context.Context, id string) (*Period, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.MediaPeriod.Columns(), ", "), schema.MediaPeriod.Table, schema.MediaPeriod.ID,
	)

	period, err := scanPeriod(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Period")
	}
	return period, nil
}

func (repository *PostgresRepository) CreatePeriod(context context.Context, period *Period) error {
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.MediaPeriod.Table, strings.Join(schema.MediaPeriod.Columns(), ", "),
	)

	args := append([]any{period.ID}, period.Name.Args()...)
	args = append(args, period.StartYear, period.EndYear)

	_, err := repository.pool.Exec(context, insertQuery, args...)
	return dberr.Wrap(err, "Period")
}

// DeletePeriod relies on ON DELETE SET NULL to clear timeline references.
func (repository *PostgresRepository) DeletePeriod(context context.Context, id string) error {
	return repository.deleteByID(context, schema.MediaPeriod.Table, schema.MediaPeriod.ID, id, "Period")
}

// # Timeline Events

func timelineColumns() string {
	return strings.Join(schema.MediaTimelineEvent.Columns(), ", ")
}

func scanTimelineEvent(row pgx.Row, extra ...any) (*TimelineEvent, error) {
	event := &TimelineEvent{}
	var title, description lang.Row

	targets := []any{&event.ID}
	targets = append(targets, title.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets, &event.Year, &event.Era, &event.Significance, &event.PeriodID, &event.CreatedAt)

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	event.Title = title.Text()
	event.Description = description.Text()
	return event, nil
}

func (repository *PostgresRepository) ListTimeline(context context.Context, filter TimelineFilter, params pagination.Params) ([]*TimelineEvent, int, error) {
	params = params.Normalize()
	where := fmt.Sprintf("($1::text IS NULL OR %s = $1)", schema.MediaTimelineEvent.PeriodID)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.MediaTimelineEvent.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, filter.PeriodID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Timeline event")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $2 OFFSET $3
	`,
		timelineColumns(), schema.MediaTimelineEvent.Table,
		where,
		schema.MediaTimelineEvent.Year, schema.MediaTimelineEvent.ID,
	)

	rows, err := repository.pool.Query(context, listQuery, filter.PeriodID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Timeline event")
	}

	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*TimelineEvent, error) { return scanTimelineEvent(row) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Timeline event")
	}
	return nonNil(events), total, nil
}

func (repository *PostgresRepository) FindTimelineEvent(context context.Context, id string) (*TimelineEvent, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		timelineColumns(), schema.MediaTimelineEvent.Table, schema.MediaTimelineEvent.ID,
	)

	event, err := scanTimelineEvent(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Timeline event")
	}
	return event, nil
}

func (repository *PostgresRepository) CreateTimelineEvent(context context.Context, event *TimelineEvent) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING %s
	`,
		schema.MediaTimelineEvent.Table, timelineColumns(), schema.MediaTimelineEvent.CreatedAt,
	)

	args := []any{event.ID}
	args = append(args, event.Title.Args()...)
	args = append(args, event.Description.Args()...)
	args = append(args, event.Year, event.Era, event.Significance, event.PeriodID)

	err := repository.pool.QueryRow(context, insertQuery, args...).Scan(&event.CreatedAt)
	return dberr.Wrap(err, "Timeline event")
}

func (repository *PostgresRepository) DeleteTimelineEvent(context context.Context, id string) error {
	return repository.deleteByID(context, schema.MediaTimelineEvent.Table, schema.MediaTimelineEvent.ID, id, "Timeline event")
}

func (repository *PostgresRepository) SearchTimeline(context context.Context, term string, limit int) ([]*TimelineEvent, int, error) {
	searchQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $2
	`,
		timelineColumns(), schema.MediaTimelineEvent.Table,
		query.ILikeAny(schema.MediaTimelineEvent.Title.List(), 1),
		schema.MediaTimelineEvent.Year, schema.MediaTimelineEvent.ID,
	)

	rows, err := repository.pool.Query(context, searchQuery, query.LikePattern(term), limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Timeline event")
	}

	var total int
	events, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*TimelineEvent, error) { return scanTimelineEvent(row, &total) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Timeline event")
	}
	return nonNil(events), total, nil
}
