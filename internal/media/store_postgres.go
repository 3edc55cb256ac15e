// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotsawa/canon/internal/platform/database/schema"
	"github.com/lotsawa/canon/internal/platform/dberr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/query"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed media store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # News

func newsColumns() string {
	return strings.Join(schema.MediaNews.Columns(), ", ")
}

func scanNews(row pgx.Row, extra ...any) (*NewsItem, error) {
	item := &NewsItem{}
	var title, description lang.Row

	targets := []any{&item.ID}
	targets = append(targets, title.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets, &item.PublishedAt, &item.IsActive, &item.CreatedAt)

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	item.Title = title.Text()
	item.Description = description.Text()
	return item, nil
}

func (repository *PostgresRepository) ListNews(context context.Context, filter NewsFilter, params pagination.Params) ([]*NewsItem, int, error) {
	params = params.Normalize()
	where := fmt.Sprintf("($1 = FALSE OR %s)", schema.MediaNews.IsActive)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.MediaNews.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, filter.ActiveOnly).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "News item")
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s DESC, %s ASC
		LIMIT $2 OFFSET $3
	`,
		newsColumns(), schema.MediaNews.Table,
		where,
		schema.MediaNews.PublishedAt, schema.MediaNews.ID,
	)

	rows, err := repository.pool.Query(context, listQuery, filter.ActiveOnly, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "News item")
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*NewsItem, error) { return scanNews(row) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "News item")
	}
	return nonNil(items), total, nil
}

func (repository *PostgresRepository) FindNews(context context.Context, id string) (*NewsItem, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, newsColumns(), schema.MediaNews.Table, schema.MediaNews.ID)

	item, err := scanNews(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, "News item")
	}
	return item, nil
}

func (repository *PostgresRepository) CreateNews(context context.Context, item *NewsItem) error {
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING %s
	`,
		schema.MediaNews.Table, newsColumns(), schema.MediaNews.CreatedAt,
	)

	args := []any{item.ID}
	args = append(args, item.Title.Args()...)
	args = append(args, item.Description.Args()...)
	args = append(args, item.PublishedAt, item.IsActive)

	err := repository.pool.QueryRow(context, insertQuery, args...).Scan(&item.CreatedAt)
	return dberr.Wrap(err, "News item")
}

func (repository *PostgresRepository) DeleteNews(context context.Context, id string) error {
	return repository.deleteByID(context, schema.MediaNews.Table, schema.MediaNews.ID, id, "News item")
}

/*
SearchNews matches term against every news title language.

Description: COUNT(*) OVER() reports the number of matches before LIMIT is
applied, so the capped page and the full total come back in one round-trip.
*/
func (repository *PostgresRepository) SearchNews(context context.Context, term string, limit int) ([]*NewsItem, int, error) {
	searchQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s DESC, %s ASC
		LIMIT $2
	`,
		newsColumns(), schema.MediaNews.Table,
		query.ILikeAny(schema.MediaNews.Title.List(), 1),
		schema.MediaNews.PublishedAt, schema.MediaNews.ID,
	)

	rows, err := repository.pool.Query(context, searchQuery, query.LikePattern(term), limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "News item")
	}

	var total int
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*NewsItem, error) { return scanNews(row, &total) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, "News item")
	}
	return nonNil(items), total, nil
}

// # Shared helpers

// deleteByID removes one row and reports NotFound when nothing matched.
func (repository *PostgresRepository) deleteByID(context context.Context, table, idColumn, id, resource string) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, idColumn)

	command, err := repository.pool.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, resource)
	}

	if command.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resource)
	}
	return nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
