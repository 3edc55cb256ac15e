// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotsawa/canon/internal/platform/database/schema"
	"github.com/lotsawa/canon/internal/platform/dberr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
	"github.com/lotsawa/canon/pkg/query"
)

// querier is satisfied by both [pgxpool.Pool] and [pgx.Tx].
type querier interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
}

// # Shared Helpers

/*
adjustCounts adds delta to text_count on a category and all of its ancestors.

Description: A recursive CTE climbs parent_id from start; the whole chain is
updated in one statement inside the caller's transaction.
*/
func adjustCounts(context context.Context, db querier, start *string, delta int) error {
	if start == nil || delta == 0 {
		return nil
	}

	table := schema.CatalogCategory
	adjustQuery := fmt.Sprintf(`
		WITH RECURSIVE chain AS (
			SELECT %[2]s, %[3]s FROM %[1]s WHERE %[2]s = $1
			UNION ALL
			SELECT parent.%[2]s, parent.%[3]s
			FROM %[1]s parent
			JOIN chain ON parent.%[2]s = chain.%[3]s
		)
		UPDATE %[1]s SET %[4]s = %[4]s + $2
		WHERE %[2]s IN (SELECT %[2]s FROM chain)
	`, table.Table, table.ID, table.ParentID, table.TextCount)

	_, err := db.Exec(context, adjustQuery, *start, delta)
	return err
}

// identifier splits "schema.table" for CopyFrom.
func identifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(table, "."))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// whereClause joins conditions with AND; an empty list matches everything.
func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return "TRUE"
	}
	return strings.Join(conditions, " AND ")
}

// # Categories

// PostgresCategoryRepository implements [CategoryRepository] using pgx.
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository constructs a PostgreSQL backed category store.
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

func categoryColumns() string {
	return strings.Join(schema.CatalogCategory.Columns(), ", ")
}

func scanCategory(row pgx.Row, extra ...any) (*Category, error) {
	category := &Category{}
	var title, description lang.Row

	targets := []any{&category.ID, &category.Slug, &category.ParentID}
	targets = append(targets, title.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets, &category.OrderIndex, &category.IsActive, &category.TextCount, &category.CreatedAt, &category.UpdatedAt)

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	category.Title = title.Text()
	category.Description = description.Text()
	return category, nil
}

func collectCategories(rows pgx.Rows, extra ...any) ([]*Category, error) {
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Category, error) {
		return scanCategory(row, extra...)
	})
	return nonNil(categories), err
}

func (repository *PostgresCategoryRepository) findOne(context context.Context, column, value string) (*Category, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, categoryColumns(), schema.CatalogCategory.Table, column)

	category, err := scanCategory(repository.pool.QueryRow(context, findQuery, value))
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	return category, nil
}

func (repository *PostgresCategoryRepository) FindByID(context context.Context, id string) (*Category, error) {
	return repository.findOne(context, schema.CatalogCategory.ID, id)
}

func (repository *PostgresCategoryRepository) FindBySlug(context context.Context, slug string) (*Category, error) {
	return repository.findOne(context, schema.CatalogCategory.Slug, slug)
}

func (repository *PostgresCategoryRepository) List(context context.Context, filter CategoryFilter, params pagination.Params) ([]*Category, int, error) {
	params = params.Normalize()
	table := schema.CatalogCategory

	var conditions []string
	var args []any
	switch {
	case filter.ParentID != nil:
		args = append(args, *filter.ParentID)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", table.ParentID, len(args)))
	case filter.TopLevel:
		conditions = append(conditions, table.ParentID+" IS NULL")
	}
	if filter.ActiveOnly {
		conditions = append(conditions, table.IsActive)
	}
	where := whereClause(conditions)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceCategory)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d
	`,
		categoryColumns(), table.Table, where,
		table.OrderIndex, table.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, listQuery, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceCategory)
	}

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceCategory)
	}
	return categories, total, nil
}

func (repository *PostgresCategoryRepository) All(context context.Context) ([]*Category, error) {
	allQuery := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC, %s ASC`,
		categoryColumns(), schema.CatalogCategory.Table, schema.CatalogCategory.CreatedAt, schema.CatalogCategory.ID,
	)

	rows, err := repository.pool.Query(context, allQuery)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, dberr.Wrap(err, resourceCategory)
	}
	return categories, nil
}

func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	table := schema.CatalogCategory
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		table.Table, categoryColumns(), table.TextCount, table.CreatedAt, table.UpdatedAt,
	)

	args := []any{category.ID, category.Slug, category.ParentID}
	args = append(args, category.Title.Args()...)
	args = append(args, category.Description.Args()...)
	args = append(args, category.OrderIndex, category.IsActive)

	err := repository.pool.QueryRow(context, insertQuery, args...).Scan(&category.TextCount, &category.CreatedAt, &category.UpdatedAt)
	return dberr.Wrap(err, resourceCategory)
}

/*
Update stores the mutable fields of a category.

Description: The row is locked first so the count transfer below sees the
text_count that is actually being moved. Slug and text_count are never
written from the input.
*/
func (repository *PostgresCategoryRepository) Update(context context.Context, category *Category) error {
	table := schema.CatalogCategory

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	defer transaction.Rollback(context)

	var previousParent *string
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, table.ParentID, table.Table, table.ID)
	if err := transaction.QueryRow(context, lockQuery, category.ID).Scan(&previousParent); err != nil {
		return dberr.Wrap(err, resourceCategory)
	}

	title, description := table.Title, table.Description
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2,
			%s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10,
			%s = $11, %s = $12, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s, %s, %s
	`,
		table.Table,
		table.ParentID,
		title.Tibetan, title.English, title.Sanskrit, title.Chinese,
		description.Tibetan, description.English, description.Sanskrit, description.Chinese,
		table.OrderIndex, table.IsActive, table.UpdatedAt,
		table.ID,
		table.Slug, table.TextCount, table.CreatedAt, table.UpdatedAt,
	)

	args := []any{category.ID, category.ParentID}
	args = append(args, category.Title.Args()...)
	args = append(args, category.Description.Args()...)
	args = append(args, category.OrderIndex, category.IsActive)

	err = transaction.QueryRow(context, updateQuery, args...).
		Scan(&category.Slug, &category.TextCount, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}

	if !pointer.Equal(previousParent, category.ParentID) {
		if err := adjustCounts(context, transaction, previousParent, -category.TextCount); err != nil {
			return dberr.Wrap(err, resourceCategory)
		}
		if err := adjustCounts(context, transaction, category.ParentID, category.TextCount); err != nil {
			return dberr.Wrap(err, resourceCategory)
		}
	}

	return dberr.Wrap(transaction.Commit(context), resourceCategory)
}

/*
Delete removes a childless, empty category.

Description: The row is locked FOR UPDATE, which conflicts with the key-share
lock a concurrent child or text insert takes on it, so the dependent counts
below cannot go stale before the DELETE. ON DELETE RESTRICT remains as the
last line of defence.
*/
func (repository *PostgresCategoryRepository) Delete(context context.Context, id string) error {
	table := schema.CatalogCategory

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	defer transaction.Rollback(context)

	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, table.ID, table.Table, table.ID)
	if err := transaction.QueryRow(context, lockQuery, id).Scan(new(string)); err != nil {
		return dberr.Wrap(err, resourceCategory)
	}

	children, err := countWhere(context, transaction, table.Table, table.ParentID, id)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	texts, err := countWhere(context, transaction, schema.CatalogText.Table, schema.CatalogText.CategoryID, id)
	if err != nil {
		return dberr.Wrap(err, resourceCategory)
	}
	if err := DeleteBlocked(children, texts); err != nil {
		return err
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.ID)
	if _, err := transaction.Exec(context, deleteQuery, id); err != nil {
		return dberr.Wrap(err, resourceCategory)
	}

	return dberr.Wrap(transaction.Commit(context), resourceCategory)
}

func countWhere(context context.Context, db querier, table, column, value string) (int, error) {
	var count int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table, column)
	err := db.QueryRow(context, countQuery, value).Scan(&count)
	return count, err
}

func (repository *PostgresCategoryRepository) CountChildren(context context.Context, id string) (int, error) {
	count, err := countWhere(context, repository.pool, schema.CatalogCategory.Table, schema.CatalogCategory.ParentID, id)
	return count, dberr.Wrap(err, resourceCategory)
}

func (repository *PostgresCategoryRepository) Search(context context.Context, term string, limit int) ([]*Category, int, error) {
	table := schema.CatalogCategory
	searchQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s COLLATE "C" ASC
		LIMIT $2
	`,
		categoryColumns(), table.Table,
		query.ILikeAny(append([]string{table.Slug}, table.Title.List()...), 1),
		table.Slug,
	)

	rows, err := repository.pool.Query(context, searchQuery, query.LikePattern(term), limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceCategory)
	}

	var total int
	categories, err := collectCategories(rows, &total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceCategory)
	}
	return categories, total, nil
}
