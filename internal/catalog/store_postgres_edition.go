// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

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
)

// PostgresEditionRepository implements [EditionRepository] using pgx.
type PostgresEditionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEditionRepository constructs a PostgreSQL backed edition store.
func NewPostgresEditionRepository(pool *pgxpool.Pool) *PostgresEditionRepository {
	return &PostgresEditionRepository{pool: pool}
}

func editionColumns() string {
	return strings.Join(schema.CatalogEdition.Columns(), ", ")
}

func scanEdition(row pgx.Row) (*Edition, error) {
	edition := &Edition{}
	var name, description lang.Row

	targets := []any{&edition.ID}
	targets = append(targets, name.Targets()...)
	targets = append(targets, description.Targets()...)
	targets = append(targets,
		&edition.Year, &edition.Location, &edition.VolumeCount, &edition.TextCount,
		&edition.IsActive, &edition.CreatedAt, &edition.UpdatedAt,
	)

	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	edition.Name = name.Text()
	edition.Description = description.Text()
	return edition, nil
}

func (repository *PostgresEditionRepository) FindByID(context context.Context, id string) (*Edition, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, editionColumns(), schema.CatalogEdition.Table, schema.CatalogEdition.ID)

	edition, err := scanEdition(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceEdition)
	}
	return edition, nil
}

func (repository *PostgresEditionRepository) List(context context.Context, filter EditionFilter, params pagination.Params) ([]*Edition, int, error) {
	params = params.Normalize()
	table := schema.CatalogEdition
	where := fmt.Sprintf("($1 = FALSE OR %s)", table.IsActive)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, filter.ActiveOnly).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceEdition)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $2 OFFSET $3
	`,
		editionColumns(), table.Table, where, table.ID,
	)

	rows, err := repository.pool.Query(context, listQuery, filter.ActiveOnly, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceEdition)
	}

	editions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Edition, error) { return scanEdition(row) })
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceEdition)
	}
	return nonNil(editions), total, nil
}

func (repository *PostgresEditionRepository) Create(context context.Context, edition *Edition) error {
	table := schema.CatalogEdition
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, editionColumns(), table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, insertQuery, editionArgs(edition)...).Scan(&edition.CreatedAt, &edition.UpdatedAt)
	return dberr.Wrap(err, resourceEdition)
}

func editionArgs(edition *Edition) []any {
	args := []any{edition.ID}
	args = append(args, edition.Name.Args()...)
	args = append(args, edition.Description.Args()...)
	return append(args, edition.Year, edition.Location, edition.VolumeCount, edition.TextCount, edition.IsActive)
}

func (repository *PostgresEditionRepository) Update(context context.Context, edition *Edition) error {
	table := schema.CatalogEdition
	name, description := table.Name, table.Description

	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = $9,
			%s = $10, %s = $11, %s = $12, %s = $13, %s = $14,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table,
		name.Tibetan, name.English, name.Sanskrit, name.Chinese,
		description.Tibetan, description.English, description.Sanskrit, description.Chinese,
		table.Year, table.Location, table.VolumeCount, table.TextCount, table.IsActive,
		table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, updateQuery, editionArgs(edition)...).Scan(&edition.CreatedAt, &edition.UpdatedAt)
	return dberr.Wrap(err, resourceEdition)
}

// Delete removes the edition together with every link to it.
func (repository *PostgresEditionRepository) Delete(context context.Context, id string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceEdition)
	}
	defer transaction.Rollback(context)

	if err := deleteOwned(context, transaction, schema.CatalogEditionLink.Table, schema.CatalogEditionLink.EditionID, id); err != nil {
		return dberr.Wrap(err, resourceEdition)
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogEdition.Table, schema.CatalogEdition.ID)
	command, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return dberr.Wrap(err, resourceEdition)
	}
	if command.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceEdition)
	}

	return dberr.Wrap(transaction.Commit(context), resourceEdition)
}
