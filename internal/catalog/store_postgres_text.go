// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/database/schema"
	"github.com/lotsawa/canon/internal/platform/dberr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/query"
)

// PostgresTextRepository implements [TextRepository] using pgx.
type PostgresTextRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTextRepository constructs a PostgreSQL backed text store.
func NewPostgresTextRepository(pool *pgxpool.Pool) *PostgresTextRepository {
	return &PostgresTextRepository{pool: pool}
}

// # Scanning

func textColumns() string {
	return strings.Join(schema.CatalogText.Columns(), ", ")
}

func scanText(row pgx.Row, extra ...any) (*Text, error) {
	text := &Text{}
	var title lang.Row

	targets := []any{&text.ID, &text.CategoryID}
	targets = append(targets, title.Targets()...)
	targets = append(targets,
		&text.CatalogIDs.Derge, &text.CatalogIDs.Tohoku, &text.CatalogIDs.Peking,
		&text.Turning, &text.Vehicle, &text.TranslationType,
		&text.CreatedAt, &text.UpdatedAt,
	)

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	text.Title = title.Text()
	return text, nil
}

func collectTexts(rows pgx.Rows, extra ...any) ([]*Text, error) {
	texts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Text, error) {
		return scanText(row, extra...)
	})
	return nonNil(texts), err
}

// titleColumn maps a language to its text title column.
func titleColumn(code lang.Code) string {
	columns := schema.CatalogText.Title
	switch code {
	case lang.Tibetan:
		return columns.Tibetan
	case lang.Sanskrit:
		return columns.Sanskrit
	case lang.Chinese:
		return columns.Chinese
	}
	return columns.English
}

// # Lookups

/*
FindByID returns a text hydrated with its owned records.

Description: The text row and each owned collection are read with separate
queries against the pool; owned rows are ordered by order_index then id.
*/
func (repository *PostgresTextRepository) FindByID(context context.Context, id string) (*Text, error) {
	findQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, textColumns(), schema.CatalogText.Table, schema.CatalogText.ID)

	text, err := scanText(repository.pool.QueryRow(context, findQuery, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceText)
	}

	if text.Sections, err = repository.sections(context, id); err != nil {
		return nil, dberr.Wrap(err, resourceText)
	}
	if text.Metadata, err = repository.metadata(context, id); err != nil {
		return nil, dberr.Wrap(err, resourceText)
	}
	if text.Editions, err = repository.ListEditionLinks(context, id); err != nil {
		return nil, err
	}
	if text.Collated, err = repository.collated(context, id); err != nil {
		return nil, dberr.Wrap(err, resourceText)
	}
	return text, nil
}

func (repository *PostgresTextRepository) sections(context context.Context, textID string) ([]Section, error) {
	table := schema.CatalogSection
	sectionQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.TextID, table.OrderIndex, table.ID,
	)

	rows, err := repository.pool.Query(context, sectionQuery, textID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Section, error) {
		var section Section
		var title, content lang.Row

		targets := []any{&section.ID, &section.TextID, &section.Type}
		targets = append(targets, title.Targets()...)
		targets = append(targets, content.Targets()...)
		err := row.Scan(append(targets, &section.OrderIndex)...)

		section.Title = title.Text()
		section.Content = content.Text()
		return section, err
	})
}

func (repository *PostgresTextRepository) metadata(context context.Context, textID string) ([]MetadataEntry, error) {
	table := schema.CatalogMetadataEntry
	metadataQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.TextID, table.OrderIndex, table.ID,
	)

	rows, err := repository.pool.Query(context, metadataQuery, textID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByPos[MetadataEntry])
}

func (repository *PostgresTextRepository) collated(context context.Context, textID string) (*CollatedContent, error) {
	table := schema.CatalogCollatedContent
	collatedQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(table.Columns(), ", "), table.Table, table.TextID)

	collated := &CollatedContent{}
	var content lang.Row
	targets := append([]any{&collated.ID, &collated.TextID}, content.Targets()...)

	err := repository.pool.QueryRow(context, collatedQuery, textID).Scan(targets...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	collated.Content = content.Text()
	return collated, nil
}

func (repository *PostgresTextRepository) Exists(context context.Context, id string) (bool, error) {
	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CatalogText.Table, schema.CatalogText.ID)
	err := repository.pool.QueryRow(context, existsQuery, id).Scan(&exists)
	return exists, dberr.Wrap(err, resourceText)
}

func (repository *PostgresTextRepository) List(context context.Context, filter TextFilter, params pagination.Params) ([]*Text, int, error) {
	params = params.Normalize()
	table := schema.CatalogText

	var conditions []string
	var args []any
	equals := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	anyOf := func(column string, values []string) {
		if len(values) > 0 {
			args = append(args, values)
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", column, len(args)))
		}
	}
	equals(table.CategoryID, filter.CategoryID)
	anyOf(table.Turning, filter.Turning)
	anyOf(table.Vehicle, filter.Vehicle)
	anyOf(table.TranslationType, filter.TranslationType)
	if filter.Language != nil {
		conditions = append(conditions, fmt.Sprintf("btrim(COALESCE(%s, '')) <> ''", titleColumn(*filter.Language)))
	}
	where := whereClause(conditions)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table.Table, where)
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceText)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d
	`,
		textColumns(), table.Table, where, table.ID, len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, listQuery, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceText)
	}

	texts, err := collectTexts(rows)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceText)
	}
	return texts, total, nil
}

func (repository *PostgresTextRepository) CountByCategory(context context.Context, categoryID string) (int, error) {
	count, err := countWhere(context, repository.pool, schema.CatalogText.Table, schema.CatalogText.CategoryID, categoryID)
	return count, dberr.Wrap(err, resourceText)
}

// # Mutations

func (repository *PostgresTextRepository) Create(context context.Context, text *Text) error {
	prepareOwned(text)
	table := schema.CatalogText

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceText)
	}
	defer transaction.Rollback(context)

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, textColumns(), table.CreatedAt, table.UpdatedAt,
	)

	err = transaction.QueryRow(context, insertQuery, textArgs(text)...).Scan(&text.CreatedAt, &text.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceText)
	}

	if err := insertSections(context, transaction, text.Sections); err != nil {
		return dberr.Wrap(err, resourceText)
	}
	if err := insertMetadata(context, transaction, text.Metadata); err != nil {
		return dberr.Wrap(err, resourceText)
	}
	if err := insertCollated(context, transaction, text.Collated); err != nil {
		return dberr.Wrap(err, resourceText)
	}
	for i := range text.Editions {
		if err := insertLink(context, transaction, &text.Editions[i]); err != nil {
			return err
		}
	}

	if err := adjustCounts(context, transaction, &text.CategoryID, 1); err != nil {
		return dberr.Wrap(err, resourceText)
	}

	return dberr.Wrap(transaction.Commit(context), resourceText)
}

func textArgs(text *Text) []any {
	args := []any{text.ID, text.CategoryID}
	args = append(args, text.Title.Args()...)
	return append(args,
		text.CatalogIDs.Derge, text.CatalogIDs.Tohoku, text.CatalogIDs.Peking,
		text.Turning, text.Vehicle, text.TranslationType,
	)
}

func (repository *PostgresTextRepository) Update(context context.Context, text *Text, changes TextChanges) error {
	prepareOwned(text)
	table := schema.CatalogText

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceText)
	}
	defer transaction.Rollback(context)

	var previousCategory string
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, table.CategoryID, table.Table, table.ID)
	if err := transaction.QueryRow(context, lockQuery, text.ID).Scan(&previousCategory); err != nil {
		return dberr.Wrap(err, resourceText)
	}

	title := table.Title
	updateQuery := fmt.Sprintf(`
		UPDATE %s SET
			%s = $2,
			%s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9,
			%s = $10, %s = $11, %s = $12,
			%s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		table.Table,
		table.CategoryID,
		title.Tibetan, title.English, title.Sanskrit, title.Chinese,
		table.DergeID, table.TohokuID, table.PekingID,
		table.Turning, table.Vehicle, table.TranslationType,
		table.UpdatedAt,
		table.ID,
		table.CreatedAt, table.UpdatedAt,
	)

	if err := transaction.QueryRow(context, updateQuery, textArgs(text)...).Scan(&text.CreatedAt, &text.UpdatedAt); err != nil {
		return dberr.Wrap(err, resourceText)
	}

	if changes.Sections {
		if err := deleteOwned(context, transaction, schema.CatalogSection.Table, schema.CatalogSection.TextID, text.ID); err != nil {
			return dberr.Wrap(err, resourceText)
		}
		if err := insertSections(context, transaction, text.Sections); err != nil {
			return dberr.Wrap(err, resourceText)
		}
	}
	if changes.Metadata {
		if err := deleteOwned(context, transaction, schema.CatalogMetadataEntry.Table, schema.CatalogMetadataEntry.TextID, text.ID); err != nil {
			return dberr.Wrap(err, resourceText)
		}
		if err := insertMetadata(context, transaction, text.Metadata); err != nil {
			return dberr.Wrap(err, resourceText)
		}
	}
	if changes.Collated {
		if err := deleteOwned(context, transaction, schema.CatalogCollatedContent.Table, schema.CatalogCollatedContent.TextID, text.ID); err != nil {
			return dberr.Wrap(err, resourceText)
		}
		if err := insertCollated(context, transaction, text.Collated); err != nil {
			return dberr.Wrap(err, resourceText)
		}
	}

	if previousCategory != text.CategoryID {
		if err := adjustCounts(context, transaction, &previousCategory, -1); err != nil {
			return dberr.Wrap(err, resourceText)
		}
		if err := adjustCounts(context, transaction, &text.CategoryID, 1); err != nil {
			return dberr.Wrap(err, resourceText)
		}
	}

	return dberr.Wrap(transaction.Commit(context), resourceText)
}

/*
Delete removes a text and everything it owns in one transaction.

Description: Owned rows go first (the foreign keys are RESTRICT), then the
text, then the category chain is decremented. Any failure rolls the whole
delete back.
*/
func (repository *PostgresTextRepository) Delete(context context.Context, id string) error {
	table := schema.CatalogText

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, resourceText)
	}
	defer transaction.Rollback(context)

	var categoryID string
	lockQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`, table.CategoryID, table.Table, table.ID)
	if err := transaction.QueryRow(context, lockQuery, id).Scan(&categoryID); err != nil {
		return dberr.Wrap(err, resourceText)
	}

	owned := [][2]string{
		{schema.CatalogSection.Table, schema.CatalogSection.TextID},
		{schema.CatalogCollatedContent.Table, schema.CatalogCollatedContent.TextID},
		{schema.CatalogMetadataEntry.Table, schema.CatalogMetadataEntry.TextID},
		{schema.CatalogEditionLink.Table, schema.CatalogEditionLink.TextID},
		{schema.MediaAudioRecording.Table, schema.MediaAudioRecording.TextID},
		{table.Table, table.ID},
	}
	for _, target := range owned {
		if err := deleteOwned(context, transaction, target[0], target[1], id); err != nil {
			return dberr.Wrap(err, resourceText)
		}
	}

	if err := adjustCounts(context, transaction, &categoryID, -1); err != nil {
		return dberr.Wrap(err, resourceText)
	}

	return dberr.Wrap(transaction.Commit(context), resourceText)
}

func (repository *PostgresTextRepository) Search(context context.Context, term string, limit int) ([]*Text, int, error) {
	table := schema.CatalogText
	fields := append(table.Title.List(), table.DergeID, table.TohokuID, table.PekingID)

	searchQuery := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $2
	`,
		textColumns(), table.Table, query.ILikeAny(fields, 1), table.ID,
	)

	rows, err := repository.pool.Query(context, searchQuery, query.LikePattern(term), limit)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceText)
	}

	var total int
	texts, err := collectTexts(rows, &total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceText)
	}
	return texts, total, nil
}

// # Edition Links

func (repository *PostgresTextRepository) CreateEditionLink(context context.Context, link *EditionLink) error {
	return insertLink(context, repository.pool, link)
}

func (repository *PostgresTextRepository) DeleteEditionLink(context context.Context, textID, linkID string) error {
	table := schema.CatalogEditionLink
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.TextID)

	command, err := repository.pool.Exec(context, deleteQuery, linkID, textID)
	if err != nil {
		return dberr.Wrap(err, resourceEditionLink)
	}
	if command.RowsAffected() == 0 {
		return apperr.NotFound(resourceEditionLink)
	}
	return nil
}

func (repository *PostgresTextRepository) ListEditionLinks(context context.Context, textID string) ([]EditionLink, error) {
	table := schema.CatalogEditionLink
	linkQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.TextID, table.ID,
	)

	rows, err := repository.pool.Query(context, linkQuery, textID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceEditionLink)
	}

	links, err := pgx.CollectRows(rows, pgx.RowToStructByPos[EditionLink])
	if err != nil {
		return nil, dberr.Wrap(err, resourceEditionLink)
	}
	return nonNil(links), nil
}

// # Owned Rows

func deleteOwned(context context.Context, db querier, table, column, id string) error {
	_, err := db.Exec(context, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, column), id)
	return err
}

func insertSections(context context.Context, transaction pgx.Tx, sections []Section) error {
	if len(sections) == 0 {
		return nil
	}

	table := schema.CatalogSection
	_, err := transaction.CopyFrom(context, identifier(table.Table), table.Columns(),
		pgx.CopyFromSlice(len(sections), func(i int) ([]any, error) {
			section := sections[i]
			values := []any{section.ID, section.TextID, section.Type}
			values = append(values, section.Title.Args()...)
			values = append(values, section.Content.Args()...)
			return append(values, section.OrderIndex), nil
		}),
	)
	return err
}

func insertMetadata(context context.Context, transaction pgx.Tx, entries []MetadataEntry) error {
	if len(entries) == 0 {
		return nil
	}

	table := schema.CatalogMetadataEntry
	_, err := transaction.CopyFrom(context, identifier(table.Table), table.Columns(),
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			entry := entries[i]
			return []any{entry.ID, entry.TextID, entry.Key, entry.Value, entry.Group, entry.Label, entry.OrderIndex}, nil
		}),
	)
	return err
}

func insertCollated(context context.Context, transaction pgx.Tx, collated *CollatedContent) error {
	if collated == nil {
		return nil
	}

	table := schema.CatalogCollatedContent
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		table.Table, strings.Join(table.Columns(), ", "),
	)

	args := append([]any{collated.ID, collated.TextID}, collated.Content.Args()...)
	_, err := transaction.Exec(context, insertQuery, args...)
	return err
}

// insertLink maps the (text, edition) unique violation to the same error the
// guard reports.
func insertLink(context context.Context, db querier, link *EditionLink) error {
	table := schema.CatalogEditionLink
	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		table.Table, strings.Join(table.Columns(), ", "),
	)

	_, err := db.Exec(context, insertQuery, link.ID, link.TextID, link.EditionID, link.Volume, link.PageRange, link.Available)
	err = dberr.Wrap(err, resourceEditionLink)
	if apperr.HasCode(err, apperr.CodeDuplicate) {
		return duplicateLink()
	}
	return err
}
