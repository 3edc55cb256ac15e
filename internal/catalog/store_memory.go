// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
	"github.com/lotsawa/canon/pkg/slice"
)

// # In-memory Tables

const (
	tableCategories = "catalog.category"
	tableTexts      = "catalog.text"
	tableSections   = "catalog.section"
	tableCollated   = "catalog.collated_content"
	tableMetadata   = "catalog.metadata_entry"
	tableLinks      = "catalog.edition_link"
	tableEditions   = "catalog.edition"

	indexSlug        = "slug"
	indexTextID      = "text_id"
	indexTextEdition = "text_edition"
)

// memoryTables is the catalog's view of a shared [memstore.DB]. The audio
// table belongs to media; text deletes cascade into it.
type memoryTables struct {
	db         *memstore.DB
	categories *memstore.Table[Category]
	texts      *memstore.Table[Text]
	sections   *memstore.Table[Section]
	collated   *memstore.Table[CollatedContent]
	metadata   *memstore.Table[MetadataEntry]
	links      *memstore.Table[EditionLink]
	editions   *memstore.Table[Edition]
	audio      *memstore.Table[media.AudioRecording]
	now        func() time.Time
}

func openTables(db *memstore.DB) *memoryTables {
	return &memoryTables{
		db: db,
		categories: memstore.Open(db, tableCategories, func(c *Category) string { return c.ID },
			memstore.UniqueIndex(indexSlug, func(c *Category) string { return c.Slug })),
		texts:    memstore.Open(db, tableTexts, func(t *Text) string { return t.ID }),
		sections: memstore.Open(db, tableSections, func(s *Section) string { return s.ID }),
		collated: memstore.Open(db, tableCollated, func(c *CollatedContent) string { return c.ID },
			memstore.UniqueIndex(indexTextID, func(c *CollatedContent) string { return c.TextID })),
		metadata: memstore.Open(db, tableMetadata, func(m *MetadataEntry) string { return m.ID }),
		links: memstore.Open(db, tableLinks, func(l *EditionLink) string { return l.ID },
			memstore.UniqueIndex(indexTextEdition, func(l *EditionLink) string { return l.TextID + "|" + l.EditionID })),
		editions: memstore.Open(db, tableEditions, func(e *Edition) string { return e.ID }),
		audio:    media.AudioTable(db),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// adjustCounts adds delta to the TextCount of start and every ancestor.
// Must run inside an Update.
func (tables *memoryTables) adjustCounts(start *string, delta int) {
	if delta == 0 {
		return
	}
	cursor := start
	for steps := 0; cursor != nil && steps <= tables.categories.Len(); steps++ {
		var parent *string
		if !tables.categories.Mutate(*cursor, func(category *Category) {
			category.TextCount += delta
			parent = category.ParentID
		}) {
			return
		}
		cursor = parent
	}
}

// # Categories

// MemoryCategoryRepository implements [CategoryRepository] on a [memstore.DB].
type MemoryCategoryRepository struct {
	*memoryTables
}

// NewMemoryCategoryRepository opens the catalog tables on db.
func NewMemoryCategoryRepository(db *memstore.DB) *MemoryCategoryRepository {
	return &MemoryCategoryRepository{memoryTables: openTables(db)}
}

func (repository *MemoryCategoryRepository) FindByID(_ context.Context, id string) (*Category, error) {
	var category *Category
	var found bool
	_ = repository.db.View(func() error {
		category, found = repository.categories.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound(resourceCategory)
	}
	return category, nil
}

func (repository *MemoryCategoryRepository) FindBySlug(_ context.Context, slug string) (*Category, error) {
	var category *Category
	var found bool
	_ = repository.db.View(func() error {
		category, found = repository.categories.Lookup(indexSlug, slug)
		return nil
	})

	if !found {
		return nil, apperr.NotFound(resourceCategory)
	}
	return category, nil
}

func (repository *MemoryCategoryRepository) List(_ context.Context, filter CategoryFilter, params pagination.Params) ([]*Category, int, error) {
	var categories []*Category
	_ = repository.db.View(func() error {
		categories = repository.categories.Find(filter.Matches)
		return nil
	})

	sortCategories(categories)
	page, meta := pagination.Slice(categories, params)
	return page, meta.Total, nil
}

func (repository *MemoryCategoryRepository) All(_ context.Context) ([]*Category, error) {
	var categories []*Category
	_ = repository.db.View(func() error {
		categories = repository.categories.Find(nil)
		return nil
	})
	return categories, nil
}

func (repository *MemoryCategoryRepository) Create(_ context.Context, category *Category) error {
	now := repository.now()
	category.CreatedAt, category.UpdatedAt = now, now
	category.TextCount = 0

	return repository.db.Update(func() error {
		if category.ParentID != nil && !repository.categories.Has(*category.ParentID) {
			return apperr.NotFound(resourceCategory,
				apperr.FieldError{Field: FieldParentID, Message: "Category does not exist"})
		}

		if err := repository.categories.Insert(category); err != nil {
			if errors.Is(err, memstore.ErrDuplicate) {
				return apperr.Duplicate("Category slug already exists",
					apperr.FieldError{Field: FieldSlug, Message: "Value must be unique"})
			}
			return err
		}
		return nil
	})
}

func (repository *MemoryCategoryRepository) Update(_ context.Context, category *Category) error {
	return repository.db.Update(func() error {
		stored, found := repository.categories.Get(category.ID)
		if !found {
			return apperr.NotFound(resourceCategory)
		}

		if category.ParentID != nil && !repository.categories.Has(*category.ParentID) {
			return apperr.NotFound(resourceCategory,
				apperr.FieldError{Field: FieldParentID, Message: "Category does not exist"})
		}

		category.Slug = stored.Slug
		category.TextCount = stored.TextCount
		category.CreatedAt = stored.CreatedAt
		category.UpdatedAt = repository.now()

		if _, err := repository.categories.Replace(category); err != nil {
			return err
		}

		if !pointer.Equal(stored.ParentID, category.ParentID) {
			repository.adjustCounts(stored.ParentID, -stored.TextCount)
			repository.adjustCounts(category.ParentID, stored.TextCount)
		}
		return nil
	})
}

func (repository *MemoryCategoryRepository) Delete(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.categories.Has(id) {
			return apperr.NotFound(resourceCategory)
		}

		children := repository.categories.Count(func(category *Category) bool {
			return category.ParentID != nil && *category.ParentID == id
		})
		texts := repository.texts.Count(func(text *Text) bool { return text.CategoryID == id })
		if err := DeleteBlocked(children, texts); err != nil {
			return err
		}

		repository.categories.Delete(id)
		return nil
	})
}

func (repository *MemoryCategoryRepository) CountChildren(_ context.Context, id string) (int, error) {
	var count int
	_ = repository.db.View(func() error {
		count = repository.categories.Count(func(category *Category) bool {
			return category.ParentID != nil && *category.ParentID == id
		})
		return nil
	})
	return count, nil
}

func (repository *MemoryCategoryRepository) Search(_ context.Context, term string, limit int) ([]*Category, int, error) {
	var matches []*Category
	_ = repository.db.View(func() error {
		matches = repository.categories.Find(func(category *Category) bool {
			return lang.Contains(category.Slug, term) || category.Title.Matches(term)
		})
		return nil
	})

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Slug < matches[j].Slug })
	return slice.Take(matches, limit), len(matches), nil
}

// sortCategories orders by OrderIndex, ties by id.
func sortCategories(categories []*Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].OrderIndex != categories[j].OrderIndex {
			return categories[i].OrderIndex < categories[j].OrderIndex
		}
		return categories[i].ID < categories[j].ID
	})
}

// # Texts

// MemoryTextRepository implements [TextRepository] on a [memstore.DB].
type MemoryTextRepository struct {
	*memoryTables
}

// NewMemoryTextRepository opens the catalog tables on db.
func NewMemoryTextRepository(db *memstore.DB) *MemoryTextRepository {
	return &MemoryTextRepository{memoryTables: openTables(db)}
}

func (repository *MemoryTextRepository) FindByID(_ context.Context, id string) (*Text, error) {
	var text *Text
	var found bool
	_ = repository.db.View(func() error {
		text, found = repository.texts.Get(id)
		if found {
			repository.hydrate(text)
		}
		return nil
	})

	if !found {
		return nil, apperr.NotFound(resourceText)
	}
	return text, nil
}

// hydrate attaches the owned records. Must run inside View or Update.
func (repository *MemoryTextRepository) hydrate(text *Text) {
	sections := repository.sections.Find(func(section *Section) bool { return section.TextID == text.ID })
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].OrderIndex < sections[j].OrderIndex })
	text.Sections = slice.Values(sections)

	metadata := repository.metadata.Find(func(entry *MetadataEntry) bool { return entry.TextID == text.ID })
	sort.SliceStable(metadata, func(i, j int) bool { return metadata[i].OrderIndex < metadata[j].OrderIndex })
	text.Metadata = slice.Values(metadata)

	text.Editions = slice.Values(repository.textLinks(text.ID))
	text.Collated, _ = repository.collated.Lookup(indexTextID, text.ID)
}

func (repository *MemoryTextRepository) textLinks(textID string) []*EditionLink {
	links := repository.links.Find(func(link *EditionLink) bool { return link.TextID == textID })
	sort.SliceStable(links, func(i, j int) bool { return links[i].ID < links[j].ID })
	return links
}

func (repository *MemoryTextRepository) Exists(_ context.Context, id string) (bool, error) {
	var found bool
	_ = repository.db.View(func() error {
		found = repository.texts.Has(id)
		return nil
	})
	return found, nil
}

func (repository *MemoryTextRepository) List(_ context.Context, filter TextFilter, params pagination.Params) ([]*Text, int, error) {
	var texts []*Text
	_ = repository.db.View(func() error {
		texts = repository.texts.Find(filter.Matches)
		return nil
	})

	sort.SliceStable(texts, func(i, j int) bool { return texts[i].ID < texts[j].ID })
	page, meta := pagination.Slice(texts, params)
	return page, meta.Total, nil
}

func (repository *MemoryTextRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	var count int
	_ = repository.db.View(func() error {
		count = repository.texts.Count(func(text *Text) bool { return text.CategoryID == categoryID })
		return nil
	})
	return count, nil
}

func (repository *MemoryTextRepository) Create(_ context.Context, text *Text) error {
	now := repository.now()
	text.CreatedAt, text.UpdatedAt = now, now
	prepareOwned(text)

	return repository.db.Update(func() error {
		if !repository.categories.Has(text.CategoryID) {
			return apperr.NotFound(resourceCategory,
				apperr.FieldError{Field: FieldCategoryID, Message: "Category does not exist"})
		}

		if err := repository.texts.Insert(bare(text)); err != nil {
			return err
		}
		if err := repository.insertSections(text.Sections); err != nil {
			return err
		}
		if err := repository.insertMetadata(text.Metadata); err != nil {
			return err
		}
		if text.Collated != nil {
			if err := repository.collated.Insert(text.Collated); err != nil {
				return err
			}
		}
		for i := range text.Editions {
			if err := repository.insertLink(&text.Editions[i]); err != nil {
				return err
			}
		}

		repository.adjustCounts(&text.CategoryID, 1)
		return nil
	})
}

func (repository *MemoryTextRepository) Update(_ context.Context, text *Text, changes TextChanges) error {
	prepareOwned(text)

	return repository.db.Update(func() error {
		stored, found := repository.texts.Get(text.ID)
		if !found {
			return apperr.NotFound(resourceText)
		}

		if text.CategoryID != stored.CategoryID && !repository.categories.Has(text.CategoryID) {
			return apperr.NotFound(resourceCategory,
				apperr.FieldError{Field: FieldCategoryID, Message: "Category does not exist"})
		}

		text.CreatedAt = stored.CreatedAt
		text.UpdatedAt = repository.now()
		if _, err := repository.texts.Replace(bare(text)); err != nil {
			return err
		}

		if changes.Sections {
			repository.sections.DeleteWhere(func(section *Section) bool { return section.TextID == text.ID })
			if err := repository.insertSections(text.Sections); err != nil {
				return err
			}
		}
		if changes.Metadata {
			repository.metadata.DeleteWhere(func(entry *MetadataEntry) bool { return entry.TextID == text.ID })
			if err := repository.insertMetadata(text.Metadata); err != nil {
				return err
			}
		}
		if changes.Collated {
			repository.collated.DeleteWhere(func(content *CollatedContent) bool { return content.TextID == text.ID })
			if text.Collated != nil {
				if err := repository.collated.Insert(text.Collated); err != nil {
					return err
				}
			}
		}

		if stored.CategoryID != text.CategoryID {
			repository.adjustCounts(&stored.CategoryID, -1)
			repository.adjustCounts(&text.CategoryID, 1)
		}
		return nil
	})
}

/*
Delete removes a text and everything that hangs off it.

Description: Sections, collated content, metadata, edition links and audio
recordings are removed in the same Update as the text, and the category
counts are decremented. A failure anywhere restores every table.
*/
func (repository *MemoryTextRepository) Delete(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		stored, found := repository.texts.Get(id)
		if !found {
			return apperr.NotFound(resourceText)
		}

		repository.sections.DeleteWhere(func(section *Section) bool { return section.TextID == id })
		repository.collated.DeleteWhere(func(content *CollatedContent) bool { return content.TextID == id })
		repository.metadata.DeleteWhere(func(entry *MetadataEntry) bool { return entry.TextID == id })
		repository.links.DeleteWhere(func(link *EditionLink) bool { return link.TextID == id })
		repository.audio.DeleteWhere(func(recording *media.AudioRecording) bool {
			return recording.TextID != nil && *recording.TextID == id
		})
		repository.texts.Delete(id)

		repository.adjustCounts(&stored.CategoryID, -1)
		return nil
	})
}

func (repository *MemoryTextRepository) Search(_ context.Context, term string, limit int) ([]*Text, int, error) {
	var matches []*Text
	_ = repository.db.View(func() error {
		matches = repository.texts.Find(func(text *Text) bool {
			return text.Title.Matches(term) || text.CatalogIDs.Matches(term)
		})
		return nil
	})

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return slice.Take(matches, limit), len(matches), nil
}

func (repository *MemoryTextRepository) CreateEditionLink(_ context.Context, link *EditionLink) error {
	return repository.db.Update(func() error {
		if !repository.texts.Has(link.TextID) {
			return apperr.NotFound(resourceText)
		}
		if !repository.editions.Has(link.EditionID) {
			return apperr.NotFound(resourceEdition,
				apperr.FieldError{Field: FieldEditionID, Message: "Edition does not exist"})
		}
		return repository.insertLink(link)
	})
}

func (repository *MemoryTextRepository) DeleteEditionLink(_ context.Context, textID, linkID string) error {
	return repository.db.Update(func() error {
		link, found := repository.links.Get(linkID)
		if !found || link.TextID != textID {
			return apperr.NotFound(resourceEditionLink)
		}
		repository.links.Delete(linkID)
		return nil
	})
}

func (repository *MemoryTextRepository) ListEditionLinks(_ context.Context, textID string) ([]EditionLink, error) {
	var links []EditionLink
	_ = repository.db.View(func() error {
		links = slice.Values(repository.textLinks(textID))
		return nil
	})
	return links, nil
}

func (repository *MemoryTextRepository) insertSections(sections []Section) error {
	for i := range sections {
		if err := repository.sections.Insert(&sections[i]); err != nil {
			return err
		}
	}
	return nil
}

func (repository *MemoryTextRepository) insertMetadata(entries []MetadataEntry) error {
	for i := range entries {
		if err := repository.metadata.Insert(&entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (repository *MemoryTextRepository) insertLink(link *EditionLink) error {
	if err := repository.links.Insert(link); err != nil {
		if errors.Is(err, memstore.ErrDuplicate) && strings.Contains(err.Error(), indexTextEdition) {
			return duplicateLink()
		}
		return err
	}
	return nil
}

// # Editions

// MemoryEditionRepository implements [EditionRepository] on a [memstore.DB].
type MemoryEditionRepository struct {
	*memoryTables
}

// NewMemoryEditionRepository opens the catalog tables on db.
func NewMemoryEditionRepository(db *memstore.DB) *MemoryEditionRepository {
	return &MemoryEditionRepository{memoryTables: openTables(db)}
}

func (repository *MemoryEditionRepository) FindByID(_ context.Context, id string) (*Edition, error) {
	var edition *Edition
	var found bool
	_ = repository.db.View(func() error {
		edition, found = repository.editions.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound(resourceEdition)
	}
	return edition, nil
}

func (repository *MemoryEditionRepository) List(_ context.Context, filter EditionFilter, params pagination.Params) ([]*Edition, int, error) {
	var editions []*Edition
	_ = repository.db.View(func() error {
		editions = repository.editions.Find(func(edition *Edition) bool {
			return !filter.ActiveOnly || edition.IsActive
		})
		return nil
	})

	sort.SliceStable(editions, func(i, j int) bool { return editions[i].ID < editions[j].ID })
	page, meta := pagination.Slice(editions, params)
	return page, meta.Total, nil
}

func (repository *MemoryEditionRepository) Create(_ context.Context, edition *Edition) error {
	now := repository.now()
	edition.CreatedAt, edition.UpdatedAt = now, now
	return repository.db.Update(func() error {
		return repository.editions.Insert(edition)
	})
}

func (repository *MemoryEditionRepository) Update(_ context.Context, edition *Edition) error {
	return repository.db.Update(func() error {
		stored, found := repository.editions.Get(edition.ID)
		if !found {
			return apperr.NotFound(resourceEdition)
		}

		edition.CreatedAt = stored.CreatedAt
		edition.UpdatedAt = repository.now()
		_, err := repository.editions.Replace(edition)
		return err
	})
}

func (repository *MemoryEditionRepository) Delete(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.editions.Delete(id) {
			return apperr.NotFound(resourceEdition)
		}
		repository.links.DeleteWhere(func(link *EditionLink) bool { return link.EditionID == id })
		return nil
	})
}
