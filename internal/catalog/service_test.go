// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/pkg/pointer"
)

type fixture struct {
	service    *catalog.Service
	categories *catalog.MemoryCategoryRepository
	texts      *catalog.MemoryTextRepository
	editions   *catalog.MemoryEditionRepository
	media      *media.Service
}

func newFixture(t *testing.T, cache catalog.TreeCache) *fixture {
	t.Helper()
	db := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		categories: catalog.NewMemoryCategoryRepository(db),
		texts:      catalog.NewMemoryTextRepository(db),
		editions:   catalog.NewMemoryEditionRepository(db),
	}
	f.service = catalog.NewService(f.categories, f.texts, f.editions, cache, logger)
	f.media = media.NewService(media.NewMemoryRepository(db), f.service, logger)
	return f
}

func titled(en string) lang.Text {
	return lang.Text{English: pointer.To(en)}
}

func textTitle(bo, en string) lang.Text {
	return lang.Text{Tibetan: pointer.To(bo), English: pointer.To(en)}
}

func (f *fixture) category(t *testing.T, slug string, parent *catalog.Category) *catalog.Category {
	t.Helper()
	category := &catalog.Category{Slug: slug, Title: titled(slug), IsActive: true}
	if parent != nil {
		category.ParentID = &parent.ID
	}
	require.NoError(t, f.service.CreateCategory(context.Background(), category))
	return category
}

func (f *fixture) text(t *testing.T, category *catalog.Category, en string) *catalog.Text {
	t.Helper()
	text := &catalog.Text{CategoryID: category.ID, Title: textTitle("མདོ", en)}
	require.NoError(t, f.service.CreateText(context.Background(), text))
	return text
}

func (f *fixture) count(t *testing.T, category *catalog.Category) int {
	t.Helper()
	stored, err := f.service.GetCategory(context.Background(), category.ID)
	require.NoError(t, err)
	return stored.TextCount
}
