// Copyright (c) 2026 Lotsawa. All rights reserved.

package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/internal/seed"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
)

func load(t *testing.T) (*catalog.Service, *media.Service) {
	t.Helper()
	db := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stores := seed.Stores{
		Categories: catalog.NewMemoryCategoryRepository(db),
		Texts:      catalog.NewMemoryTextRepository(db),
		Editions:   catalog.NewMemoryEditionRepository(db),
		Media:      media.NewMemoryRepository(db),
	}

	fixtures, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, seed.Load(context.Background(), stores, fixtures, logger))

	service := catalog.NewService(stores.Categories, stores.Texts, stores.Editions, nil, logger)
	return service, media.NewService(stores.Media, service, logger)
}

func TestDefault_Decodes(t *testing.T) {
	fixtures, err := seed.Default()
	require.NoError(t, err)

	assert.NotEmpty(t, fixtures.Categories)
	assert.NotEmpty(t, fixtures.Texts)
	assert.Nil(t, fixtures.Categories[0].Title.Sanskrit)
	assert.Equal(t, "甘珠尔", pointer.Val(fixtures.Categories[0].Title.Chinese))
	assert.False(t, fixtures.News[0].PublishedAt.IsZero())
}

func TestLoad_CountsAndTree(t *testing.T) {
	service, _ := load(t)
	ctx := context.Background()

	kangyur, err := service.GetCategoryBySlug(ctx, "kangyur")
	require.NoError(t, err)
	assert.Equal(t, 4, kangyur.TextCount)

	tengyur, err := service.GetCategoryBySlug(ctx, "tengyur")
	require.NoError(t, err)
	assert.Equal(t, 1, tengyur.TextCount)

	wisdom, err := service.GetCategoryBySlug(ctx, "prajnaparamita")
	require.NoError(t, err)
	assert.Equal(t, "Prajñāpāramitā", pointer.Val(wisdom.Title.Sanskrit))
	assert.Equal(t, 2, wisdom.TextCount)

	subtree, err := service.Tree(ctx, "kangyur", true)
	require.NoError(t, err)
	slugs := make([]string, 0, len(subtree))
	for _, node := range subtree {
		slugs = append(slugs, node.Slug)
	}
	assert.Equal(t, []string{"vinaya", "prajnaparamita", "general-sutra", "tantra"}, slugs)
}

func TestLoad_HydratesTexts(t *testing.T) {
	service, mediaService := load(t)
	ctx := context.Background()

	const heartSutra = "0193a000-0000-7000-8002-000000000001"
	text, err := service.GetText(ctx, heartSutra)
	require.NoError(t, err)
	assert.Len(t, text.Sections, 2)
	assert.Len(t, text.Metadata, 2)
	assert.Len(t, text.Editions, 2)
	require.NotNil(t, text.Collated)
	assert.Equal(t, "Toh 21", pointer.Val(text.CatalogIDs.Tohoku))

	recordings, total, err := mediaService.ListAudio(ctx, media.AudioFilter{TextID: pointer.To(heartSutra)}, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 312, recordings[0].DurationSeconds)
}

func TestLoad_Twice(t *testing.T) {
	db := memstore.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stores := seed.Stores{
		Categories: catalog.NewMemoryCategoryRepository(db),
		Texts:      catalog.NewMemoryTextRepository(db),
		Editions:   catalog.NewMemoryEditionRepository(db),
		Media:      media.NewMemoryRepository(db),
	}

	first, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, seed.Load(context.Background(), stores, first, logger))

	second, err := seed.Default()
	require.NoError(t, err)
	err = seed.Load(context.Background(), stores, second, logger)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicate))
}

func TestParse_Invalid(t *testing.T) {
	_, err := seed.Parse([]byte("categories: [unterminated"))
	assert.Error(t, err)
}
