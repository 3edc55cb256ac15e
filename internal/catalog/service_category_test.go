// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
)

func TestCreateCategory_DerivesSlug(t *testing.T) {
	tests := []struct {
		name  string
		title lang.Text
		slug  string
	}{
		{"english", lang.Text{English: pointer.To("Perfection of Wisdom")}, "perfection-of-wisdom"},
		{"diacritics", lang.Text{English: pointer.To("Śūraṅgama Sūtra")}, "surangama-sutra"},
		{"sanskrit_fallback", lang.Text{Tibetan: pointer.To("ཤེར་ཕྱིན"), Sanskrit: pointer.To("Prajñāpāramitā")}, "prajnaparamita"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			category := &catalog.Category{Title: tt.title, IsActive: true}
			require.NoError(t, f.service.CreateCategory(context.Background(), category))
			assert.Equal(t, tt.slug, category.Slug)

			stored, err := f.service.GetCategoryBySlug(context.Background(), tt.slug)
			require.NoError(t, err)
			assert.Equal(t, category.ID, stored.ID)
		})
	}
}

func TestCreateCategory_TibetanOnlyNeedsSlug(t *testing.T) {
	f := newFixture(t, nil)

	err := f.service.CreateCategory(context.Background(), &catalog.Category{Title: lang.Text{Tibetan: pointer.To("བཀའ་འགྱུར")}})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.True(t, apperr.As(err).HasDetail(catalog.FieldSlug))
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	f := newFixture(t, nil)
	f.category(t, "kangyur", nil)

	err := f.service.CreateCategory(context.Background(), &catalog.Category{Slug: "kangyur", Title: titled("Again")})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicate))
	assert.True(t, apperr.As(err).HasDetail(catalog.FieldSlug))
}

func TestCreateCategory_MissingParent(t *testing.T) {
	f := newFixture(t, nil)

	err := f.service.CreateCategory(context.Background(), &catalog.Category{
		Slug:     "orphan",
		Title:    titled("Orphan"),
		ParentID: pointer.To("missing"),
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.As(err).HasDetail(catalog.FieldParentID))
}

func TestDeleteCategory_ReportsEveryReason(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	root := f.category(t, "kangyur", nil)
	child := f.category(t, "sutra", root)
	f.text(t, root, "Heart Sutra")

	err := f.service.DeleteCategory(ctx, root.ID)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeIntegrity))

	details := apperr.As(err).Details
	require.Len(t, details, 2)
	assert.Equal(t, catalog.ReasonChildren, details[0].Field)
	assert.Equal(t, catalog.ReasonTexts, details[1].Field)

	err = f.service.DeleteCategory(ctx, child.ID)
	require.NoError(t, err)

	err = f.service.DeleteCategory(ctx, root.ID)
	require.Error(t, err)
	require.Len(t, apperr.As(err).Details, 1)
	assert.True(t, apperr.As(err).HasDetail(catalog.ReasonTexts))

	err = f.service.DeleteCategory(ctx, "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestDeleteBlocked(t *testing.T) {
	assert.NoError(t, catalog.DeleteBlocked(0, 0))

	err := catalog.DeleteBlocked(0, 3)
	require.Error(t, err)
	assert.Equal(t, "Cannot delete category: Category has 3 texts", err.Error())
}

func TestUpdateCategory_Rules(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	root := f.category(t, "kangyur", nil)
	child := f.category(t, "sutra", root)
	grandchild := f.category(t, "prajnaparamita", child)

	tests := []struct {
		name  string
		id    string
		patch catalog.CategoryPatch
		code  string
		field string
	}{
		{"slug_change", child.ID, catalog.CategoryPatch{Slug: pointer.To("sutras")}, apperr.CodeValidation, catalog.FieldSlug},
		{"own_parent", child.ID, catalog.CategoryPatch{SetParent: true, ParentID: pointer.To(child.ID)}, apperr.CodeValidation, catalog.FieldParentID},
		{"descendant_parent", root.ID, catalog.CategoryPatch{SetParent: true, ParentID: pointer.To(grandchild.ID)}, apperr.CodeValidation, catalog.FieldParentID},
		{"missing_parent", child.ID, catalog.CategoryPatch{SetParent: true, ParentID: pointer.To("missing")}, apperr.CodeNotFound, catalog.FieldParentID},
		{"blank_title", child.ID, catalog.CategoryPatch{Title: &lang.Text{}}, apperr.CodeValidation, catalog.FieldTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.UpdateCategory(ctx, tt.id, tt.patch)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, tt.code))
			assert.True(t, apperr.As(err).HasDetail(tt.field))
		})
	}

	updated, err := f.service.UpdateCategory(ctx, child.ID, catalog.CategoryPatch{
		Slug:       pointer.To("sutra"),
		OrderIndex: pointer.To(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "sutra", updated.Slug)
	assert.Equal(t, 4, updated.OrderIndex)
}

func TestUpdateCategory_ReparentMovesCounts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	kangyur := f.category(t, "kangyur", nil)
	tengyur := f.category(t, "tengyur", nil)
	sutra := f.category(t, "sutra", kangyur)
	f.text(t, sutra, "Diamond Sutra")
	f.text(t, sutra, "Heart Sutra")

	require.Equal(t, 2, f.count(t, kangyur))

	_, err := f.service.UpdateCategory(ctx, sutra.ID, catalog.CategoryPatch{SetParent: true, ParentID: pointer.To(tengyur.ID)})
	require.NoError(t, err)

	assert.Equal(t, 0, f.count(t, kangyur))
	assert.Equal(t, 2, f.count(t, tengyur))
	assert.Equal(t, 2, f.count(t, sutra))

	// Detaching to the top level removes the count from the old chain only.
	_, err = f.service.UpdateCategory(ctx, sutra.ID, catalog.CategoryPatch{SetParent: true})
	require.NoError(t, err)
	assert.Equal(t, 0, f.count(t, tengyur))
	assert.Equal(t, 2, f.count(t, sutra))
}

func TestListCategories_Filters(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	root := f.category(t, "kangyur", nil)
	f.category(t, "sutra", root)
	hidden := &catalog.Category{Slug: "hidden", Title: titled("Hidden"), ParentID: &root.ID}
	require.NoError(t, f.service.CreateCategory(ctx, hidden))

	categories, total, err := f.service.ListCategories(ctx, catalog.CategoryFilter{ParentID: &root.ID, ActiveOnly: true}, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "sutra", categories[0].Slug)

	categories, total, err = f.service.ListCategories(ctx, catalog.CategoryFilter{TopLevel: true}, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, root.ID, categories[0].ID)
}

func TestTree_BySlug(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	root := f.category(t, "kangyur", nil)
	sutra := f.category(t, "sutra", root)
	f.text(t, sutra, "Heart Sutra")

	forest, err := f.service.Tree(ctx, "", true)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, 1, forest[0].Count)

	subtree, err := f.service.Tree(ctx, "kangyur", true)
	require.NoError(t, err)
	require.Len(t, subtree, 1)
	assert.Equal(t, "sutra", subtree[0].Slug)
	assert.NotNil(t, subtree[0].Children)

	_, err = f.service.Tree(ctx, "missing", true)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
