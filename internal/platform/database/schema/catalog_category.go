// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogCategoryTable represents the 'catalog.category' table
type CatalogCategoryTable struct {
	Table       string
	ID          string
	Slug        string
	ParentID    string
	Title       LangColumns
	Description LangColumns
	OrderIndex  string
	IsActive    string
	TextCount   string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogCategoryTable{
	Table:       "catalog.category",
	ID:          "id",
	Slug:        "slug",
	ParentID:    "parent_id",
	Title:       langColumns("title"),
	Description: langColumns("description"),
	OrderIndex:  "order_index",
	IsActive:    "is_active",
	TextCount:   "text_count",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t CatalogCategoryTable) Columns() []string {
	columns := []string{t.ID, t.Slug, t.ParentID}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.OrderIndex, t.IsActive, t.TextCount, t.CreatedAt, t.UpdatedAt)
}
