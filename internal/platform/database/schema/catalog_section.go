// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogSectionTable represents the 'catalog.section' table
type CatalogSectionTable struct {
	Table      string
	ID         string
	TextID     string
	Type       string
	Title      LangColumns
	Content    LangColumns
	OrderIndex string
}

// CatalogSection is the schema definition for catalog.section
var CatalogSection = CatalogSectionTable{
	Table:      "catalog.section",
	ID:         "id",
	TextID:     "text_id",
	Type:       "section_type",
	Title:      langColumns("title"),
	Content:    langColumns("content"),
	OrderIndex: "order_index",
}

func (t CatalogSectionTable) Columns() []string {
	columns := []string{t.ID, t.TextID, t.Type}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Content.List()...)
	return append(columns, t.OrderIndex)
}
