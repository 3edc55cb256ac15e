// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogCollatedContentTable represents the 'catalog.collated_content' table
type CatalogCollatedContentTable struct {
	Table   string
	ID      string
	TextID  string
	Content LangColumns
}

// CatalogCollatedContent is the schema definition for catalog.collated_content
var CatalogCollatedContent = CatalogCollatedContentTable{
	Table:   "catalog.collated_content",
	ID:      "id",
	TextID:  "text_id",
	Content: langColumns("content"),
}

func (t CatalogCollatedContentTable) Columns() []string {
	return append([]string{t.ID, t.TextID}, t.Content.List()...)
}
