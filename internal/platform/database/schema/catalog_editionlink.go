// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogEditionLinkTable represents the 'catalog.edition_link' table
type CatalogEditionLinkTable struct {
	Table     string
	ID        string
	TextID    string
	EditionID string
	Volume    string
	PageRange string
	Available string
}

// CatalogEditionLink is the schema definition for catalog.edition_link
var CatalogEditionLink = CatalogEditionLinkTable{
	Table:     "catalog.edition_link",
	ID:        "id",
	TextID:    "text_id",
	EditionID: "edition_id",
	Volume:    "volume",
	PageRange: "page_range",
	Available: "available",
}

func (t CatalogEditionLinkTable) Columns() []string {
	return []string{t.ID, t.TextID, t.EditionID, t.Volume, t.PageRange, t.Available}
}
