// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogMetadataEntryTable represents the 'catalog.metadata_entry' table
type CatalogMetadataEntryTable struct {
	Table      string
	ID         string
	TextID     string
	Key        string
	Value      string
	Group      string
	Label      string
	OrderIndex string
}

// CatalogMetadataEntry is the schema definition for catalog.metadata_entry
var CatalogMetadataEntry = CatalogMetadataEntryTable{
	Table:      "catalog.metadata_entry",
	ID:         "id",
	TextID:     "text_id",
	Key:        "entry_key",
	Value:      "entry_value",
	Group:      "entry_group",
	Label:      "label",
	OrderIndex: "order_index",
}

func (t CatalogMetadataEntryTable) Columns() []string {
	return []string{t.ID, t.TextID, t.Key, t.Value, t.Group, t.Label, t.OrderIndex}
}
