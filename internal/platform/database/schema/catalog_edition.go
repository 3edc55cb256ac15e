// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogEditionTable represents the 'catalog.edition' table
type CatalogEditionTable struct {
	Table       string
	ID          string
	Name        LangColumns
	Description LangColumns
	Year        string
	Location    string
	VolumeCount string
	TextCount   string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogEdition is the schema definition for catalog.edition
var CatalogEdition = CatalogEditionTable{
	Table:       "catalog.edition",
	ID:          "id",
	Name:        langColumns("name"),
	Description: langColumns("description"),
	Year:        "year",
	Location:    "location",
	VolumeCount: "volume_count",
	TextCount:   "text_count",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t CatalogEditionTable) Columns() []string {
	columns := []string{t.ID}
	columns = append(columns, t.Name.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.Year, t.Location, t.VolumeCount, t.TextCount, t.IsActive, t.CreatedAt, t.UpdatedAt)
}
