// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// CatalogTextTable represents the 'catalog.text' table
type CatalogTextTable struct {
	Table           string
	ID              string
	CategoryID      string
	Title           LangColumns
	DergeID         string
	TohokuID        string
	PekingID        string
	Turning         string
	Vehicle         string
	TranslationType string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogText is the schema definition for catalog.text
var CatalogText = CatalogTextTable{
	Table:           "catalog.text",
	ID:              "id",
	CategoryID:      "category_id",
	Title:           langColumns("title"),
	DergeID:         "derge_id",
	TohokuID:        "tohoku_id",
	PekingID:        "peking_id",
	Turning:         "turning",
	Vehicle:         "vehicle",
	TranslationType: "translation_type",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

func (t CatalogTextTable) Columns() []string {
	columns := []string{t.ID, t.CategoryID}
	columns = append(columns, t.Title.List()...)
	return append(columns, t.DergeID, t.TohokuID, t.PekingID, t.Turning, t.Vehicle, t.TranslationType, t.CreatedAt, t.UpdatedAt)
}
