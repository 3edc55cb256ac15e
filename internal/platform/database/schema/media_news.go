// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// MediaNewsTable represents the 'media.news' table
type MediaNewsTable struct {
	Table       string
	ID          string
	Title       LangColumns
	Description LangColumns
	PublishedAt string
	IsActive    string
	CreatedAt   string
}

// MediaNews is the schema definition for media.news
var MediaNews = MediaNewsTable{
	Table:       "media.news",
	ID:          "id",
	Title:       langColumns("title"),
	Description: langColumns("description"),
	PublishedAt: "published_at",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
}

func (t MediaNewsTable) Columns() []string {
	columns := []string{t.ID}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.PublishedAt, t.IsActive, t.CreatedAt)
}
