// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// MediaVideoTable represents the 'media.video' table
type MediaVideoTable struct {
	Table           string
	ID              string
	Title           LangColumns
	Description     LangColumns
	DurationSeconds string
	VideoURL        string
	CreatedAt       string
}

// MediaVideo is the schema definition for media.video
var MediaVideo = MediaVideoTable{
	Table:           "media.video",
	ID:              "id",
	Title:           langColumns("title"),
	Description:     langColumns("description"),
	DurationSeconds: "duration_seconds",
	VideoURL:        "video_url",
	CreatedAt:       "created_at",
}

func (t MediaVideoTable) Columns() []string {
	columns := []string{t.ID}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.DurationSeconds, t.VideoURL, t.CreatedAt)
}
