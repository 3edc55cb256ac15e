// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// MediaTimelineEventTable represents the 'media.timeline_event' table
type MediaTimelineEventTable struct {
	Table        string
	ID           string
	Title        LangColumns
	Description  LangColumns
	Year         string
	Era          string
	Significance string
	PeriodID     string
	CreatedAt    string
}

// MediaTimelineEvent is the schema definition for media.timeline_event
var MediaTimelineEvent = MediaTimelineEventTable{
	Table:        "media.timeline_event",
	ID:           "id",
	Title:        langColumns("title"),
	Description:  langColumns("description"),
	Year:         "year",
	Era:          "era",
	Significance: "significance",
	PeriodID:     "period_id",
	CreatedAt:    "created_at",
}

func (t MediaTimelineEventTable) Columns() []string {
	columns := []string{t.ID}
	columns = append(columns, t.Title.List()...)
	columns = append(columns, t.Description.List()...)
	return append(columns, t.Year, t.Era, t.Significance, t.PeriodID, t.CreatedAt)
}
