// Copyright (c) 2026 Lotsawa. All rights reserved.

package schema

// MediaPeriodTable represents the 'media.period' table
type MediaPeriodTable struct {
	Table     string
	ID        string
	Name      LangColumns
	StartYear string
	EndYear   string
}

// MediaPeriod is the schema definition for media.period
var MediaPeriod = MediaPeriodTable{
	Table:     "media.period",
	ID:        "id",
	Name:      langColumns("name"),
	StartYear: "start_year",
	EndYear:   "end_year",
}

func (t MediaPeriodTable) Columns() []string {
	return append(append([]string{t.ID}, t.Name.List()...), t.StartYear, t.EndYear)
}
