// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package media manages the auxiliary collections that sit beside the catalog:
news items, timeline events and their historical periods, audio recordings
and videos.

None of these collections depends on the category tree. The only references
are TimelineEvent → Period (nullable, cleared when the period goes away) and
AudioRecording → Text (nullable, owned by the catalog's cascade delete).
*/
package media

import (
	"time"

	"github.com/lotsawa/canon/internal/platform/lang"
)

// # Field names

const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldName            = "name"
	FieldYear            = "year"
	FieldEra             = "era"
	FieldSignificance    = "significance"
	FieldPeriodID        = "period_id"
	FieldStartYear       = "start_year"
	FieldEndYear         = "end_year"
	FieldTextID          = "text_id"
	FieldAudioURL        = "audio_url"
	FieldVideoURL        = "video_url"
	FieldDurationSeconds = "duration_seconds"
)

// # Entities

// NewsItem is a dated announcement shown on the front page.
type NewsItem struct {
	ID          string    `json:"id"          yaml:"id"`
	Title       lang.Text `json:"title"       yaml:"title"`
	Description lang.Text `json:"description" yaml:"description"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	IsActive    bool      `json:"is_active"   yaml:"is_active"`
	CreatedAt   time.Time `json:"created_at"  yaml:"-"`
}

// Period is a named historical era that groups timeline events.
type Period struct {
	ID        string    `json:"id"         yaml:"id"`
	Name      lang.Text `json:"name"       yaml:"name"`
	StartYear int       `json:"start_year" yaml:"start_year"`
	EndYear   int       `json:"end_year"   yaml:"end_year"`
}

// TimelineEvent is a dated event in the transmission history. Negative years are BCE.
type TimelineEvent struct {
	ID           string    `json:"id"           yaml:"id"`
	Title        lang.Text `json:"title"        yaml:"title"`
	Description  lang.Text `json:"description"  yaml:"description"`
	Year         int       `json:"year"         yaml:"year"`
	Era          string    `json:"era"          yaml:"era"`
	Significance string    `json:"significance" yaml:"significance"`
	PeriodID     *string   `json:"period_id"    yaml:"period_id"`
	CreatedAt    time.Time `json:"created_at"   yaml:"-"`
}

// AudioRecording is a recitation or teaching, optionally attached to a text.
type AudioRecording struct {
	ID              string    `json:"id"               yaml:"id"`
	TextID          *string   `json:"text_id"          yaml:"text_id"`
	Title           lang.Text `json:"title"            yaml:"title"`
	Description     lang.Text `json:"description"      yaml:"description"`
	DurationSeconds int       `json:"duration_seconds" yaml:"duration_seconds"`
	AudioURL        string    `json:"audio_url"        yaml:"audio_url"`
	CreatedAt       time.Time `json:"created_at"       yaml:"-"`
}

// Video is an externally hosted video.
type Video struct {
	ID              string    `json:"id"               yaml:"id"`
	Title           lang.Text `json:"title"            yaml:"title"`
	Description     lang.Text `json:"description"      yaml:"description"`
	DurationSeconds int       `json:"duration_seconds" yaml:"duration_seconds"`
	VideoURL        string    `json:"video_url"        yaml:"video_url"`
	CreatedAt       time.Time `json:"created_at"       yaml:"-"`
}

// # Filters

// NewsFilter narrows news listings.
type NewsFilter struct {
	ActiveOnly bool
}

// TimelineFilter narrows timeline listings.
type TimelineFilter struct {
	PeriodID *string
}

// AudioFilter narrows audio listings.
type AudioFilter struct {
	TextID *string
}
