// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"

	"github.com/lotsawa/canon/pkg/pagination"
)

// # Data Access

// NewsRepository defines the data access contract for news items.
type NewsRepository interface {
	ListNews(context context.Context, filter NewsFilter, params pagination.Params) ([]*NewsItem, int, error)
	FindNews(context context.Context, id string) (*NewsItem, error)
	CreateNews(context context.Context, item *NewsItem) error
	DeleteNews(context context.Context, id string) error

	/*
		SearchNews matches term against every title language.

		Returns:
		  - []*NewsItem: at most limit matches, newest first
		  - int: the number of matches before truncation
		  - error: storage failures
	*/
	SearchNews(context context.Context, term string, limit int) ([]*NewsItem, int, error)
}

// TimelineRepository defines the data access contract for periods and timeline events.
type TimelineRepository interface {
	ListPeriods(context context.Context) ([]*Period, error)
	FindPeriod(context context.Context, id string) (*Period, error)
	CreatePeriod(context context.Context, period *Period) error

	// DeletePeriod removes the period and clears the reference on its events.
	DeletePeriod(context context.Context, id string) error

	ListTimeline(context context.Context, filter TimelineFilter, params pagination.Params) ([]*TimelineEvent, int, error)
	FindTimelineEvent(context context.Context, id string) (*TimelineEvent, error)
	CreateTimelineEvent(context context.Context, event *TimelineEvent) error
	DeleteTimelineEvent(context context.Context, id string) error

	// SearchTimeline matches term against every title language, oldest first.
	SearchTimeline(context context.Context, term string, limit int) ([]*TimelineEvent, int, error)
}

// RecordingRepository defines the data access contract for audio and video.
type RecordingRepository interface {
	ListAudio(context context.Context, filter AudioFilter, params pagination.Params) ([]*AudioRecording, int, error)
	FindAudio(context context.Context, id string) (*AudioRecording, error)
	CreateAudio(context context.Context, recording *AudioRecording) error
	DeleteAudio(context context.Context, id string) error

	ListVideos(context context.Context, params pagination.Params) ([]*Video, int, error)
	FindVideo(context context.Context, id string) (*Video, error)
	CreateVideo(context context.Context, video *Video) error
	DeleteVideo(context context.Context, id string) error
}

// Repository is implemented by both storage backends.
type Repository interface {
	NewsRepository
	TimelineRepository
	RecordingRepository
}

// TextLookup resolves catalog texts for audio recordings without importing the catalog.
type TextLookup interface {
	TextExists(context context.Context, id string) (bool, error)
}
