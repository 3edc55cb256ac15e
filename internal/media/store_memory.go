// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"
	"sort"
	"time"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/slice"
)

// # In-memory Tables

const (
	tableNews     = "media.news"
	tablePeriods  = "media.period"
	tableTimeline = "media.timeline_event"
	tableAudio    = "media.audio_recording"
	tableVideos   = "media.video"
)

// NewsTable opens the shared news table.
func NewsTable(db *memstore.DB) *memstore.Table[NewsItem] {
	return memstore.Open(db, tableNews, func(item *NewsItem) string { return item.ID })
}

// PeriodTable opens the shared period table.
func PeriodTable(db *memstore.DB) *memstore.Table[Period] {
	return memstore.Open(db, tablePeriods, func(period *Period) string { return period.ID })
}

// TimelineTable opens the shared timeline table.
func TimelineTable(db *memstore.DB) *memstore.Table[TimelineEvent] {
	return memstore.Open(db, tableTimeline, func(event *TimelineEvent) string { return event.ID })
}

// AudioTable opens the shared audio table. The catalog's text cascade writes to it.
func AudioTable(db *memstore.DB) *memstore.Table[AudioRecording] {
	return memstore.Open(db, tableAudio, func(recording *AudioRecording) string { return recording.ID })
}

// VideoTable opens the shared video table.
func VideoTable(db *memstore.DB) *memstore.Table[Video] {
	return memstore.Open(db, tableVideos, func(video *Video) string { return video.ID })
}

// MemoryRepository implements [Repository] on a [memstore.DB].
type MemoryRepository struct {
	db       *memstore.DB
	news     *memstore.Table[NewsItem]
	periods  *memstore.Table[Period]
	timeline *memstore.Table[TimelineEvent]
	audio    *memstore.Table[AudioRecording]
	videos   *memstore.Table[Video]
	now      func() time.Time
}

// NewMemoryRepository opens the media tables on db.
func NewMemoryRepository(db *memstore.DB) *MemoryRepository {
	return &MemoryRepository{
		db:       db,
		news:     NewsTable(db),
		periods:  PeriodTable(db),
		timeline: TimelineTable(db),
		audio:    AudioTable(db),
		videos:   VideoTable(db),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// # News

func (repository *MemoryRepository) ListNews(_ context.Context, filter NewsFilter, params pagination.Params) ([]*NewsItem, int, error) {
	var items []*NewsItem
	_ = repository.db.View(func() error {
		items = repository.news.Find(func(item *NewsItem) bool {
			return !filter.ActiveOnly || item.IsActive
		})
		return nil
	})

	sortNews(items)
	page, meta := pagination.Slice(items, params)
	return page, meta.Total, nil
}

func (repository *MemoryRepository) FindNews(_ context.Context, id string) (*NewsItem, error) {
	var item *NewsItem
	var found bool
	_ = repository.db.View(func() error {
		item, found = repository.news.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound("News item")
	}
	return item, nil
}

func (repository *MemoryRepository) CreateNews(_ context.Context, item *NewsItem) error {
	item.CreatedAt = repository.now()
	return repository.db.Update(func() error {
		return repository.news.Insert(item)
	})
}

func (repository *MemoryRepository) DeleteNews(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.news.Delete(id) {
			return apperr.NotFound("News item")
		}
		return nil
	})
}

func (repository *MemoryRepository) SearchNews(_ context.Context, term string, limit int) ([]*NewsItem, int, error) {
	var matches []*NewsItem
	_ = repository.db.View(func() error {
		matches = repository.news.Find(func(item *NewsItem) bool {
			return item.Title.Matches(term)
		})
		return nil
	})

	sortNews(matches)
	return slice.Take(matches, limit), len(matches), nil
}

// sortNews orders newest first, ties by id.
func sortNews(items []*NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// # Periods & Timeline

func (repository *MemoryRepository) ListPeriods(_ context.Context) ([]*Period, error) {
	var periods []*Period
	_ = repository.db.View(func() error {
		periods = repository.periods.Find(nil)
		return nil
	})

	sort.SliceStable(periods, func(i, j int) bool { return periods[i].StartYear < periods[j].StartYear })
	return periods, nil
}

func (repository *MemoryRepository) FindPeriod(_ context.Context, id string) (*Period, error) {
	var period *Period
	var found bool
	_ = repository.db.View(func() error {
		period, found = repository.periods.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound("Period")
	}
	return period, nil
}

func (repository *MemoryRepository) CreatePeriod(_ context.Context, period *Period) error {
	return repository.db.Update(func() error {
		return repository.periods.Insert(period)
	})
}

func (repository *MemoryRepository) DeletePeriod(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.periods.Delete(id) {
			return apperr.NotFound("Period")
		}

		for _, event := range repository.timeline.Find(func(event *TimelineEvent) bool {
			return event.PeriodID != nil && *event.PeriodID == id
		}) {
			repository.timeline.Mutate(event.ID, func(stored *TimelineEvent) { stored.PeriodID = nil })
		}
		return nil
	})
}

func (repository *MemoryRepository) ListTimeline(_ context.Context, filter TimelineFilter, params pagination.Params) ([]*TimelineEvent, int, error) {
	var events []*TimelineEvent
	_ = repository.db.View(func() error {
		events = repository.timeline.Find(func(event *TimelineEvent) bool {
			return filter.PeriodID == nil || (event.PeriodID != nil && *event.PeriodID == *filter.PeriodID)
		})
		return nil
	})

	sortTimeline(events)
	page, meta := pagination.Slice(events, params)
	return page, meta.Total, nil
}

func (repository *MemoryRepository) FindTimelineEvent(_ context.Context, id string) (*TimelineEvent, error) {
	var event *TimelineEvent
	var found bool
	_ = repository.db.View(func() error {
		event, found = repository.timeline.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound("Timeline event")
	}
	return event, nil
}

func (repository *MemoryRepository) CreateTimelineEvent(_ context.Context, event *TimelineEvent) error {
	event.CreatedAt = repository.now()
	return repository.db.Update(func() error {
		return repository.timeline.Insert(event)
	})
}

func (repository *MemoryRepository) DeleteTimelineEvent(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.timeline.Delete(id) {
			return apperr.NotFound("Timeline event")
		}
		return nil
	})
}

func (repository *MemoryRepository) SearchTimeline(_ context.Context, term string, limit int) ([]*TimelineEvent, int, error) {
	var matches []*TimelineEvent
	_ = repository.db.View(func() error {
		matches = repository.timeline.Find(func(event *TimelineEvent) bool {
			return event.Title.Matches(term)
		})
		return nil
	})

	sortTimeline(matches)
	return slice.Take(matches, limit), len(matches), nil
}

// sortTimeline orders oldest first, ties by id.
func sortTimeline(events []*TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Year != events[j].Year {
			return events[i].Year < events[j].Year
		}
		return events[i].ID < events[j].ID
	})
}

// # Audio & Video

func (repository *MemoryRepository) ListAudio(_ context.Context, filter AudioFilter, params pagination.Params) ([]*AudioRecording, int, error) {
	var recordings []*AudioRecording
	_ = repository.db.View(func() error {
		recordings = repository.audio.Find(func(recording *AudioRecording) bool {
			return filter.TextID == nil || (recording.TextID != nil && *recording.TextID == *filter.TextID)
		})
		return nil
	})

	sort.SliceStable(recordings, func(i, j int) bool { return recordings[i].ID < recordings[j].ID })
	page, meta := pagination.Slice(recordings, params)
	return page, meta.Total, nil
}

func (repository *MemoryRepository) FindAudio(_ context.Context, id string) (*AudioRecording, error) {
	var recording *AudioRecording
	var found bool
	_ = repository.db.View(func() error {
		recording, found = repository.audio.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound("Audio recording")
	}
	return recording, nil
}

func (repository *MemoryRepository) CreateAudio(_ context.Context, recording *AudioRecording) error {
	recording.CreatedAt = repository.now()
	return repository.db.Update(func() error {
		return repository.audio.Insert(recording)
	})
}

func (repository *MemoryRepository) DeleteAudio(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.audio.Delete(id) {
			return apperr.NotFound("Audio recording")
		}
		return nil
	})
}

func (repository *MemoryRepository) ListVideos(_ context.Context, params pagination.Params) ([]*Video, int, error) {
	var videos []*Video
	_ = repository.db.View(func() error {
		videos = repository.videos.Find(nil)
		return nil
	})

	sort.SliceStable(videos, func(i, j int) bool { return videos[i].ID < videos[j].ID })
	page, meta := pagination.Slice(videos, params)
	return page, meta.Total, nil
}

func (repository *MemoryRepository) FindVideo(_ context.Context, id string) (*Video, error) {
	var video *Video
	var found bool
	_ = repository.db.View(func() error {
		video, found = repository.videos.Get(id)
		return nil
	})

	if !found {
		return nil, apperr.NotFound("Video")
	}
	return video, nil
}

func (repository *MemoryRepository) CreateVideo(_ context.Context, video *Video) error {
	video.CreatedAt = repository.now()
	return repository.db.Update(func() error {
		return repository.videos.Insert(video)
	})
}

func (repository *MemoryRepository) DeleteVideo(_ context.Context, id string) error {
	return repository.db.Update(func() error {
		if !repository.videos.Delete(id) {
			return apperr.NotFound("Video")
		}
		return nil
	})
}
