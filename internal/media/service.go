// Copyright (c) 2026 Lotsawa. All rights reserved.

package media

import (
	"context"
	"log/slog"
	"time"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/validate"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/uuid"
)

// Year bounds accepted for timeline events and periods. Negative years are BCE.
const (
	minYear = -1000
	maxYear = 2100
)

// Service orchestrates validation and persistence for the media collections.
type Service struct {
	repo   Repository
	texts  TextLookup
	logger *slog.Logger
}

// NewService constructs a media [Service]. texts may be nil, in which case
// audio recordings are not checked against the catalog.
func NewService(repo Repository, texts TextLookup, logger *slog.Logger) *Service {
	return &Service{repo: repo, texts: texts, logger: logger}
}

// # News

func (service *Service) ListNews(context context.Context, filter NewsFilter, params pagination.Params) ([]*NewsItem, int, error) {
	return service.repo.ListNews(context, filter, params)
}

func (service *Service) GetNews(context context.Context, id string) (*NewsItem, error) {
	return service.repo.FindNews(context, id)
}

func (service *Service) CreateNews(context context.Context, item *NewsItem) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldTitle, item.Title)
	if err := validator.Err(); err != nil {
		return err
	}

	item.ID = uuid.New()
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now().UTC()
	}

	if err := service.repo.CreateNews(context, item); err != nil {
		return err
	}

	service.logger.Info("news_created", slog.String("news_id", item.ID), slog.String("title", item.Title.Display()))
	return nil
}

func (service *Service) DeleteNews(context context.Context, id string) error {
	if err := service.repo.DeleteNews(context, id); err != nil {
		return err
	}

	service.logger.Warn("news_deleted", slog.String("news_id", id))
	return nil
}

// # Periods

func (service *Service) ListPeriods(context context.Context) ([]*Period, error) {
	return service.repo.ListPeriods(context)
}

func (service *Service) CreatePeriod(context context.Context, period *Period) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldName, period.Name).
		Range(FieldStartYear, period.StartYear, minYear, maxYear).
		Range(FieldEndYear, period.EndYear, minYear, maxYear).
		Custom(FieldEndYear, period.EndYear < period.StartYear, "Must not be before start_year")
	if err := validator.Err(); err != nil {
		return err
	}

	period.ID = uuid.New()
	if err := service.repo.CreatePeriod(context, period); err != nil {
		return err
	}

	service.logger.Info("period_created", slog.String("period_id", period.ID))
	return nil
}

func (service *Service) DeletePeriod(context context.Context, id string) error {
	if err := service.repo.DeletePeriod(context, id); err != nil {
		return err
	}

	service.logger.Warn("period_deleted", slog.String("period_id", id))
	return nil
}

// # Timeline

func (service *Service) ListTimeline(context context.Context, filter TimelineFilter, params pagination.Params) ([]*TimelineEvent, int, error) {
	return service.repo.ListTimeline(context, filter, params)
}

func (service *Service) GetTimelineEvent(context context.Context, id string) (*TimelineEvent, error) {
	return service.repo.FindTimelineEvent(context, id)
}

/*
CreateTimelineEvent validates and stores a timeline event.

Description: A non-nil PeriodID must resolve to an existing period; the
reference is otherwise free-standing and is cleared if the period is deleted.
*/
func (service *Service) CreateTimelineEvent(context context.Context, event *TimelineEvent) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldTitle, event.Title).
		Range(FieldYear, event.Year, minYear, maxYear).
		MaxLen(FieldEra, event.Era, 100).
		MaxLen(FieldSignificance, event.Significance, 50)
	if err := validator.Err(); err != nil {
		return err
	}

	if event.PeriodID != nil {
		if _, err := service.repo.FindPeriod(context, *event.PeriodID); err != nil {
			if apperr.HasCode(err, apperr.CodeNotFound) {
				return apperr.NotFound("Period", apperr.FieldError{Field: FieldPeriodID, Message: "Period does not exist"})
			}
			return err
		}
	}

	event.ID = uuid.New()
	if err := service.repo.CreateTimelineEvent(context, event); err != nil {
		return err
	}

	service.logger.Info("timeline_event_created", slog.String("event_id", event.ID), slog.Int("year", event.Year))
	return nil
}

func (service *Service) DeleteTimelineEvent(context context.Context, id string) error {
	if err := service.repo.DeleteTimelineEvent(context, id); err != nil {
		return err
	}

	service.logger.Warn("timeline_event_deleted", slog.String("event_id", id))
	return nil
}

// # Audio

func (service *Service) ListAudio(context context.Context, filter AudioFilter, params pagination.Params) ([]*AudioRecording, int, error) {
	return service.repo.ListAudio(context, filter, params)
}

func (service *Service) GetAudio(context context.Context, id string) (*AudioRecording, error) {
	return service.repo.FindAudio(context, id)
}

func (service *Service) CreateAudio(context context.Context, recording *AudioRecording) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldTitle, recording.Title).
		Required(FieldAudioURL, recording.AudioURL).
		Custom(FieldDurationSeconds, recording.DurationSeconds < 0, "Must not be negative")
	if recording.AudioURL != "" {
		validator.URL(FieldAudioURL, recording.AudioURL)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if recording.TextID != nil && service.texts != nil {
		exists, err := service.texts.TextExists(context, *recording.TextID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Text", apperr.FieldError{Field: FieldTextID, Message: "Text does not exist"})
		}
	}

	recording.ID = uuid.New()
	if err := service.repo.CreateAudio(context, recording); err != nil {
		return err
	}

	service.logger.Info("audio_created", slog.String("audio_id", recording.ID))
	return nil
}

func (service *Service) DeleteAudio(context context.Context, id string) error {
	if err := service.repo.DeleteAudio(context, id); err != nil {
		return err
	}

	service.logger.Warn("audio_deleted", slog.String("audio_id", id))
	return nil
}

// # Video

func (service *Service) ListVideos(context context.Context, params pagination.Params) ([]*Video, int, error) {
	return service.repo.ListVideos(context, params)
}

func (service *Service) GetVideo(context context.Context, id string) (*Video, error) {
	return service.repo.FindVideo(context, id)
}

func (service *Service) CreateVideo(context context.Context, video *Video) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldTitle, video.Title).
		Required(FieldVideoURL, video.VideoURL).
		Custom(FieldDurationSeconds, video.DurationSeconds < 0, "Must not be negative")
	if video.VideoURL != "" {
		validator.URL(FieldVideoURL, video.VideoURL)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	video.ID = uuid.New()
	if err := service.repo.CreateVideo(context, video); err != nil {
		return err
	}

	service.logger.Info("video_created", slog.String("video_id", video.ID))
	return nil
}

func (service *Service) DeleteVideo(context context.Context, id string) error {
	if err := service.repo.DeleteVideo(context, id); err != nil {
		return err
	}

	service.logger.Warn("video_deleted", slog.String("video_id", id))
	return nil
}
