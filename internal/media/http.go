// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package media also provides the HTTP interface for the auxiliary collections.

# Access Control

  - Public: listing and reading news, timeline, periods, audio and video.
  - Editor: creating entries.
  - Admin: deleting entries.
*/
package media

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/middleware"
	requestutil "github.com/lotsawa/canon/internal/platform/request"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/internal/platform/sec"
	"github.com/lotsawa/canon/pkg/convert"
	"github.com/lotsawa/canon/pkg/pagination"
)

// Handler implements the HTTP layer for the media collections.
type Handler struct {
	service *Service
}

// NewHandler constructs a new media [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with every media endpoint, meant to be mounted at the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/news", func(newsRoute chi.Router) {
		newsRoute.Get("/", handler.listNews)
		newsRoute.Get("/{id}", handler.getNews)
		newsRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createNews)
		newsRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteNews)
	})

	router.Route("/periods", func(periodRoute chi.Router) {
		periodRoute.Get("/", handler.listPeriods)
		periodRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createPeriod)
		periodRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deletePeriod)
	})

	router.Route("/timeline", func(timelineRoute chi.Router) {
		timelineRoute.Get("/", handler.listTimeline)
		timelineRoute.Get("/{id}", handler.getTimelineEvent)
		timelineRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createTimelineEvent)
		timelineRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTimelineEvent)
	})

	router.Route("/audio", func(audioRoute chi.Router) {
		audioRoute.Get("/", handler.listAudio)
		audioRoute.Get("/{id}", handler.getAudio)
		audioRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createAudio)
		audioRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteAudio)
	})

	router.Route("/videos", func(videoRoute chi.Router) {
		videoRoute.Get("/", handler.listVideos)
		videoRoute.Get("/{id}", handler.getVideo)
		videoRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createVideo)
		videoRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteVideo)
	})

	return router
}

// # News Endpoints

/*
GET /api/v1/news.

Request:
  - active: bool (default true)
  - page, limit: int

Response:
  - 200: {news: []NewsItem, pagination}
*/
func (handler *Handler) listNews(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := NewsFilter{ActiveOnly: convert.ToBoolD(requestutil.Query(request, "active"), true)}

	items, total, err := handler.service.ListNews(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "news", items, pagination.NewMeta(params, total))
}

func (handler *Handler) getNews(writer http.ResponseWriter, request *http.Request) {
	item, err := handler.service.GetNews(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

type createNewsRequest struct {
	Title       lang.Text  `json:"title"`
	Description lang.Text  `json:"description"`
	PublishedAt *time.Time `json:"published_at"`
	IsActive    *bool      `json:"is_active"`
}

func (handler *Handler) createNews(writer http.ResponseWriter, request *http.Request) {
	var input createNewsRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item := &NewsItem{
		Title:       input.Title,
		Description: input.Description,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if input.PublishedAt != nil {
		item.PublishedAt = input.PublishedAt.UTC()
	}

	if err := handler.service.CreateNews(request.Context(), item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

func (handler *Handler) deleteNews(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteNews(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Period Endpoints

// listPeriods returns every period; the collection is small enough to send in one page.
func (handler *Handler) listPeriods(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	periods, err := handler.service.ListPeriods(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, meta := pagination.Slice(periods, params)
	respond.List(writer, "periods", page, meta)
}

type createPeriodRequest struct {
	Name      lang.Text `json:"name"`
	StartYear int       `json:"start_year"`
	EndYear   int       `json:"end_year"`
}

func (handler *Handler) createPeriod(writer http.ResponseWriter, request *http.Request) {
	var input createPeriodRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	period := &Period{Name: input.Name, StartYear: input.StartYear, EndYear: input.EndYear}
	if err := handler.service.CreatePeriod(request.Context(), period); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, period)
}

func (handler *Handler) deletePeriod(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeletePeriod(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Timeline Endpoints

/*
GET /api/v1/timeline.

Request:
  - period_id: string (optional)
  - page, limit: int

Response:
  - 200: {timeline: []TimelineEvent, pagination}
*/
func (handler *Handler) listTimeline(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := TimelineFilter{PeriodID: requestutil.OptionalQuery(request, FieldPeriodID)}

	events, total, err := handler.service.ListTimeline(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "timeline", events, pagination.NewMeta(params, total))
}

func (handler *Handler) getTimelineEvent(writer http.ResponseWriter, request *http.Request) {
	event, err := handler.service.GetTimelineEvent(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

type createTimelineEventRequest struct {
	Title        lang.Text `json:"title"`
	Description  lang.Text `json:"description"`
	Year         int       `json:"year"`
	Era          string    `json:"era"`
	Significance string    `json:"significance"`
	PeriodID     *string   `json:"period_id"`
}

func (handler *Handler) createTimelineEvent(writer http.ResponseWriter, request *http.Request) {
	var input createTimelineEventRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event := &TimelineEvent{
		Title:        input.Title,
		Description:  input.Description,
		Year:         input.Year,
		Era:          input.Era,
		Significance: input.Significance,
		PeriodID:     input.PeriodID,
	}

	if err := handler.service.CreateTimelineEvent(request.Context(), event); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

func (handler *Handler) deleteTimelineEvent(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTimelineEvent(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Audio Endpoints

func (handler *Handler) listAudio(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := AudioFilter{TextID: requestutil.OptionalQuery(request, FieldTextID)}

	recordings, total, err := handler.service.ListAudio(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "audio", recordings, pagination.NewMeta(params, total))
}

func (handler *Handler) getAudio(writer http.ResponseWriter, request *http.Request) {
	recording, err := handler.service.GetAudio(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, recording)
}

type createAudioRequest struct {
	TextID          *string   `json:"text_id"`
	Title           lang.Text `json:"title"`
	Description     lang.Text `json:"description"`
	DurationSeconds int       `json:"duration_seconds"`
	AudioURL        string    `json:"audio_url"`
}

func (handler *Handler) createAudio(writer http.ResponseWriter, request *http.Request) {
	var input createAudioRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	recording := &AudioRecording{
		TextID:          input.TextID,
		Title:           input.Title,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		AudioURL:        input.AudioURL,
	}

	if err := handler.service.CreateAudio(request.Context(), recording); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, recording)
}

func (handler *Handler) deleteAudio(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAudio(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Video Endpoints

func (handler *Handler) listVideos(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	videos, total, err := handler.service.ListVideos(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "videos", videos, pagination.NewMeta(params, total))
}

func (handler *Handler) getVideo(writer http.ResponseWriter, request *http.Request) {
	video, err := handler.service.GetVideo(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, video)
}

type createVideoRequest struct {
	Title           lang.Text `json:"title"`
	Description     lang.Text `json:"description"`
	DurationSeconds int       `json:"duration_seconds"`
	VideoURL        string    `json:"video_url"`
}

func (handler *Handler) createVideo(writer http.ResponseWriter, request *http.Request) {
	var input createVideoRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	video := &Video{
		Title:           input.Title,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		VideoURL:        input.VideoURL,
	}

	if err := handler.service.CreateVideo(request.Context(), video); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, video)
}

func (handler *Handler) deleteVideo(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteVideo(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
