// Copyright (c) 2026 Lotsawa. All rights reserved.

package media_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/memstore"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/pointer"
)

// knownTexts satisfies media.TextLookup with a fixed id set.
type knownTexts map[string]bool

func (texts knownTexts) TextExists(_ context.Context, id string) (bool, error) {
	return texts[id], nil
}

func newService(t *testing.T) (*media.Service, *media.MemoryRepository) {
	t.Helper()
	repository := media.NewMemoryRepository(memstore.New())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return media.NewService(repository, knownTexts{"text-1": true}, logger), repository
}

func english(value string) lang.Text {
	return lang.Text{English: pointer.To(value)}
}

func TestCreateNews_RequiresTitle(t *testing.T) {
	service, _ := newService(t)

	err := service.CreateNews(context.Background(), &media.NewsItem{})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.True(t, apperr.As(err).HasDetail(media.FieldTitle))
}

func TestSearchNews_CapsButCountsEveryMatch(t *testing.T) {
	service, repository := newService(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		require.NoError(t, service.CreateNews(ctx, &media.NewsItem{
			Title:       english(fmt.Sprintf("Kangyur digitisation update %d", i)),
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, service.CreateNews(ctx, &media.NewsItem{Title: english("Unrelated")}))

	items, total, err := repository.SearchNews(ctx, "KANGYUR", 10)
	require.NoError(t, err)
	assert.Equal(t, 14, total)
	require.Len(t, items, 10)
	assert.Equal(t, "Kangyur digitisation update 13", *items[0].Title.English, "newest first")
}

func TestListNews_ActiveFilterAndPaging(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		item := &media.NewsItem{Title: english(fmt.Sprintf("n%d", i)), IsActive: i%2 == 0}
		require.NoError(t, service.CreateNews(ctx, item))
	}

	items, total, err := service.ListNews(ctx, media.NewsFilter{ActiveOnly: true}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 2)

	items, total, err = service.ListNews(ctx, media.NewsFilter{}, pagination.Params{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreateTimelineEvent_UnknownPeriod(t *testing.T) {
	service, _ := newService(t)

	err := service.CreateTimelineEvent(context.Background(), &media.TimelineEvent{
		Title:    english("Council of Lhasa"),
		Year:     792,
		PeriodID: pointer.To("missing"),
	})
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.As(err).HasDetail(media.FieldPeriodID))
}

func TestDeletePeriod_ClearsEventReference(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	period := &media.Period{Name: english("Early Transmission"), StartYear: 600, EndYear: 900}
	require.NoError(t, service.CreatePeriod(ctx, period))

	event := &media.TimelineEvent{Title: english("Samye founded"), Year: 779, PeriodID: pointer.To(period.ID)}
	require.NoError(t, service.CreateTimelineEvent(ctx, event))

	require.NoError(t, service.DeletePeriod(ctx, period.ID))

	stored, err := service.GetTimelineEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.PeriodID)

	err = service.DeletePeriod(ctx, period.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestCreatePeriod_RejectsInvertedRange(t *testing.T) {
	service, _ := newService(t)

	err := service.CreatePeriod(context.Background(), &media.Period{Name: english("x"), StartYear: 900, EndYear: 600})
	require.Error(t, err)
	assert.True(t, apperr.As(err).HasDetail(media.FieldEndYear))
}

func TestCreateAudio_ChecksText(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	err := service.CreateAudio(ctx, &media.AudioRecording{
		TextID:   pointer.To("nope"),
		Title:    english("Recitation"),
		AudioURL: "https://cdn.example.org/a.mp3",
	})
	require.Error(t, err)
	assert.True(t, apperr.As(err).HasDetail(media.FieldTextID))

	recording := &media.AudioRecording{
		TextID:   pointer.To("text-1"),
		Title:    english("Recitation"),
		AudioURL: "https://cdn.example.org/a.mp3",
	}
	require.NoError(t, service.CreateAudio(ctx, recording))

	recordings, total, err := service.ListAudio(ctx, media.AudioFilter{TextID: pointer.To("text-1")}, pagination.Default())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, recording.ID, recordings[0].ID)
}

func TestCreateVideo_ValidatesURL(t *testing.T) {
	service, _ := newService(t)

	err := service.CreateVideo(context.Background(), &media.Video{Title: english("Talk"), VideoURL: "ftp://x"})
	require.Error(t, err)
	assert.True(t, apperr.As(err).HasDetail(media.FieldVideoURL))
}
