// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package seed loads the development fixtures into the stores.

The fixtures carry fixed ids so links in the seeded data stay stable between
runs. Records are written straight through the repositories, which keeps the
text counts and edition links consistent exactly as a live write would.
*/
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/media"
)

//go:embed fixtures.yaml
var fixtures []byte

// Fixtures is the decoded fixture file.
type Fixtures struct {
	Categories []*catalog.Category     `yaml:"categories"`
	Editions   []*catalog.Edition      `yaml:"editions"`
	Texts      []*catalog.Text         `yaml:"texts"`
	News       []*media.NewsItem       `yaml:"news"`
	Periods    []*media.Period         `yaml:"periods"`
	Timeline   []*media.TimelineEvent  `yaml:"timeline"`
	Audio      []*media.AudioRecording `yaml:"audio"`
	Videos     []*media.Video          `yaml:"videos"`
}

// Stores are the repositories the fixtures are written to.
type Stores struct {
	Categories catalog.CategoryRepository
	Texts      catalog.TextRepository
	Editions   catalog.EditionRepository
	Media      media.Repository
}

// Default decodes the embedded fixture file.
func Default() (*Fixtures, error) {
	return Parse(fixtures)
}

// Parse decodes fixture YAML.
func Parse(data []byte) (*Fixtures, error) {
	var parsed Fixtures
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &parsed, nil
}

/*
Load writes every fixture to stores.

Description: Categories go first (parents before children), then editions,
then texts with their owned records, then the media collections. The first
failing write aborts the load.
*/
func Load(context context.Context, stores Stores, data *Fixtures, logger *slog.Logger) error {
	for _, category := range data.Categories {
		if err := stores.Categories.Create(context, category); err != nil {
			return fmt.Errorf("seeding category %q: %w", category.Slug, err)
		}
	}
	for _, edition := range data.Editions {
		if err := stores.Editions.Create(context, edition); err != nil {
			return fmt.Errorf("seeding edition %s: %w", edition.ID, err)
		}
	}
	for _, text := range data.Texts {
		if err := stores.Texts.Create(context, text); err != nil {
			return fmt.Errorf("seeding text %s: %w", text.ID, err)
		}
	}

	for _, item := range data.News {
		if err := stores.Media.CreateNews(context, item); err != nil {
			return fmt.Errorf("seeding news %s: %w", item.ID, err)
		}
	}
	for _, period := range data.Periods {
		if err := stores.Media.CreatePeriod(context, period); err != nil {
			return fmt.Errorf("seeding period %s: %w", period.ID, err)
		}
	}
	for _, event := range data.Timeline {
		if err := stores.Media.CreateTimelineEvent(context, event); err != nil {
			return fmt.Errorf("seeding timeline event %s: %w", event.ID, err)
		}
	}
	for _, recording := range data.Audio {
		if err := stores.Media.CreateAudio(context, recording); err != nil {
			return fmt.Errorf("seeding audio %s: %w", recording.ID, err)
		}
	}
	for _, video := range data.Videos {
		if err := stores.Media.CreateVideo(context, video); err != nil {
			return fmt.Errorf("seeding video %s: %w", video.ID, err)
		}
	}

	logger.Info("fixtures_loaded",
		slog.Int("categories", len(data.Categories)),
		slog.Int("editions", len(data.Editions)),
		slog.Int("texts", len(data.Texts)),
		slog.Int("news", len(data.News)),
		slog.Int("timeline", len(data.Timeline)),
	)
	return nil
}
