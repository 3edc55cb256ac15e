// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"log/slog"
)

// # Service Layer

// Service orchestrates validation, integrity checks and persistence for the
// catalog. Every mutation runs its [Guard] check before touching a repository.
type Service struct {
	categories CategoryRepository
	texts      TextRepository
	editions   EditionRepository
	guard      *Guard
	cache      TreeCache
	logger     *slog.Logger
}

// NewService constructs a catalog [Service]. A nil cache disables tree caching.
func NewService(
	categories CategoryRepository,
	texts TextRepository,
	editions EditionRepository,
	cache TreeCache,
	logger *slog.Logger,
) *Service {
	if cache == nil {
		cache = NopTreeCache{}
	}

	return &Service{
		categories: categories,
		texts:      texts,
		editions:   editions,
		guard:      NewGuard(categories, texts, editions),
		cache:      cache,
		logger:     logger,
	}
}

// TextExists lets other packages verify a text reference without importing
// the repositories.
func (service *Service) TextExists(context context.Context, id string) (bool, error) {
	return service.texts.Exists(context, id)
}
