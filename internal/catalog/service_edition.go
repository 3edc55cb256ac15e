// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"context"
	"log/slog"

	"github.com/lotsawa/canon/internal/platform/validate"
	"github.com/lotsawa/canon/pkg/pagination"
	"github.com/lotsawa/canon/pkg/uuid"
)

// Edition years are CE; the earliest canonical compilations are 14th century.
const (
	minEditionYear = 1000
	maxEditionYear = 2100
)

// # Editions

func (service *Service) ListEditions(context context.Context, filter EditionFilter, params pagination.Params) ([]*Edition, int, error) {
	return service.editions.List(context, filter, params)
}

func (service *Service) GetEdition(context context.Context, id string) (*Edition, error) {
	return service.editions.FindByID(context, id)
}

func validateEdition(edition *Edition) error {
	validator := &validate.Validator{}
	validator.AnyLanguage(FieldName, edition.Name).
		Custom(FieldVolumeCount, edition.VolumeCount < 0, "Must not be negative").
		Custom(FieldTextCount, edition.TextCount < 0, "Must not be negative")
	if edition.Year != nil {
		validator.Range(FieldYear, *edition.Year, minEditionYear, maxEditionYear)
	}
	return validator.Err()
}

func (service *Service) CreateEdition(context context.Context, edition *Edition) error {
	if err := validateEdition(edition); err != nil {
		return err
	}

	edition.ID = uuid.New()
	if err := service.editions.Create(context, edition); err != nil {
		return err
	}

	service.logger.Info("edition_created", slog.String("edition_id", edition.ID))
	return nil
}

func (service *Service) UpdateEdition(context context.Context, id string, patch EditionPatch) (*Edition, error) {
	current, err := service.editions.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(current)
	if err := validateEdition(current); err != nil {
		return nil, err
	}

	if err := service.editions.Update(context, current); err != nil {
		return nil, err
	}

	service.logger.Info("edition_updated", slog.String("edition_id", id))
	return current, nil
}

// DeleteEdition removes the edition and unlinks it from every text.
func (service *Service) DeleteEdition(context context.Context, id string) error {
	if err := service.editions.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("edition_deleted", slog.String("edition_id", id))
	return nil
}
