// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog

import (
	"time"

	"github.com/lotsawa/canon/internal/platform/lang"
)

// Edition is a historical print or manuscript edition of the canon.
// VolumeCount and TextCount are editorial figures, not derived from links.
type Edition struct {
	ID          string    `json:"id"           yaml:"id"`
	Name        lang.Text `json:"name"         yaml:"name"`
	Description lang.Text `json:"description"  yaml:"description"`
	Year        *int      `json:"year"         yaml:"year"`
	Location    string    `json:"location"     yaml:"location"`
	VolumeCount int       `json:"volume_count" yaml:"volume_count"`
	TextCount   int       `json:"text_count"   yaml:"text_count"`
	IsActive    bool      `json:"is_active"    yaml:"is_active"`
	CreatedAt   time.Time `json:"created_at"   yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at"   yaml:"-"`
}

// EditionFilter narrows an edition listing.
type EditionFilter struct {
	ActiveOnly bool
}

// EditionPatch carries a partial edition update; nil fields are left untouched.
type EditionPatch struct {
	Name        *lang.Text
	Description *lang.Text
	Year        *int
	Location    *string
	VolumeCount *int
	TextCount   *int
	IsActive    *bool
}

// Apply merges the patch into edition.
func (patch EditionPatch) Apply(edition *Edition) {
	if patch.Name != nil {
		edition.Name = *patch.Name
	}
	if patch.Description != nil {
		edition.Description = *patch.Description
	}
	if patch.Year != nil {
		edition.Year = patch.Year
	}
	if patch.Location != nil {
		edition.Location = *patch.Location
	}
	if patch.VolumeCount != nil {
		edition.VolumeCount = *patch.VolumeCount
	}
	if patch.TextCount != nil {
		edition.TextCount = *patch.TextCount
	}
	if patch.IsActive != nil {
		edition.IsActive = *patch.IsActive
	}
}
