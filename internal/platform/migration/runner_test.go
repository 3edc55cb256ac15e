// Copyright (c) 2026 Lotsawa. All rights reserved.

package migration_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/migration"
)

func TestDatabaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/canon", "pgx5://u:p@db:5432/canon"},
		{"postgresql://u:p@db/canon?sslmode=disable", "pgx5://u:p@db/canon?sslmode=disable"},
		{"pgx5://db/canon", "pgx5://db/canon"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, migration.DatabaseURL(tt.in))
	}
}

func TestSourceURL(t *testing.T) {
	url, err := migration.SourceURL("./data/migrations")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "data/migrations"))

	_, err = migration.SourceURL("  ")
	assert.Error(t, err)
}
