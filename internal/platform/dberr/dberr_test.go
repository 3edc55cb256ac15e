// Copyright (c) 2026 Lotsawa. All rights reserved.

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"wrapped_no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.CodeNotFound},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "category_slug_key"}, apperr.CodeDuplicate},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, apperr.CodeIntegrity},
		{"not_null", &pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "slug"}, apperr.CodeValidation},
		{"other", errors.New("conn reset"), apperr.CodeInternal},
		{"passthrough", apperr.Integrity("blocked"), apperr.CodeIntegrity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Category"), tt.code))
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Category"))
}
