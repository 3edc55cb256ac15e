// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lotsawa/canon/internal/platform/apperr"
)

// Wrap inspects a database error and classifies it into an [apperr.AppError].
//
// resource names the entity for not-found messages (e.g. "Category").
// AppErrors pass through untouched so repositories can return typed errors
// from inside a transaction.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations reported by PostgreSQL
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return duplicate(resource, pgError)
		case pgerrcode.ForeignKeyViolation:
			return integrity(resource, pgError)
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return validation(pgError)
		}
	}

	// 3. Everything else is unexpected
	return apperr.Internal(err)
}

func duplicate(resource string, pgError *pgconn.PgError) error {
	ae := apperr.Duplicate(resource+" already exists", apperr.FieldError{
		Field:   pgError.ConstraintName,
		Message: "Value must be unique",
	})
	ae.Cause = pgError
	return ae
}

func integrity(resource string, pgError *pgconn.PgError) error {
	ae := apperr.Integrity(resource+" references a missing record or is still referenced", apperr.FieldError{
		Field:   pgError.ConstraintName,
		Message: "Foreign key constraint violated",
	})
	ae.Cause = pgError
	return ae
}

func validation(pgError *pgconn.PgError) error {
	field := pgError.ColumnName
	if field == "" {
		field = pgError.ConstraintName
	}
	ae := apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: "Value rejected by the database",
	})
	ae.Cause = pgError
	return ae
}
