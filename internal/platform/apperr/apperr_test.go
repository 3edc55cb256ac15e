// Copyright (c) 2026 Lotsawa. All rights reserved.

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/apperr"
)

/*
TestStatusTable pins the code to HTTP status mapping of the wire contract.
*/
func TestStatusTable(t *testing.T) {
	tests := []struct {
		err    *apperr.AppError
		code   string
		status int
	}{
		{apperr.ValidationError("bad"), apperr.CodeValidation, http.StatusBadRequest},
		{apperr.NotFound("Text"), apperr.CodeNotFound, http.StatusNotFound},
		{apperr.Duplicate("dup"), apperr.CodeDuplicate, http.StatusConflict},
		{apperr.Integrity("blocked"), apperr.CodeIntegrity, http.StatusConflict},
		{apperr.AuthRequired("login"), apperr.CodeAuthRequired, http.StatusUnauthorized},
		{apperr.Forbidden("no"), apperr.CodeForbidden, http.StatusForbidden},
		{apperr.Config("blob storage", nil), apperr.CodeConfig, http.StatusInternalServerError},
		{apperr.Internal(errors.New("boom")), apperr.CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

/*
TestAs_ThroughWrapping confirms AppErrors survive fmt.Errorf wrapping.
*/
func TestAs_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", apperr.NotFound("Category"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "Category not found", ae.Message)
	assert.True(t, apperr.HasCode(wrapped, apperr.CodeNotFound))
	assert.False(t, apperr.HasCode(errors.New("plain"), apperr.CodeNotFound))
}

/*
TestInternal_HidesCause keeps the cause out of the client message.
*/
func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := apperr.Internal(cause)

	assert.NotContains(t, err.Error(), "relation")
	assert.ErrorIs(t, err, cause)
}
