// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response follows one of three shapes:
//
//   - single entity: the bare JSON object;
//   - list: {"<entity>": [...], "pagination": {...}};
//   - error: {"error": {"code", "message", "details", "timestamp"}}.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/pkg/pagination"
)

// ErrorBody is the payload nested under "error" in error responses.
type ErrorBody struct {
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   []apperr.FieldError `json:"details"`
	Timestamp string              `json:"timestamp"`
}

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// now is swapped in tests.
var now = time.Now

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the bare payload.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with the bare payload.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, data)
}

// List writes a 200 OK list envelope keyed by the entity name.
func List(writer http.ResponseWriter, entity string, items interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, map[string]interface{}{
		entity:       items,
		"pagination": metadata,
	})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())
	requestID := ctxutil.GetRequestID(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID),
			slog.Any("cause", appError.Cause),
		)
	}

	details := appError.Details
	if details == nil {
		details = []apperr.FieldError{}
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{Error: ErrorBody{
		Code:      appError.Code,
		Message:   appError.Message,
		Details:   details,
		Timestamp: now().UTC().Format(time.RFC3339),
	}})
}
