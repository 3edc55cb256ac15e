// Copyright (c) 2026 Lotsawa. All rights reserved.

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/internal/platform/middleware"
	"github.com/lotsawa/canon/internal/platform/sec"
)

// stubVerifier maps raw tokens to roles.
type stubVerifier map[string]sec.UserRole

func (stub stubVerifier) VerifyToken(token string) (*sec.Claims, error) {
	role, ok := stub[token]
	if !ok {
		return nil, errors.New("bad token")
	}
	return &sec.Claims{UserID: "u-" + token, Role: string(role)}, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})
}

/*
TestRequireRole covers anonymous, insufficient, sufficient and invalid callers.
*/
func TestRequireRole(t *testing.T) {
	verifier := stubVerifier{"admin-token": sec.RoleAdmin, "viewer-token": sec.RoleViewer}
	handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleEditor)(okHandler()))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"viewer", "Bearer viewer-token", http.StatusForbidden},
		{"admin", "Bearer admin-token", http.StatusNoContent},
		{"invalid_token", "Bearer nope", http.StatusUnauthorized},
		{"malformed", "Token admin-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodPost, "/categories", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestAuthenticate_NoVerifier rejects tokens when verification is not configured
but lets anonymous reads through.
*/
func TestAuthenticate_NoVerifier(t *testing.T) {
	handler := middleware.Authenticate(nil)(okHandler())

	anonymous := httptest.NewRecorder()
	handler.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/texts", nil))
	assert.Equal(t, http.StatusNoContent, anonymous.Code)

	request := httptest.NewRequest(http.MethodGet, "/texts", nil)
	request.Header.Set("Authorization", "Bearer anything")
	withToken := httptest.NewRecorder()
	handler.ServeHTTP(withToken, request)
	assert.Equal(t, http.StatusUnauthorized, withToken.Code)
}

/*
TestRequestID propagates a client-supplied id and generates one otherwise.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "abc")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", recorder.Header().Get("X-Request-ID"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
}

/*
TestRateLimit rejects requests beyond the burst for one IP.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/search", nil)
		request.RemoteAddr = "192.0.2.7:5000"
		handler.ServeHTTP(recorder, request)
		statuses = append(statuses, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, statuses)
}

/*
TestPanicRecovery converts a panic into a 500 response.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "kaboom")
}
