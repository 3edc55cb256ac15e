// Copyright (c) 2026 Lotsawa. All rights reserved.

package media_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/media"
	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/internal/platform/sec"
)

// withRole injects verified claims the way the authentication middleware does.
func withRole(role sec.UserRole, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if role != "" {
			request = request.WithContext(ctxutil.WithClaims(request.Context(), &sec.Claims{Role: string(role)}))
		}
		next.ServeHTTP(writer, request)
	})
}

func TestHandler_CreateAndListNews(t *testing.T) {
	service, _ := newService(t)
	routes := media.NewHandler(service).Routes()

	body := `{"title":{"en":"New Tengyur volumes online","bo":null,"sa":null,"zh":null}}`
	recorder := httptest.NewRecorder()
	withRole(sec.RoleEditor, routes).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/news", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/news?limit=5", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		News       []media.NewsItem `json:"news"`
		Pagination struct {
			Limit int `json:"limit"`
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.News, 1)
	assert.Equal(t, "New Tengyur volumes online", *envelope.News[0].Title.English)
	assert.Nil(t, envelope.News[0].Title.Tibetan)
	assert.Equal(t, 5, envelope.Pagination.Limit)
	assert.Equal(t, 1, envelope.Pagination.Total)
}

func TestHandler_RoleEnforcement(t *testing.T) {
	service, _ := newService(t)
	routes := media.NewHandler(service).Routes()

	tests := []struct {
		name   string
		role   sec.UserRole
		method string
		path   string
		status int
	}{
		{"anonymous_create", "", http.MethodPost, "/videos", http.StatusUnauthorized},
		{"viewer_create", sec.RoleViewer, http.MethodPost, "/videos", http.StatusForbidden},
		{"editor_delete", sec.RoleEditor, http.MethodDelete, "/videos/abc", http.StatusForbidden},
		{"admin_delete_missing", sec.RoleAdmin, http.MethodDelete, "/videos/abc", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			withRole(tt.role, routes).ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
