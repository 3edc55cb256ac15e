// Copyright (c) 2026 Lotsawa. All rights reserved.

package search_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/search"
)

func TestHandler_Search(t *testing.T) {
	l := newLibrary(t)
	routes := search.NewHandler(l.aggregator).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search?q=kangyur&type=timeline&limit=1", nil))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body struct {
		Type    string `json:"type"`
		Results map[string]struct {
			Items []json.RawMessage `json:"items"`
			Total int               `json:"total"`
		} `json:"results"`
		Pagination struct {
			Limit      int `json:"limit"`
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "timeline", body.Type)
	require.Len(t, body.Results, 4)
	assert.Len(t, body.Results["timeline"].Items, 2)
	assert.Equal(t, 2, body.Pagination.TotalPages)
	assert.Contains(t, recorder.Body.String(), `"content":{"items":[],"total":0}`)
}

func TestHandler_SearchEmptyQuery(t *testing.T) {
	l := newLibrary(t)
	routes := search.NewHandler(l.aggregator).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":0`)
}

func TestHandler_SearchEmptyQueryWithUnknownType(t *testing.T) {
	l := newLibrary(t)
	routes := search.NewHandler(l.aggregator).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search?q=&type=bogus", nil))
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"type":"all"`)
	assert.Contains(t, recorder.Body.String(), `"news":{"items":[],"total":0}`)
}

func TestHandler_SearchRejectsUnknownType(t *testing.T) {
	l := newLibrary(t)
	routes := search.NewHandler(l.aggregator).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/search?q=x&type=users", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
