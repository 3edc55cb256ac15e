// Copyright (c) 2026 Lotsawa. All rights reserved.

package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/catalog"
	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/internal/platform/respond"
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

func serve(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestHandler_CreateCategoryAndLookupBySlug(t *testing.T) {
	f := newFixture(t, nil)
	routes := catalog.NewHandler(f.service).Routes()
	editor := withRole(sec.RoleEditor, routes)

	recorder := serve(t, editor, http.MethodPost, "/categories", `{"title":{"en":"Perfection of Wisdom"}}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created catalog.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "perfection-of-wisdom", created.Slug)
	assert.True(t, created.IsActive)

	recorder = serve(t, routes, http.MethodGet, "/categories/by-slug/perfection-of-wisdom", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched catalog.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
}

func TestHandler_DuplicateSlugEnvelope(t *testing.T) {
	f := newFixture(t, nil)
	f.category(t, "kangyur", nil)
	editor := withRole(sec.RoleEditor, catalog.NewHandler(f.service).Routes())

	recorder := serve(t, editor, http.MethodPost, "/categories", `{"slug":"kangyur","title":{"en":"Kangyur"}}`)
	require.Equal(t, http.StatusConflict, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeDuplicate, envelope.Error.Code)
	require.Len(t, envelope.Error.Details, 1)
	assert.Equal(t, catalog.FieldSlug, envelope.Error.Details[0].Field)
}

func TestHandler_DeleteBlockedEnvelope(t *testing.T) {
	f := newFixture(t, nil)
	root := f.category(t, "kangyur", nil)
	f.category(t, "sutra", root)
	f.text(t, root, "Heart Sutra")
	admin := withRole(sec.RoleAdmin, catalog.NewHandler(f.service).Routes())

	recorder := serve(t, admin, http.MethodDelete, "/categories/"+root.ID, "")
	require.Equal(t, http.StatusConflict, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, apperr.CodeIntegrity, envelope.Error.Code)
	require.Len(t, envelope.Error.Details, 2)
	assert.Equal(t, catalog.ReasonChildren, envelope.Error.Details[0].Field)
	assert.Equal(t, catalog.ReasonTexts, envelope.Error.Details[1].Field)
}

func TestHandler_Tree(t *testing.T) {
	f := newFixture(t, nil)
	root := f.category(t, "kangyur", nil)
	f.category(t, "sutra", root)
	routes := catalog.NewHandler(f.service).Routes()

	recorder := serve(t, routes, http.MethodGet, "/categories/tree", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var forest []*catalog.TreeNode
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &forest))
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "sutra", forest[0].Children[0].Slug)
	assert.Contains(t, recorder.Body.String(), `"children":[]`)

	recorder = serve(t, routes, http.MethodGet, "/categories/tree?root=missing", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_ReparentWithNull(t *testing.T) {
	f := newFixture(t, nil)
	root := f.category(t, "kangyur", nil)
	child := f.category(t, "sutra", root)
	editor := withRole(sec.RoleEditor, catalog.NewHandler(f.service).Routes())

	recorder := serve(t, editor, http.MethodPatch, "/categories/"+child.ID, `{"order_index":3}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated catalog.Category
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	require.NotNil(t, updated.ParentID, "absent parent_id leaves the parent in place")

	recorder = serve(t, editor, http.MethodPatch, "/categories/"+child.ID, `{"parent_id":null}`)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	assert.Nil(t, updated.ParentID)
}

func TestHandler_ListTextsRejectsUnknownLanguage(t *testing.T) {
	f := newFixture(t, nil)
	routes := catalog.NewHandler(f.service).Routes()

	recorder := serve(t, routes, http.MethodGet, "/texts?lang=xx", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Error.Details, 1)
	assert.Equal(t, catalog.FieldLanguage, envelope.Error.Details[0].Field)
}

func TestHandler_CreateTextAndLinkEdition(t *testing.T) {
	f := newFixture(t, nil)
	root := f.category(t, "kangyur", nil)
	derge := f.edition(t, "Derge")
	editor := withRole(sec.RoleEditor, catalog.NewHandler(f.service).Routes())

	body := `{"category_id":"` + root.ID + `","title":{"bo":"ཤེས་རབ་སྙིང་པོ","en":"Heart Sutra"}}`
	recorder := serve(t, editor, http.MethodPost, "/texts", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var text catalog.Text
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &text))

	link := `{"edition_id":"` + derge.ID + `","volume":"ka"}`
	recorder = serve(t, editor, http.MethodPost, "/texts/"+text.ID+"/editions", link)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = serve(t, editor, http.MethodPost, "/texts/"+text.ID+"/editions", link)
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = serve(t, editor, http.MethodGet, "/texts/"+text.ID+"/editions", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), derge.ID)
}

func TestHandler_RoleEnforcement(t *testing.T) {
	f := newFixture(t, nil)
	routes := catalog.NewHandler(f.service).Routes()

	tests := []struct {
		name   string
		role   sec.UserRole
		method string
		path   string
		status int
	}{
		{"anonymous_create_category", "", http.MethodPost, "/categories", http.StatusUnauthorized},
		{"viewer_create_text", sec.RoleViewer, http.MethodPost, "/texts", http.StatusForbidden},
		{"editor_delete_category", sec.RoleEditor, http.MethodDelete, "/categories/abc", http.StatusForbidden},
		{"editor_delete_text", sec.RoleEditor, http.MethodDelete, "/texts/abc", http.StatusForbidden},
		{"admin_delete_missing_text", sec.RoleAdmin, http.MethodDelete, "/texts/abc", http.StatusNotFound},
		{"anonymous_read", "", http.MethodGet, "/categories", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(t, withRole(tt.role, routes), tt.method, tt.path, `{}`)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

func TestHandler_ListCategoriesHugePage(t *testing.T) {
	f := newFixture(t, nil)
	f.category(t, "kangyur", nil)
	routes := catalog.NewHandler(f.service).Routes()

	recorder := serve(t, routes, http.MethodGet, "/categories?page=9223372036854775807&limit=20", "")

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `"categories":[]`)
	assert.Contains(t, recorder.Body.String(), `"has_next":false`)
}

func TestHandler_ListTextsCommaSeparatedFilter(t *testing.T) {
	f := newFixture(t, nil)
	root := f.category(t, "kangyur", nil)
	routes := catalog.NewHandler(f.service).Routes()
	editor := withRole(sec.RoleEditor, routes)

	for _, vehicle := range []string{"mahayana", "hinayana", "vajrayana"} {
		body := `{"category_id":"` + root.ID + `","title":{"bo":"མདོ","en":"Sutra"},"vehicle":"` + vehicle + `"}`
		recorder := serve(t, editor, http.MethodPost, "/texts", body)
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	tests := []struct {
		query string
		total string
	}{
		{"?vehicle=mahayana", `"total":1`},
		{"?vehicle=mahayana,%20hinayana", `"total":2`},
		{"?vehicle=mahayana,,", `"total":1`},
		{"?vehicle=tantra", `"total":0`},
		{"", `"total":3`},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			recorder := serve(t, routes, http.MethodGet, "/texts"+tt.query, "")
			require.Equal(t, http.StatusOK, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.total)
		})
	}
}
