// Copyright (c) 2026 Lotsawa. All rights reserved.

/*
Package catalog also provides the HTTP interface for categories, texts and
editions.

# Access Control

  - Public: every read, including the navigation tree.
  - Editor: creating and updating entries, managing edition links.
  - Admin: deleting entries.
*/
package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lotsawa/canon/internal/platform/lang"
	"github.com/lotsawa/canon/internal/platform/middleware"
	requestutil "github.com/lotsawa/canon/internal/platform/request"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/internal/platform/sec"
	"github.com/lotsawa/canon/pkg/convert"
	"github.com/lotsawa/canon/pkg/pagination"
)

// Handler implements the HTTP layer for the catalog.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with every catalog endpoint, meant to be mounted at the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/categories", func(categoryRoute chi.Router) {
		categoryRoute.Get("/", handler.listCategories)
		categoryRoute.Get("/tree", handler.getTree)
		categoryRoute.Get("/by-slug/{slug}", handler.getCategoryBySlug)
		categoryRoute.Get("/{id}", handler.getCategory)

		categoryRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createCategory)
		categoryRoute.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateCategory)
		categoryRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteCategory)
	})

	router.Route("/texts", func(textRoute chi.Router) {
		textRoute.Get("/", handler.listTexts)
		textRoute.Get("/{id}", handler.getText)
		textRoute.Get("/{id}/editions", handler.listEditionLinks)

		textRoute.Group(func(editor chi.Router) {
			editor.Use(middleware.RequireRole(sec.RoleEditor))
			editor.Post("/", handler.createText)
			editor.Patch("/{id}", handler.updateText)
			editor.Post("/{id}/editions", handler.createEditionLink)
			editor.Delete("/{id}/editions/{linkID}", handler.deleteEditionLink)
		})

		textRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteText)
	})

	router.Route("/editions", func(editionRoute chi.Router) {
		editionRoute.Get("/", handler.listEditions)
		editionRoute.Get("/{id}", handler.getEdition)

		editionRoute.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createEdition)
		editionRoute.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateEdition)
		editionRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteEdition)
	})

	return router
}

// # Category Endpoints

/*
GET /api/v1/categories.

Request:
  - parent_id: string (optional, direct children only)
  - top_level: bool (default false, ignored with parent_id)
  - active: bool (default true)
  - page, limit: int

Response:
  - 200: {categories: []Category, pagination}
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := CategoryFilter{
		ParentID:   requestutil.OptionalQuery(request, FieldParentID),
		TopLevel:   convert.ToBoolD(requestutil.Query(request, "top_level"), false),
		ActiveOnly: convert.ToBoolD(requestutil.Query(request, "active"), true),
	}

	categories, total, err := handler.service.ListCategories(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, "categories", categories, pagination.NewMeta(params, total))
}

/*
GET /api/v1/categories/tree.

Request:
  - root: string (optional slug; the subtree below it is returned)
  - active: bool (default true)

Response:
  - 200: []TreeNode
  - 404: root slug does not resolve
*/
func (handler *Handler) getTree(writer http.ResponseWriter, request *http.Request) {
	activeOnly := convert.ToBoolD(requestutil.Query(request, "active"), true)

	nodes, err := handler.service.Tree(request.Context(), requestutil.Query(request, "root"), activeOnly)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nodes)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategory(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

func (handler *Handler) getCategoryBySlug(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategoryBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

type createCategoryRequest struct {
	Slug        string    `json:"slug"`
	ParentID    *string   `json:"parent_id"`
	Title       lang.Text `json:"title"`
	Description lang.Text `json:"description"`
	OrderIndex  int       `json:"order_index"`
	IsActive    *bool     `json:"is_active"`
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := &Category{
		Slug:        input.Slug,
		ParentID:    input.ParentID,
		Title:       input.Title,
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
		IsActive:    input.IsActive == nil || *input.IsActive,
	}

	if err := handler.service.CreateCategory(request.Context(), category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

// nullableString tells an absent JSON key apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	return json.Unmarshal(data, &n.Value)
}

type updateCategoryRequest struct {
	Slug        *string        `json:"slug"`
	ParentID    nullableString `json:"parent_id"`
	Title       *lang.Text     `json:"title"`
	Description *lang.Text     `json:"description"`
	OrderIndex  *int           `json:"order_index"`
	IsActive    *bool          `json:"is_active"`
}

/*
PATCH /api/v1/categories/{id}.

Request:
  - Any subset of the category fields. "parent_id": null moves the category
    to the top level; omitting parent_id leaves it in place.

Response:
  - 200: Category
  - 400: slug change or cyclic parent
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input updateCategoryRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch := CategoryPatch{
		Slug:        input.Slug,
		SetParent:   input.ParentID.Set,
		ParentID:    input.ParentID.Value,
		Title:       input.Title,
		Description: input.Description,
		OrderIndex:  input.OrderIndex,
		IsActive:    input.IsActive,
	}

	category, err := handler.service.UpdateCategory(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
