package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/shop/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// CategoryHandler serves the catalogue categories. Reads are public, writes
// need an admin session.
type CategoryHandler struct {
	CategoryService *service.CategoryService
}

// HandleList handles GET /api/categories
//
//	@Summary		List categories
//	@Description	Returns every category sorted by name.
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		shopsdk.Category
//	@Failure		500	{object}	shopsdk.ErrorResponse	"Internal server error"
//	@Router			/api/categories [get].
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CategoryService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]shopsdk.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategory(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/categories/{id}
//
//	@Summary	Get a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string	true	"Category ID"
//	@Success	200	{object}	shopsdk.Category
//	@Failure	404	{object}	shopsdk.ErrorResponse	"Category Not Found"
//	@Router		/api/categories/{id} [get].
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategoryService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategory(c))
}

// HandleCreate handles POST /api/categories
//
//	@Summary		Create a category
//	@Description	Creates a category. The slug is derived from the name and suffixed -01, -02... when taken.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		shopsdk.CategoryRequest		true	"Category name"
//	@Success		201		{object}	shopsdk.CategoryResponse	"Category Created"
//	@Failure		400		{object}	shopsdk.ErrorResponse		"Missing name"
//	@Failure		401		{object}	shopsdk.ErrorResponse		"Invalid or missing session token"
//	@Failure		403		{object}	shopsdk.ErrorResponse		"Not an admin"
//	@Failure		409		{object}	shopsdk.ErrorResponse		"Category Already Exists"
//	@Router			/api/categories [post].
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.CategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse category request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	c, err := h.CategoryService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, shopsdk.CategoryResponse{
		Message:  "Category Created",
		Category: toCategory(c),
	})
}

// HandleUpdate handles PUT /api/categories/{id}
//
//	@Summary		Rename a category
//	@Description	Renames a category and regenerates its slug.
//	@Tags			Categories
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Category ID"
//	@Param			request	body		shopsdk.CategoryRequest		true	"New name"
//	@Success		200		{object}	shopsdk.CategoryResponse	"Category Updated"
//	@Failure		400		{object}	shopsdk.ErrorResponse		"Missing name"
//	@Failure		404		{object}	shopsdk.ErrorResponse		"Category Not Found"
//	@Failure		409		{object}	shopsdk.ErrorResponse		"Category Already Exists"
//	@Router			/api/categories/{id} [put].
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.CategoryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse category request", "err", err)
		shopsdk.ErrInvalidBody.WriteError(w)
		return
	}

	c, err := h.CategoryService.Update(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shopsdk.CategoryResponse{
		Message:  "Category Updated",
		Category: toCategory(c),
	})
}

// HandleDelete handles DELETE /api/categories/{id}
//
//	@Summary	Delete a category
//	@Tags		Categories
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string						true	"Category ID"
//	@Success	200	{object}	shopsdk.CategoryResponse	"Category Deleted"
//	@Failure	404	{object}	shopsdk.ErrorResponse		"Category Not Found"
//	@Router		/api/categories/{id} [delete].
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	c, err := h.CategoryService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shopsdk.CategoryResponse{
		Message:  "Category Deleted",
		Category: toCategory(c),
	})
}
