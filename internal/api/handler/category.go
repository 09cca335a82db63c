package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/api/response"
	"github.com/toolroom/toolroom/internal/catalog"
)

// CategoryHandler serves device category endpoints.
type CategoryHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(svc *catalog.Service, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: svc,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// List returns all device categories ordered by id.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list categories")
		response.InternalError(w, r, "failed to list categories")
		return
	}
	response.JSON(w, r, http.StatusOK, categories)
}

// Create adds a new device category. Admin only.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	category, err := h.catalog.CreateCategory(r.Context(), &req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create category")
		response.InternalError(w, r, "failed to create category")
		return
	}
	response.Created(w, r, fmt.Sprintf("/api/categories/%d", category.ID), category)
}

// Delete removes a category. Admin only. Categories still referenced
// by devices cannot be deleted.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		response.BadRequest(w, r, "invalid category id", nil)
		return
	}

	err := h.catalog.DeleteCategory(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		response.NotFound(w, r, "category not found")
	case errors.Is(err, catalog.ErrCategoryInUse):
		response.Conflict(w, r, "category has devices assigned to it")
	case err != nil:
		h.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		response.InternalError(w, r, "failed to delete category")
	default:
		response.NoContent(w, r)
	}
}

// ListDevices returns the devices assigned to a category. An unknown
// category yields an empty list rather than an error.
func (h *CategoryHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryID")
	if !ok {
		response.BadRequest(w, r, "invalid category id", nil)
		return
	}

	devices, err := h.catalog.ListDevicesByCategory(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("category_id", id).Msg("failed to list category devices")
		response.InternalError(w, r, "failed to list devices")
		return
	}
	response.JSON(w, r, http.StatusOK, devices)
}
