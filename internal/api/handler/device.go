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

// DeviceHandler serves device endpoints.
type DeviceHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(svc *catalog.Service, logger zerolog.Logger) *DeviceHandler {
	return &DeviceHandler{
		catalog: svc,
		logger:  logger.With().Str("handler", "device").Logger(),
	}
}

// List returns all devices ordered by id.
func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.catalog.ListDevices(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list devices")
		response.InternalError(w, r, "failed to list devices")
		return
	}
	response.JSON(w, r, http.StatusOK, devices)
}

// Get returns a single device by id.
func (h *DeviceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "deviceID")
	if !ok {
		response.BadRequest(w, r, "invalid device id", nil)
		return
	}

	device, err := h.catalog.GetDevice(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrDeviceNotFound):
		response.NotFound(w, r, "device not found")
	case err != nil:
		h.logger.Error().Err(err).Int64("device_id", id).Msg("failed to get device")
		response.InternalError(w, r, "failed to get device")
	default:
		response.JSON(w, r, http.StatusOK, device)
	}
}

// Create adds a new device. Admin only. The referenced category must exist.
func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.DeviceCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	device, err := h.catalog.CreateDevice(r.Context(), &req)
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "categoryId", Message: "category does not exist"},
		})
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to create device")
		response.InternalError(w, r, "failed to create device")
	default:
		response.Created(w, r, fmt.Sprintf("/api/devices/%d", device.ID), device)
	}
}

// Update applies a partial update to a device. Admin only.
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "deviceID")
	if !ok {
		response.BadRequest(w, r, "invalid device id", nil)
		return
	}

	var req models.DeviceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	device, err := h.catalog.UpdateDevice(r.Context(), id, &req)
	switch {
	case errors.Is(err, catalog.ErrDeviceNotFound):
		response.NotFound(w, r, "device not found")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "categoryId", Message: "category does not exist"},
		})
	case err != nil:
		h.logger.Error().Err(err).Int64("device_id", id).Msg("failed to update device")
		response.InternalError(w, r, "failed to update device")
	default:
		response.JSON(w, r, http.StatusOK, device)
	}
}

// Delete removes a device together with its chat transcript. Admin only.
func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "deviceID")
	if !ok {
		response.BadRequest(w, r, "invalid device id", nil)
		return
	}

	err := h.catalog.DeleteDevice(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrDeviceNotFound):
		response.NotFound(w, r, "device not found")
	case err != nil:
		h.logger.Error().Err(err).Int64("device_id", id).Msg("failed to delete device")
		response.InternalError(w, r, "failed to delete device")
	default:
		response.NoContent(w, r)
	}
}
