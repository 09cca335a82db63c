package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/api/response"
	"github.com/toolroom/toolroom/internal/catalog"
	"github.com/toolroom/toolroom/internal/chat"
)

// ChatHandler serves per-device chat endpoints. Every operation resolves the
// device first so a transcript can never outlive its device.
type ChatHandler struct {
	catalog *catalog.Service
	chat    *chat.Service
	logger  zerolog.Logger
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(catalogSvc *catalog.Service, chatSvc *chat.Service, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		catalog: catalogSvc,
		chat:    chatSvc,
		logger:  logger.With().Str("handler", "chat").Logger(),
	}
}

// List returns a device's transcript, oldest first.
func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	device, ok := h.resolveDevice(w, r)
	if !ok {
		return
	}

	messages, err := h.chat.Transcript(r.Context(), device.ID)
	if err != nil {
		h.logger.Error().Err(err).Int64("device_id", device.ID).Msg("failed to load transcript")
		response.InternalError(w, r, "failed to load transcript")
		return
	}
	response.JSON(w, r, http.StatusOK, messages)
}

// Send runs one chat turn: the user message and the assistant reply are both
// persisted and returned. Provider failures surface as a fallback reply, not
// as an error status.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	device, ok := h.resolveDevice(w, r)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "validation failed", fieldErrors)
		return
	}

	result, err := h.chat.Send(r.Context(), device, &req)
	if err != nil {
		h.logger.Error().Err(err).Int64("device_id", device.ID).Msg("failed to run chat turn")
		response.InternalError(w, r, "failed to send message")
		return
	}
	response.JSON(w, r, http.StatusOK, result)
}

// Clear empties a device's transcript.
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	device, ok := h.resolveDevice(w, r)
	if !ok {
		return
	}

	if err := h.chat.Clear(r.Context(), device.ID); err != nil {
		h.logger.Error().Err(err).Int64("device_id", device.ID).Msg("failed to clear transcript")
		response.InternalError(w, r, "failed to clear transcript")
		return
	}
	response.NoContent(w, r)
}

// resolveDevice loads the device named in the URL, writing the error response
// itself when the device cannot be resolved.
func (h *ChatHandler) resolveDevice(w http.ResponseWriter, r *http.Request) (*catalog.Device, bool) {
	id, ok := pathID(r, "deviceID")
	if !ok {
		response.BadRequest(w, r, "invalid device id", nil)
		return nil, false
	}

	device, err := h.catalog.GetDomainDevice(r.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrDeviceNotFound):
		response.NotFound(w, r, "device not found")
		return nil, false
	case err != nil:
		h.logger.Error().Err(err).Int64("device_id", id).Msg("failed to get device")
		response.InternalError(w, r, "failed to get device")
		return nil, false
	}
	return device, true
}
