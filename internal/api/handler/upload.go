package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/api/response"
	"github.com/toolroom/toolroom/internal/upload"
)

// maxUploadMemory caps how much of a multipart body is buffered in memory
// before spilling to disk.
const maxUploadMemory = 4 << 20

// UploadHandler serves image upload endpoints.
type UploadHandler struct {
	store  *upload.Store
	logger zerolog.Logger
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(store *upload.Store, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload accepts a multipart form with an "image" file part and stores it,
// returning the URL the image is served under.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, r, "expected multipart form data", nil)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "image", Message: "image file is required"},
		})
		return
	}
	defer file.Close()

	url, err := h.store.Save(file)
	switch {
	case errors.Is(err, upload.ErrNotAnImage):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "image", Message: "file is not a supported image type"},
		})
	case errors.Is(err, upload.ErrTooLarge):
		response.BadRequest(w, r, "validation failed", []models.FieldError{
			{Field: "image", Message: "file exceeds the upload size limit"},
		})
	case err != nil:
		h.logger.Error().Err(err).Msg("failed to store upload")
		response.InternalError(w, r, "failed to store upload")
	default:
		response.JSON(w, r, http.StatusCreated, models.UploadResponse{ImageURL: url})
	}
}
