package handler

import (
	"net/http"
	"time"

	"github.com/toolroom/toolroom/internal/api/models"
	"github.com/toolroom/toolroom/internal/api/response"
)

// OpsHandler serves operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	started   time.Time
}

// NewOpsHandler constructs an OpsHandler.
func NewOpsHandler(version, buildTime string) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		started:   time.Now().UTC(),
	}
}

// Health reports process liveness.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: "ok",
		Time:   models.Timestamp(time.Now().UTC()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
			"uptime":    time.Since(h.started).Round(time.Second).String(),
		},
	})
}
