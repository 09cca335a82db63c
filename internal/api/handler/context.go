package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/toolroom/toolroom/internal/api/middleware"
)

// GetSession retrieves the authenticated session from the context.
// This is a convenience wrapper around middleware.GetSession.
func GetSession(ctx context.Context) *middleware.Session {
	return middleware.GetSession(ctx)
}

// pathID parses an int64 URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
