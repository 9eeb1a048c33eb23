package api

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/phrazzld/core-api/internal/platform/logger"
)

// RespondWithJSON writes data as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

// RespondWithError writes a JSON error body carrying the chi request ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := chimw.GetReqID(r.Context())

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("sending error response", "status_code", status, "message", message)
	} else {
		log.Debug("sending error response", "status_code", status, "message", message)
	}

	RespondWithJSON(w, r, status, ErrorResponse{Error: message, TraceID: traceID})
}
