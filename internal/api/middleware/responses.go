package middleware

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is the JSON body written when a middleware rejects a request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}
