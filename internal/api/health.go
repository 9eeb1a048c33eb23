package api

import (
	"net/http"
)

// Health reports liveness. It never touches the database, mail relay or CDN.
func Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
