// Package api holds the HTTP handlers the server mounts: health, superuser
// login, token refresh and the authenticated identity endpoint. Request
// decoding and response rendering go through go-chi/render.
package api
