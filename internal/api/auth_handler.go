package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/core-api/internal/api/middleware"
	"github.com/phrazzld/core-api/internal/config"
	"github.com/phrazzld/core-api/internal/platform/logger"
	"github.com/phrazzld/core-api/internal/service/auth"
)

// AuthHandler issues and refreshes bearer tokens for the bootstrap superuser.
type AuthHandler struct {
	superuser        auth.SuperuserSeed
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	policy           config.TokenPolicy
	validator        *validator.Validate
	timeFunc         func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	superuser auth.SuperuserSeed,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	policy config.TokenPolicy,
) *AuthHandler {
	return &AuthHandler{
		superuser:        superuser,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		policy:           policy,
		validator:        validator.New(),
		timeFunc:         time.Now,
	}
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.superuser.Username)) == 1
	passwordErr := h.passwordVerifier.Compare(h.superuser.PasswordHash, req.Password)
	if !userMatch || passwordErr != nil {
		logger.FromContext(r.Context()).Info("login rejected", "username", req.Username)
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.issueTokens(w, r, h.superuser.ID)
}

// RefreshToken handles the /auth/refresh endpoint.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if claims.UserID != h.superuser.ID {
		RespondWithError(w, r, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	h.issueTokens(w, r, claims.UserID)
}

// Me handles the /me endpoint. It must be mounted behind the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	resp := MeResponse{
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt.UTC().Format(time.RFC3339),
	}
	if claims.UserID == h.superuser.ID {
		resp.Username = h.superuser.Username
	}
	RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *AuthHandler) issueTokens(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	log := logger.FromContext(r.Context())

	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		log.Error("failed to generate access token", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		log.Error("failed to generate refresh token", "error", err, "user_id", userID)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    h.timeFunc().Add(h.policy.AccessTTL).UTC().Format(time.RFC3339),
		TokenType:    h.policy.HeaderScheme,
	})
}
