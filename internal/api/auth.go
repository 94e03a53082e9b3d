package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/inventory/internal/auth"
	"github.com/erazemk/inventory/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB          *sql.DB
	TokenSecret string
}

type loginRequest struct {
	Passphrase string `json:"passphrase"`
	Client     string `json:"client"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Passphrase == "" {
		jsonError(w, http.StatusBadRequest, "passphrase required")
		return
	}

	hash, err := store.GetPassphraseHash(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to read passphrase hash", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !auth.CheckPassphrase(hash, req.Passphrase) {
		slog.Warn("login failed", "client", req.Client, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid passphrase")
		return
	}

	token, err := auth.GenerateToken(h.TokenSecret, req.Client)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("client logged in", "client", req.Client)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout by revoking the caller's token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expiresAt := time.Now().Add(auth.TokenExpiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, expiresAt); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log out")
		return
	}

	slog.Info("client logged out", "client", claims.Client)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
