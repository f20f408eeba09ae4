package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	deviceInfo := map[string]string{
		"ip":         httpx.IPKeyExtractor(r),
		"user_agent": r.UserAgent(),
	}

	token, err := h.AuthService.Login(ctx, req.Email, req.Password, deviceInfo)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		log.Error("login failed", "err", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		UserID:      token.UserID,
		ExpiresAt:   token.ExpiresAt,
	})
}
