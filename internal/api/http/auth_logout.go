package http

import (
	"net/http"

	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP revokes the presented token. A store failure is reported as 500
// so the client knows the token may still be live.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	raw := httpx.TokenFromCtx(ctx)
	if userID == "" || raw == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.AuthService.Logout(ctx, raw, userID); err != nil {
		log.Error("logout failed", "err", err)
		writeError(w, http.StatusInternalServerError, "logout failed, token may still be valid")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

type LogoutAllHandler struct {
	AuthService *service.AuthService
}

type logoutAllResponse struct {
	Message             string `json:"message"`
	SessionsInvalidated int    `json:"sessions_invalidated"`
}

// ServeHTTP sweeps the caller's session registry, keeping the current
// session (the one making this request) alive.
func (h *LogoutAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	raw := httpx.TokenFromCtx(ctx)
	if userID == "" || raw == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	count, err := h.AuthService.LogoutAllDevices(ctx, userID, raw)
	if err != nil {
		log.Error("logout-all failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to invalidate sessions")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, logoutAllResponse{
		Message:             "Logged out from all other devices",
		SessionsInvalidated: count,
	})
}
