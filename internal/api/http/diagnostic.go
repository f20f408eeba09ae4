package http

import (
	"net/http"

	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

type DBStatusHandler struct {
	Store store.Store
}

type dbStatusResponse struct {
	Status    string   `json:"status"`
	Tables    []string `json:"tables"`
	UserCount int64    `json:"user_count"`
}

// ServeHTTP reports relational-store connectivity, the visible tables, and
// the user count. Authenticated; intended for operators debugging a deploy.
func (h *DBStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.Store.Ping(ctx); err != nil {
		log.Error("db-status ping failed", "err", err)
		httpx.WriteJSON(w, http.StatusServiceUnavailable, dbStatusResponse{Status: "error: " + err.Error()})
		return
	}

	tables, err := h.Store.TableNames(ctx)
	if err != nil {
		log.Error("db-status table listing failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, dbStatusResponse{Status: "error: " + err.Error()})
		return
	}

	count, err := h.Store.Users().CountUsers(ctx)
	if err != nil {
		log.Error("db-status user count failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, dbStatusResponse{Status: "error: " + err.Error()})
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, dbStatusResponse{
		Status:    "connected",
		Tables:    tables,
		UserCount: count,
	})
}
