package http

import (
	"net/http"

	"github.com/hydrous-ai/hydrous/pkg/httpx"
)

// MeHandler returns the authenticated caller's identity snapshot. The gate
// already resolved it during verification, so no store access happens here.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := identityFromCtx(r.Context())
		if identity == nil {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		httpx.NoCache(w)
		httpx.WriteJSON(w, http.StatusOK, identity)
	}
}
