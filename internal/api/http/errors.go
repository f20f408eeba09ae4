package http

import (
	"net/http"

	"github.com/hydrous-ai/hydrous/pkg/httpx"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, code int, detail string) {
	httpx.WriteJSON(w, code, errorResponse{Detail: detail})
}
