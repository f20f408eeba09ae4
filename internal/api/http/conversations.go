package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

type ConversationsHandler struct {
	ConversationService *service.ConversationService
}

type conversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toConversationResponse(c domain.Conversation) conversationResponse {
	return conversationResponse{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// HandleCreate handles POST /api/conversations.
func (h *ConversationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)

	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		req.Title = "New conversation"
	}

	conv, err := h.ConversationService.Create(ctx, userID, req.Title)
	if err != nil {
		log.Error("failed to create conversation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toConversationResponse(conv))
}

// HandleList handles GET /api/conversations.
func (h *ConversationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	convs, err := h.ConversationService.List(ctx, httpx.UserIDFromCtx(ctx))
	if err != nil {
		log.Error("failed to list conversations", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, toConversationResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/conversations/{id}.
func (h *ConversationsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conv, err := h.ConversationService.Get(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to load conversation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toConversationResponse(conv))
}

// HandleDelete handles DELETE /api/conversations/{id}.
func (h *ConversationsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	err := h.ConversationService.Delete(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to delete conversation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
