package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

// maxUploadBytes caps a single document upload.
const maxUploadBytes = 25 << 20

type DocumentsHandler struct {
	DocumentService *service.DocumentService
}

type documentResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Filename       string    `json:"filename"`
	ContentType    string    `json:"content_type"`
	SizeBytes      int64     `json:"size_bytes"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDocumentResponse(d domain.Document) documentResponse {
	return documentResponse{
		ID:             d.ID,
		ConversationID: d.ConversationID,
		Filename:       d.Filename,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		CreatedAt:      d.CreatedAt,
	}
}

// HandleUpload handles POST /api/conversations/{id}/documents as a multipart
// form with a single "file" part.
func (h *DocumentsHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromCtx(ctx)
	conversationID := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart form with a 'file' part is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc, err := h.DocumentService.Upload(ctx, userID, conversationID, header.Filename, contentType, header.Size, file)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		log.Error("upload failed", "conversation_id", conversationID, "err", err)
		writeError(w, http.StatusInternalServerError, "upload failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toDocumentResponse(doc))
}

// HandleList handles GET /api/conversations/{id}/documents.
func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	docs, err := h.DocumentService.List(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		slogx.FromContext(ctx).Error("failed to list documents", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDownload handles GET /api/documents/{id} and streams the blob.
func (h *DocumentsHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	doc, rc, err := h.DocumentService.Open(ctx, httpx.UserIDFromCtx(ctx), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		log.Error("failed to open document", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to open document")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	if _, err := io.Copy(w, rc); err != nil {
		log.Warn("document stream interrupted", "document_id", doc.ID, "err", err)
	}
}
