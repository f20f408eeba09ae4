package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/storage"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/idx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

// DocumentService stores uploaded files: the blob goes to object storage,
// the metadata row to the relational store. Access is scoped through the
// owning conversation.
type DocumentService struct {
	Store store.Store
	Blobs storage.BlobStore

	Conversations *ConversationService
}

// Upload streams the file into object storage and records its metadata. The
// blob is written first; if the metadata insert fails the orphaned blob is
// removed so storage and metadata cannot drift.
func (s *DocumentService) Upload(ctx context.Context, userID, conversationID, filename, contentType string, size int64, r io.Reader) (domain.Document, error) {
	log := slogx.FromContext(ctx)

	if _, err := s.Conversations.Get(ctx, userID, conversationID); err != nil {
		return domain.Document{}, err
	}

	id := idx.New().String()
	key := path.Join("documents", conversationID, id+path.Ext(filename))

	if err := s.Blobs.Put(ctx, key, r, contentType); err != nil {
		return domain.Document{}, fmt.Errorf("store blob: %w", err)
	}

	doc := domain.Document{
		ID:             id,
		ConversationID: conversationID,
		Filename:       filename,
		StorageKey:     key,
		ContentType:    contentType,
		SizeBytes:      size,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		if derr := s.Blobs.Delete(ctx, key); derr != nil {
			log.Error("failed to remove orphaned blob", "key", key, "err", derr)
		}
		return domain.Document{}, err
	}

	log.Info("document uploaded",
		"document_id", id,
		"conversation_id", conversationID,
		"size_bytes", size,
	)
	return doc, nil
}

// List returns the metadata of every document in the conversation, owner
// check included.
func (s *DocumentService) List(ctx context.Context, userID, conversationID string) ([]domain.Document, error) {
	if _, err := s.Conversations.Get(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.Store.Documents().ListDocumentsByConversation(ctx, conversationID)
}

// Open returns the document's metadata and a reader over its blob.
func (s *DocumentService) Open(ctx context.Context, userID, documentID string) (domain.Document, io.ReadCloser, error) {
	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		return domain.Document{}, nil, err
	}
	if _, err := s.Conversations.Get(ctx, userID, doc.ConversationID); err != nil {
		return domain.Document{}, nil, err
	}

	rc, err := s.Blobs.Open(ctx, doc.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Document{}, nil, store.ErrNotFound
		}
		return domain.Document{}, nil, err
	}
	return doc, rc, nil
}
