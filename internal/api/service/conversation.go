package service

import (
	"context"
	"errors"
	"time"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
	"github.com/hydrous-ai/hydrous/internal/api/store"
	"github.com/hydrous-ai/hydrous/pkg/idx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

var ErrNotOwner = errors.New("not_conversation_owner")

// ConversationService manages a user's conversations. Ownership is enforced
// here so handlers only ever see conversations the caller may touch.
type ConversationService struct {
	Store store.Store
}

func (s *ConversationService) Create(ctx context.Context, userID, title string) (domain.Conversation, error) {
	log := slogx.FromContext(ctx)

	now := time.Now().UTC()
	conv := domain.Conversation{
		ID:        idx.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Conversations().CreateConversation(ctx, conv); err != nil {
		return domain.Conversation{}, err
	}

	log.Info("conversation created", "conversation_id", conv.ID, "user_id", abbrev(userID))
	return conv, nil
}

// Get returns the conversation only if userID owns it. A conversation that
// exists but belongs to someone else reports store.ErrNotFound, not
// ErrNotOwner, so existence is not leaked across users.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (domain.Conversation, error) {
	conv, err := s.Store.Conversations().GetConversationByID(ctx, conversationID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if conv.UserID != userID {
		return domain.Conversation{}, store.ErrNotFound
	}
	return conv, nil
}

func (s *ConversationService) List(ctx context.Context, userID string) ([]domain.Conversation, error) {
	return s.Store.Conversations().ListConversationsByUser(ctx, userID)
}

// Delete removes the conversation and, via the schema's cascade, its
// document metadata. Blobs in object storage are left for a separate sweep.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	log := slogx.FromContext(ctx)

	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.Store.Conversations().DeleteConversation(ctx, conversationID); err != nil {
		return err
	}

	log.Info("conversation deleted", "conversation_id", conversationID, "user_id", abbrev(userID))
	return nil
}
