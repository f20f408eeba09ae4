package store

import (
	"context"
	"errors"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Users() Users
	Conversations() Conversations
	Documents() Documents

	ApplyMigrations() error

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// TableNames lists user tables, for the diagnostic endpoint.
	TableNames(ctx context.Context) ([]string, error)
}

// Tx is a transaction-scoped view of the store's repositories.
type Tx interface {
	Users() Users
	Conversations() Conversations
	Documents() Documents
}

type Users interface {
	// GetUserByID returns a user by id (UUID string).
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login and duplicate-registration checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via UUID).
	CreateUser(ctx context.Context, u domain.User) error

	// CountUsers returns the total number of users (diagnostic).
	CountUsers(ctx context.Context) (int64, error)

	// DeleteUser cascades to conversations and documents (per schema).
	DeleteUser(ctx context.Context, userID string) error
}

type Conversations interface {
	CreateConversation(ctx context.Context, c domain.Conversation) error
	GetConversationByID(ctx context.Context, id string) (domain.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]domain.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
}

type Documents interface {
	CreateDocument(ctx context.Context, d domain.Document) error
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)
	ListDocumentsByConversation(ctx context.Context, conversationID string) ([]domain.Document, error)
}
