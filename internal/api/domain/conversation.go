package domain

import "time"

// Conversation groups a user's chat exchanges and the documents uploaded
// alongside them.
type Conversation struct {
	ID        string // ULID
	UserID    string // UUID of the owner
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
