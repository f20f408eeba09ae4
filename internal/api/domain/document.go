package domain

import "time"

// Document records an uploaded file. The blob lives in object storage under
// StorageKey; only metadata is kept relationally.
type Document struct {
	ID             string // ULID
	ConversationID string
	Filename       string
	StorageKey     string
	ContentType    string
	SizeBytes      int64
	CreatedAt      time.Time
}
