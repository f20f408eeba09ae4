package sqlite

import (
	"context"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
)

type documentsRepo struct {
	q querier
}

const documentColumns = `id, conversation_id, filename, storage_key, content_type, size_bytes, created_at`

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ConversationID, d.Filename, d.StorageKey, d.ContentType, d.SizeBytes, d.CreatedAt,
	)
	return err
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	var d domain.Document
	err := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id).
		Scan(&d.ID, &d.ConversationID, &d.Filename, &d.StorageKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListDocumentsByConversation(ctx context.Context, conversationID string) ([]domain.Document, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE conversation_id = ? ORDER BY created_at DESC`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.ConversationID, &d.Filename, &d.StorageKey, &d.ContentType, &d.SizeBytes, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
