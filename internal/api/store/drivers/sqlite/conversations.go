package sqlite

import (
	"context"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
)

type conversationsRepo struct {
	q querier
}

func (r *conversationsRepo) CreateConversation(ctx context.Context, c domain.Conversation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO conversations (id, user_id, title, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Title, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *conversationsRepo) GetConversationByID(ctx context.Context, id string) (domain.Conversation, error) {
	var c domain.Conversation
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE id = ?`, id).
		Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Conversation{}, mapNotFound(err)
	}
	return c, nil
}

func (r *conversationsRepo) ListConversationsByUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, user_id, title, created_at, updated_at FROM conversations WHERE user_id = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *conversationsRepo) DeleteConversation(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	return err
}
