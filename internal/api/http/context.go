package http

import (
	"context"

	"github.com/hydrous-ai/hydrous/internal/api/domain"
)

type identityCtxKey struct{}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// identityFromCtx returns the identity the gate attached, or nil on an
// exempt route.
func identityFromCtx(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityCtxKey{}).(*domain.Identity)
	return id
}
