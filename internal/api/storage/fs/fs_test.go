package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/hydrous-ai/hydrous/internal/api/storage"

	"github.com/stretchr/testify/require"
)

func TestPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "uploads/report.pdf", strings.NewReader("pdf bytes"), "application/pdf"))

	r, err := s.Open(ctx, "uploads/report.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.Equal(t, "pdf bytes", string(data))

	require.NoError(t, s.Delete(ctx, "uploads/report.pdf"))

	_, err = s.Open(ctx, "uploads/report.pdf")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteAbsentKeyIsNoop(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), "never/there"))
}

func TestRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.Error(t, s.Put(ctx, "../outside", strings.NewReader("x"), ""))
	_, err = s.Open(ctx, "../../etc/passwd")
	require.Error(t, err)
}
