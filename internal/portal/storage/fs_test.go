package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFSUploader(t *testing.T) {
	ctx := context.Background()
	u, err := NewFSUploader(t.TempDir(), "http://localhost:8080/files")
	require.NoError(t, err)

	t.Run("upload and read back", func(t *testing.T) {
		err := u.Upload(ctx, "notices/agm.pdf", "application/pdf", strings.NewReader("pdf bytes"))
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(u.root, "notices", "agm.pdf"))
		require.NoError(t, err)
		require.Equal(t, "pdf bytes", string(data))
	})

	t.Run("second upload to the same key fails", func(t *testing.T) {
		err := u.Upload(ctx, "notices/agm.pdf", "application/pdf", strings.NewReader("other"))
		require.ErrorIs(t, err, ErrObjectExists)

		// Original content intact.
		data, err := os.ReadFile(filepath.Join(u.root, "notices", "agm.pdf"))
		require.NoError(t, err)
		require.Equal(t, "pdf bytes", string(data))
	})

	t.Run("url is rooted at the base", func(t *testing.T) {
		require.Equal(t, "http://localhost:8080/files/docs%2Fbylaws.pdf", u.URL("docs/bylaws.pdf"))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, u.Delete(ctx, "notices/agm.pdf"))
		require.NoError(t, u.Delete(ctx, "notices/agm.pdf"))
	})

	t.Run("traversal keys are rejected", func(t *testing.T) {
		err := u.Upload(ctx, "../escape.txt", "text/plain", strings.NewReader("x"))
		require.Error(t, err)
	})
}
