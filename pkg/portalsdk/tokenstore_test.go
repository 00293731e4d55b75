package portalsdk

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileTokenStore(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileTokenStore(path)

	_, ok, err := store.Load()
	require.NoError(t, err)
	require.False(t, ok, "a missing file means no stored session")

	want := StoredTokens{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		SessionID:    "sess-1",
		ExpiresIn:    900,
	}
	require.NoError(t, store.Save(want))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, "-rw-------", info.Mode().String())
	}

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	require.NoError(t, store.Clear())
	_, ok, err = store.Load()
	require.NoError(t, err)
	require.False(t, ok)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}
