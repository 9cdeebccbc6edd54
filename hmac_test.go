package jwt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadHMAC(t *testing.T) {
	t.Run("raw value", func(t *testing.T) {
		key, err := LoadHMAC("not-a-file-just-a-secret")
		require.NoError(t, err)
		require.Equal(t, []byte("not-a-file-just-a-secret"), key)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hmac.key")
		require.NoError(t, os.WriteFile(path, []byte("file secret"), 0o600))

		key, err := LoadHMAC(path)
		require.NoError(t, err)
		require.Equal(t, []byte("file secret"), key)

		require.Equal(t, []byte("file secret"), MustLoadHMAC(path))
	})

	t.Run("directory is not a file", func(t *testing.T) {
		dir := t.TempDir()
		key, err := LoadHMAC(dir)
		require.NoError(t, err)
		require.Equal(t, []byte(dir), key)
	})
}
