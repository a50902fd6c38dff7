package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_WriteThenOpen(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "session.xml")
	provider := NewOSFileSystem()

	require.NoError(t, provider.WriteFile(target, []byte("<session/>")))

	rc, err := provider.Open(target)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "<session/>", string(data))
}

func TestOSFileSystem_OpenDirectory(t *testing.T) {
	provider := NewOSFileSystem()

	_, err := provider.Open(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "is a directory")
}

func TestOSFileSystem_OpenMissing(t *testing.T) {
	provider := NewOSFileSystem()

	_, err := provider.Open(filepath.Join(t.TempDir(), "missing.tar"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
