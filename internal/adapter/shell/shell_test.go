package shell

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocal_OpenFolderCreatesDirectory(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	sh := NewLocal(discard(), base, "")

	res := sh.OpenFolder(context.Background(), "Drawings")

	require.True(t, res.OK, res.Error)
	assert.Equal(t, filepath.Join(base, "Drawings"), res.Path)
	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocal_OpenFolderRejectsEscapes(t *testing.T) {
	t.Parallel()
	sh := NewLocal(discard(), t.TempDir(), "")

	for _, name := range []string{"../outside", "/etc", ""} {
		res := sh.OpenFolder(context.Background(), name)
		assert.False(t, res.OK, name)
		assert.NotEmpty(t, res.Error, name)
	}
}

func TestLocal_OpenerFailureIsReported(t *testing.T) {
	t.Parallel()
	sh := NewLocal(discard(), t.TempDir(), "siteops-no-such-opener-binary")

	res := sh.OpenFolder(context.Background(), "Drawings")

	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
}

func TestUnavailable(t *testing.T) {
	t.Parallel()
	var sh Unavailable

	assert.False(t, sh.OpenFolder(context.Background(), "x").OK)
	assert.Equal(t, unavailableMsg, sh.Notify(context.Background(), "t", "b").Error)
}
