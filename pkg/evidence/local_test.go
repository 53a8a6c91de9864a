package evidence

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	violationID := uuid.New().String()
	url, err := store.Save(context.Background(), violationID, "tear.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"+violationID+"/"), "url should be scoped to the violation: %s", url)
	assert.True(t, strings.HasSuffix(url, "-tear.jpg"))

	key := strings.TrimPrefix(url, "/uploads/")
	content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_SaveStripsClientPaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), uuid.New().String(), "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, url, "..")
	assert.True(t, strings.HasSuffix(url, "-passwd"))
}

func TestLocalStore_DeleteUnknownURLIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "/uploads/missing/file.jpg"))
	assert.NoError(t, store.Delete(context.Background(), "https://elsewhere.example/file.jpg"))
}
