package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutOpenDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Put(ctx, strings.NewReader("hello"), "matches/match_1/a.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/matches/match_1/a.txt", url)

	rc, err := store.Open(ctx, "matches/match_1/a.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, store.Delete(ctx, "matches/match_1/a.txt"))
	require.NoError(t, store.Delete(ctx, "matches/match_1/a.txt"))

	_, err = store.Open(ctx, "matches/match_1/a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_TraversalStaysInside(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base, "http://x/uploads")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://x/uploads/etc/passwd", url)

	_, err = store.Put(context.Background(), strings.NewReader("x"), "", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestUploadOptions_Allows(t *testing.T) {
	assert.True(t, MessageAttachmentOptions.Allows("image/png"))
	assert.False(t, MessageAttachmentOptions.Allows("application/x-msdownload"))
	assert.True(t, UploadOptions{}.Allows("anything/at-all"))
}
