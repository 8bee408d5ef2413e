package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalPutOpenDelete(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := "fake image bytes"

	require.NoError(t, store.Put(ctx, "pic.png", strings.NewReader(content), int64(len(content)), "image/png"))

	r, err := store.Open(ctx, "pic.png")
	require.NoError(t, err)
	defer r.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, content, string(got))

	require.NoError(t, store.Delete(ctx, "pic.png"))

	_, err = store.Open(ctx, "pic.png")
	require.Error(t, err)

	// Deleting an absent object is not an error.
	require.NoError(t, store.Delete(ctx, "pic.png"))
}

func TestLocalURL(t *testing.T) {
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "/media/pic.jpg", store.URL("pic.jpg"))
}
