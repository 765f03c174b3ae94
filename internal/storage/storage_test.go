package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/job-board/internal/config"
)

func TestLocalStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key, err := store.Save(ctx, "My CV.PDF", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4", string(body))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.NoError(t, store.Delete(ctx, key), "deleting twice is harmless")
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", `..\boot.ini`, ".hidden"} {
		_, err := store.Open(context.Background(), key)
		assert.ErrorIs(t, err, ErrObjectNotFound, key)
	}
}

func TestNewKeysAreUnique(t *testing.T) {
	a, b := NewKey("cv.pdf"), NewKey("cv.pdf")
	assert.NotEqual(t, a, b)
	assert.True(t, validKey(a))
}

func TestNewPicksDriver(t *testing.T) {
	log, _ := test.NewNullLogger()

	s, err := New(context.Background(), config.StorageConfig{Driver: "local", LocalDir: t.TempDir()}, log)
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)

	_, err = New(context.Background(), config.StorageConfig{Driver: "ftp"}, log)
	assert.Error(t, err)
}
