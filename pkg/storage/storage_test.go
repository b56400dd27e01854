package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStorageResolvesLocal(t *testing.T) {
	store, key, err := NewStorage("/tmp/images/test.png", StorageOpts{})
	require.NoError(t, err)
	require.IsType(t, &LocalStorage{}, store)
	require.Equal(t, "/tmp/images/test.png", key)
}

func TestNewStorageRejectsBadS3Path(t *testing.T) {
	for _, path := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key"} {
		_, _, err := NewStorage(path, StorageOpts{})
		require.Error(t, err, path)
	}
}

func TestLocalStoragePutGet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.png")

	s := NewLocalStorage()
	payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x00, 0xff}

	require.NoError(t, s.Put(ctx, path, payload))

	got, err := s.Get(ctx, path)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestLocalStoragePutLeavesNoDebris(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")

	s := NewLocalStorage()
	require.NoError(t, s.Put(ctx, path, []byte("data")))
	require.NoError(t, s.Put(ctx, path, []byte("data again")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "test.png", entries[0].Name())
}

func TestLocalStorageGetMissing(t *testing.T) {
	s := NewLocalStorage()
	_, err := s.Get(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
