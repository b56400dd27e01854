package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// LocalStorage reads and writes PNG files on the local filesystem.
// Writes go through a temp file and a rename so a crash never leaves a
// half-written PNG behind, and a sidecar flock serializes concurrent
// writers of the same path.
type LocalStorage struct{}

func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(key)
	if err != nil {
		return nil, fmt.Errorf("unable to read file <%s>: %w", key, err)
	}
	return data, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, data []byte) error {
	lockFilePath := fmt.Sprintf("%s.lock", key)
	fileLock := flock.New(lockFilePath)

	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("unable to acquire file lock for <%s>: %w", key, err)
	}
	defer fileLock.Unlock()
	defer os.Remove(lockFilePath)

	tmpPath := fmt.Sprintf("%s.%s.tmp", key, uuid.New().String()[:6])
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("unable to write temp file <%s>: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, key); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("unable to move temp file into place: %w", err)
	}

	return nil
}
