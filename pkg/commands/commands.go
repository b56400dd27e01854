package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/beam-cloud/stego/pkg/png"
	"github.com/beam-cloud/stego/pkg/storage"
)

// SetLogLevel configures the logging verbosity for the CLI.
// Valid levels: "debug", "info", "warn", "error", "disabled"
func SetLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "disabled", "none", "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return fmt.Errorf("invalid log level %q: must be one of: debug, info, warn, error, disabled", level)
	}
	return nil
}

// fetchPng resolves path to a storage backend (local or s3://) and
// parses the object it names.
func fetchPng(ctx context.Context, path string) (*png.Png, error) {
	store, key, err := storage.NewStorage(path, storage.StorageOpts{})
	if err != nil {
		return nil, err
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	p, err := png.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PNG <%s>: %w", path, err)
	}

	return p, nil
}

// writePng serializes p and stores it at path, which may live on a
// different backend than the input.
func writePng(ctx context.Context, path string, p *png.Png) error {
	store, key, err := storage.NewStorage(path, storage.StorageOpts{})
	if err != nil {
		return err
	}

	return store.Put(ctx, key, p.Bytes())
}
