// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBackend stores media on local disk under a base directory. Files
// are served by the API under /uploads/.
type LocalBackend struct {
	baseDir string
	baseURL string
}

// NewLocal creates a local disk backend rooted at baseDir. The directory
// is created if it does not exist.
func NewLocal(baseDir, baseURL string) (*LocalBackend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalBackend{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the object under the base directory, creating any folder
// component of the key. Keys are cleaned so they cannot escape baseDir.
func (b *LocalBackend) Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	path, err := b.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media folder: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write media file: %w", err)
	}
	return b.baseURL + "/" + key, nil
}

// Delete removes the file if it exists.
func (b *LocalBackend) Delete(ctx context.Context, key string) error {
	path, err := b.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete media file: %w", err)
	}
	return nil
}

// Name identifies the backend in logs and metrics.
func (b *LocalBackend) Name() string { return "local" }

// Dir returns the base directory, used to mount the static file server.
func (b *LocalBackend) Dir() string { return b.baseDir }

// safePath resolves a key to an absolute path inside baseDir.
func (b *LocalBackend) safePath(key string) (string, error) {
	cleaned := filepath.Clean("/" + key)
	if cleaned == "/" {
		return "", fmt.Errorf("empty media key")
	}
	return filepath.Join(b.baseDir, cleaned), nil
}
