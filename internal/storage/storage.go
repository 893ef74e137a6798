// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded media bytes. Two backends exist: an
// S3-compatible bucket for production and a local uploads directory for
// development. Handlers depend on the Backend interface only.
package storage

import (
	"context"
	"io"
)

// Backend stores and removes media objects by key.
type Backend interface {
	// Save writes the object and returns the publicly reachable URL.
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
	// Name identifies the backend in logs and metrics.
	Name() string
}
