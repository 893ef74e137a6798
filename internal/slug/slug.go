// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nonAlphanumeric matches any run of characters that isn't a lowercase
// letter or digit. Each run collapses to a single hyphen.
var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string.
// Example: "Senior Backend Engineer!" → "senior-backend-engineer"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// WithSuffix appends a base-36 timestamp to a slug that collided with an
// existing row. The suffix is applied once; a second collision is left to
// the database unique constraint.
func WithSuffix(base string) string {
	return WithSuffixAt(base, time.Now())
}

// WithSuffixAt is WithSuffix with an explicit timestamp, for tests.
func WithSuffixAt(base string, t time.Time) string {
	return base + "-" + strconv.FormatInt(t.Unix(), 36)
}
