// Package store provides database access methods for all corpsite
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"corpsite/internal/slug"
)

// ensureSlug derives a slug from title and checks it against the given
// table's slug column. On collision the base-36 timestamp suffix is
// appended once; a further collision is not retried and surfaces as a
// unique-constraint error on insert. The table name is always a
// compile-time literal supplied by the calling store.
func ensureSlug(db *sql.DB, table, title string) (string, error) {
	base := slug.Generate(title)
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE slug = $1)`, base,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("check slug: %w", err)
	}
	if !exists {
		return base, nil
	}
	return slug.WithSuffix(base), nil
}

// Page holds pagination parameters for list queries.
type Page struct {
	Number int // 1-based page number
	Size   int // rows per page
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Normalize clamps the page parameters to sane bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// LimitOffset returns the SQL LIMIT and OFFSET for the page.
func (p Page) LimitOffset() (limit, offset int) {
	p = p.Normalize()
	return p.Size, (p.Number - 1) * p.Size
}

// TotalPages returns the page count for a total row count at the page's size.
func (p Page) TotalPages(total int) int {
	p = p.Normalize()
	pages := (total + p.Size - 1) / p.Size
	if pages < 1 {
		pages = 1
	}
	return pages
}
