// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"corpsite/internal/models"
)

// AuthorStore manages blog author bylines in the database.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore returns a new AuthorStore.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

const authorColumns = `id, name, slug, bio, avatar_url, user_id, active, created_at, updated_at`

// scanAuthor scans a row into an Author struct.
func scanAuthor(scanner interface{ Scan(...any) error }) (*models.Author, error) {
	var a models.Author
	err := scanner.Scan(
		&a.ID, &a.Name, &a.Slug, &a.Bio, &a.AvatarURL,
		&a.UserID, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all authors ordered by name.
func (s *AuthorStore) List() ([]models.Author, error) {
	rows, err := s.db.Query(`SELECT ` + authorColumns + ` FROM blog_authors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var items []models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an author by ID. Returns nil if not found.
func (s *AuthorStore) FindByID(id uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`SELECT `+authorColumns+` FROM blog_authors WHERE id = $1`, id)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// FindByUserID retrieves the author linked to a user. Returns nil if the
// user has no author row yet.
func (s *AuthorStore) FindByUserID(userID uuid.UUID) (*models.Author, error) {
	row := s.db.QueryRow(`SELECT `+authorColumns+` FROM blog_authors WHERE user_id = $1`, userID)
	a, err := scanAuthor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by user id: %w", err)
	}
	return a, nil
}

// Create inserts a new author and returns it.
func (s *AuthorStore) Create(a *models.Author) (*models.Author, error) {
	slugVal, err := ensureSlug(s.db, "blog_authors", a.Name)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO blog_authors (name, slug, bio, avatar_url, user_id, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+authorColumns,
		a.Name, slugVal, a.Bio, a.AvatarURL, a.UserID, a.Active,
	)
	result, err := scanAuthor(row)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return result, nil
}

// EnsureForUser returns the author row linked to the given user, creating
// one from the user's display name if it doesn't exist yet. The operation
// is idempotent: calling it repeatedly for the same user returns the same
// row. Post creation calls this so every dashboard user gets a byline the
// first time they publish.
func (s *AuthorStore) EnsureForUser(user *models.User) (*models.Author, error) {
	existing, err := s.FindByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return s.Create(&models.Author{
		Name:      user.DisplayName,
		AvatarURL: user.AvatarURL,
		UserID:    &user.ID,
		Active:    true,
	})
}

// Apply runs a partial update against the blog_authors table.
func (s *AuthorStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("blog_authors", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch author: %w", err)
	}
	return nil
}

// Delete removes an author by ID. Fails if posts still reference it.
func (s *AuthorStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blog_authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}
