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

// LocationStore manages office locations in the database.
type LocationStore struct {
	db *sql.DB
}

// NewLocationStore returns a new LocationStore.
func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

const locationColumns = `id, name, slug, city, country, remote, active, created_at, updated_at`

func scanLocation(scanner interface{ Scan(...any) error }) (*models.Location, error) {
	var l models.Location
	err := scanner.Scan(
		&l.ID, &l.Name, &l.Slug, &l.City, &l.Country,
		&l.Remote, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// List returns all locations ordered by name.
func (s *LocationStore) List() ([]models.Location, error) {
	rows, err := s.db.Query(`SELECT ` + locationColumns + ` FROM locations ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var items []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		items = append(items, *l)
	}
	return items, rows.Err()
}

// FindByID retrieves a location by ID. Returns nil if not found.
func (s *LocationStore) FindByID(id uuid.UUID) (*models.Location, error) {
	row := s.db.QueryRow(`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location by id: %w", err)
	}
	return l, nil
}

// Create inserts a new location and returns it.
func (s *LocationStore) Create(l *models.Location) (*models.Location, error) {
	slugVal, err := ensureSlug(s.db, "locations", l.Name)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO locations (name, slug, city, country, remote, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+locationColumns,
		l.Name, slugVal, l.City, l.Country, l.Remote, l.Active,
	)
	result, err := scanLocation(row)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}
	return result, nil
}

// Apply runs a partial update against the locations table.
func (s *LocationStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("locations", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch location: %w", err)
	}
	return nil
}

// Delete removes a location by ID. Fails if jobs still reference it.
func (s *LocationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
