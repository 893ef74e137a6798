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

// DepartmentStore manages hiring departments in the database.
type DepartmentStore struct {
	db *sql.DB
}

// NewDepartmentStore returns a new DepartmentStore.
func NewDepartmentStore(db *sql.DB) *DepartmentStore {
	return &DepartmentStore{db: db}
}

const departmentColumns = `id, name, slug, active, created_at, updated_at`

func scanDepartment(scanner interface{ Scan(...any) error }) (*models.Department, error) {
	var d models.Department
	err := scanner.Scan(&d.ID, &d.Name, &d.Slug, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all departments ordered by name, with job counts.
func (s *DepartmentStore) List() ([]models.Department, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.name, d.slug, d.active, d.created_at, d.updated_at,
		       COUNT(j.id) AS job_count
		FROM departments d
		LEFT JOIN jobs j ON j.department_id = d.id
		GROUP BY d.id
		ORDER BY d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var items []models.Department
	for rows.Next() {
		var d models.Department
		err := rows.Scan(&d.ID, &d.Name, &d.Slug, &d.Active, &d.CreatedAt, &d.UpdatedAt, &d.JobCount)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// FindByID retrieves a department by ID. Returns nil if not found.
func (s *DepartmentStore) FindByID(id uuid.UUID) (*models.Department, error) {
	row := s.db.QueryRow(`SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id)
	d, err := scanDepartment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find department by id: %w", err)
	}
	return d, nil
}

// Create inserts a new department and returns it.
func (s *DepartmentStore) Create(d *models.Department) (*models.Department, error) {
	slugVal, err := ensureSlug(s.db, "departments", d.Name)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRow(`
		INSERT INTO departments (name, slug, active)
		VALUES ($1, $2, $3)
		RETURNING `+departmentColumns,
		d.Name, slugVal, d.Active,
	)
	result, err := scanDepartment(row)
	if err != nil {
		return nil, fmt.Errorf("create department: %w", err)
	}
	return result, nil
}

// Apply runs a partial update against the departments table.
func (s *DepartmentStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("departments", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch department: %w", err)
	}
	return nil
}

// Delete removes a department by ID. Fails if jobs still reference it.
func (s *DepartmentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	return nil
}
