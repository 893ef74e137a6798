// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"corpsite/internal/models"
)

// ProjectStore handles all portfolio project database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, title, slug, description, content, client_name,
	category, technologies, live_url, case_study_url, status, published_at,
	meta_title, meta_description, created_at, updated_at`

// scanProject scans a project row, decoding the technologies JSONB array.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var (
		p    models.Project
		tech []byte
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.Content, &p.ClientName,
		&p.Category, &tech, &p.LiveURL, &p.CaseStudyURL, &p.Status, &p.PublishedAt,
		&p.MetaTitle, &p.MetaDescription, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tech, &p.Technologies); err != nil {
		return nil, fmt.Errorf("decode technologies: %w", err)
	}
	return &p, nil
}

// ProjectFilter narrows List results.
type ProjectFilter struct {
	Status   models.ProjectStatus
	Category string
	Search   string
	Page     Page
}

// List returns projects matching the filter, newest first, with the total
// row count for pagination headers.
func (s *ProjectStore) List(f ProjectFilter) ([]models.Project, int, error) {
	where := "WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (title ILIKE $%d OR client_name ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	limit, offset := f.Page.LimitOffset()
	args = append(args, limit, offset)
	rows, err := s.db.Query(
		`SELECT `+projectColumns+` FROM projects `+where+
			fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

// ListPublished returns published projects for the public API, newest
// publish date first.
func (s *ProjectStore) ListPublished(page Page) ([]models.Project, int, error) {
	where := "WHERE status = 'published'"
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects ` + where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published projects: %w", err)
	}
	limit, offset := page.LimitOffset()
	rows, err := s.db.Query(
		`SELECT `+projectColumns+` FROM projects `+where+` ORDER BY published_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list published projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, total, rows.Err()
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published project by slug for the public API.
func (s *ProjectStore) FindPublishedBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = $1 AND status = 'published'`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new project and returns it. Creating directly in
// published status stamps published_at.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	slugVal, err := ensureSlug(s.db, "projects", p.Title)
	if err != nil {
		return nil, err
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	tech, err := json.Marshal(p.Technologies)
	if err != nil {
		return nil, fmt.Errorf("encode technologies: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO projects (title, slug, description, content, client_name,
		                      category, technologies, live_url, case_study_url, status,
		                      published_at, meta_title, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        CASE WHEN $10 = 'published' THEN NOW() ELSE NULL END, $11, $12)
		RETURNING id
	`, p.Title, slugVal, p.Description, p.Content, p.ClientName,
		p.Category, tech, p.LiveURL, p.CaseStudyURL, p.Status,
		p.MetaTitle, p.MetaDescription,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return s.FindByID(id)
}

// Apply runs a partial update against the projects table. Callers patching
// technologies must pass the JSON-encoded value.
func (s *ProjectStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("projects", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch project: %w", err)
	}
	return nil
}

// SetStatus toggles a project between draft and published. First publish
// stamps published_at; unpublishing keeps it as a record of the last run.
func (s *ProjectStore) SetStatus(id uuid.UUID, to models.ProjectStatus) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			status = $1,
			published_at = CASE WHEN $1 = 'published' THEN COALESCE(published_at, NOW()) ELSE published_at END,
			updated_at = NOW()
		WHERE id = $2
	`, to, id)
	if err != nil {
		return fmt.Errorf("set project status: %w", err)
	}
	return nil
}

// Delete removes a project by ID.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
