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

// JobStore handles all job listing database operations.
type JobStore struct {
	db *sql.DB
}

// NewJobStore creates a new JobStore with the given database connection.
func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

// jobSelect joins department and location onto each job row.
const jobSelect = `
	SELECT j.id, j.title, j.slug, j.description, j.responsibilities, j.requirements,
	       j.benefits, j.department_id, j.location_id, j.employment_type, j.level,
	       j.apply_url, j.status, j.published_at, j.meta_title, j.meta_description,
	       j.created_at, j.updated_at,
	       d.name, d.slug, l.name, l.slug, l.remote
	FROM jobs j
	JOIN departments d ON d.id = j.department_id
	JOIN locations l ON l.id = j.location_id`

func scanJob(scanner interface{ Scan(...any) error }) (*models.Job, error) {
	var (
		j                models.Job
		depName, depSlug string
		locName, locSlug string
		locRemote        bool
	)
	err := scanner.Scan(
		&j.ID, &j.Title, &j.Slug, &j.Description, &j.Responsibilities, &j.Requirements,
		&j.Benefits, &j.DepartmentID, &j.LocationID, &j.EmploymentType, &j.Level,
		&j.ApplyURL, &j.Status, &j.PublishedAt, &j.MetaTitle, &j.MetaDescription,
		&j.CreatedAt, &j.UpdatedAt,
		&depName, &depSlug, &locName, &locSlug, &locRemote,
	)
	if err != nil {
		return nil, err
	}
	j.Department = &models.DepartmentRef{ID: j.DepartmentID, Name: depName, Slug: depSlug}
	j.Location = &models.LocationRef{ID: j.LocationID, Name: locName, Slug: locSlug, Remote: locRemote}
	return &j, nil
}

// JobFilter narrows List results.
type JobFilter struct {
	Status         models.JobStatus
	DepartmentID   *uuid.UUID
	LocationID     *uuid.UUID
	EmploymentType models.EmploymentType
	Level          models.JobLevel
	Search         string
	Page           Page
}

// List returns jobs matching the filter, newest first, with the total
// row count for pagination headers.
func (s *JobStore) List(f JobFilter) ([]models.Job, int, error) {
	where := "WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND j.status = $%d", len(args))
	}
	if f.DepartmentID != nil {
		args = append(args, *f.DepartmentID)
		where += fmt.Sprintf(" AND j.department_id = $%d", len(args))
	}
	if f.LocationID != nil {
		args = append(args, *f.LocationID)
		where += fmt.Sprintf(" AND j.location_id = $%d", len(args))
	}
	if f.EmploymentType != "" {
		args = append(args, f.EmploymentType)
		where += fmt.Sprintf(" AND j.employment_type = $%d", len(args))
	}
	if f.Level != "" {
		args = append(args, f.Level)
		where += fmt.Sprintf(" AND j.level = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND j.title ILIKE $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs j `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	limit, offset := f.Page.LimitOffset()
	args = append(args, limit, offset)
	rows, err := s.db.Query(
		jobSelect+" "+where+
			fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, total, rows.Err()
}

// ListOpen returns open jobs ordered by publish date descending. Used by
// the public API.
func (s *JobStore) ListOpen(page Page) ([]models.Job, int, error) {
	where := "WHERE j.status = 'open'"
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs j ` + where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count open jobs: %w", err)
	}
	limit, offset := page.LimitOffset()
	rows, err := s.db.Query(
		jobSelect+" "+where+" ORDER BY j.published_at DESC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list open jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, total, rows.Err()
}

// FindByID retrieves a job by its UUID. Returns nil if not found.
func (s *JobStore) FindByID(id uuid.UUID) (*models.Job, error) {
	row := s.db.QueryRow(jobSelect+` WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	return j, nil
}

// FindOpenBySlug retrieves an open job by its slug for the public API.
func (s *JobStore) FindOpenBySlug(slug string) (*models.Job, error) {
	row := s.db.QueryRow(jobSelect+` WHERE j.slug = $1 AND j.status = 'open'`, slug)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by slug: %w", err)
	}
	return j, nil
}

// Create inserts a new job listing and returns it. Opening directly on
// create stamps published_at.
func (s *JobStore) Create(j *models.Job) (*models.Job, error) {
	slugVal, err := ensureSlug(s.db, "jobs", j.Title)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO jobs (title, slug, description, responsibilities, requirements,
		                  benefits, department_id, location_id, employment_type, level,
		                  apply_url, status, published_at, meta_title, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        CASE WHEN $12 = 'open' THEN NOW() ELSE NULL END, $13, $14)
		RETURNING id
	`, j.Title, slugVal, j.Description, j.Responsibilities, j.Requirements,
		j.Benefits, j.DepartmentID, j.LocationID, j.EmploymentType, j.Level,
		j.ApplyURL, j.Status, j.MetaTitle, j.MetaDescription,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return s.FindByID(id)
}

// Apply runs a partial update against the jobs table.
func (s *JobStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("jobs", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch job: %w", err)
	}
	return nil
}

// SetStatus moves a job to a new status. Unlike posts, reopening a job
// keeps its original publish date: published_at is only stamped the first
// time the job enters open. Transition legality is checked by the caller.
func (s *JobStore) SetStatus(id uuid.UUID, to models.JobStatus) error {
	_, err := s.db.Exec(`
		UPDATE jobs SET
			status = $1,
			published_at = CASE WHEN $1 = 'open' THEN COALESCE(published_at, NOW()) ELSE published_at END,
			updated_at = NOW()
		WHERE id = $2
	`, to, id)
	if err != nil {
		return fmt.Errorf("set job status: %w", err)
	}
	return nil
}

// Delete removes a job by ID.
func (s *JobStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
