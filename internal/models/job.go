// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the lifecycle state of a job listing.
type JobStatus string

const (
	JobStatusDraft    JobStatus = "draft"
	JobStatusOpen     JobStatus = "open"
	JobStatusClosed   JobStatus = "closed"
	JobStatusArchived JobStatus = "archived"
)

// ValidJobStatus reports whether the given status is one of the known states.
func ValidJobStatus(s JobStatus) bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed, JobStatusArchived:
		return true
	}
	return false
}

// jobTransitions enumerates the allowed job status moves.
var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusDraft:    {JobStatusOpen},
	JobStatusOpen:     {JobStatusClosed},
	JobStatusClosed:   {JobStatusOpen, JobStatusArchived},
	JobStatusArchived: {JobStatusDraft},
}

// CanTransitionJob reports whether a job may move from one status to another.
func CanTransitionJob(from, to JobStatus) bool {
	for _, allowed := range jobTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EmploymentType classifies a job listing's contract type.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// ValidEmploymentType reports whether the given type is known.
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// JobLevel classifies a job listing's seniority.
type JobLevel string

const (
	LevelJunior JobLevel = "junior"
	LevelMid    JobLevel = "mid"
	LevelSenior JobLevel = "senior"
	LevelLead   JobLevel = "lead"
)

// ValidJobLevel reports whether the given level is known.
func ValidJobLevel(l JobLevel) bool {
	switch l {
	case LevelJunior, LevelMid, LevelSenior, LevelLead:
		return true
	}
	return false
}

// Job represents a career listing with its department and location relations.
type Job struct {
	ID               uuid.UUID      `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description"`
	Responsibilities *string        `json:"responsibilities,omitempty"`
	Requirements     *string        `json:"requirements,omitempty"`
	Benefits         *string        `json:"benefits,omitempty"`
	DepartmentID     uuid.UUID      `json:"department_id"`
	LocationID       uuid.UUID      `json:"location_id"`
	EmploymentType   EmploymentType `json:"employment_type"`
	Level            JobLevel       `json:"level"`
	ApplyURL         *string        `json:"apply_url,omitempty"`
	Status           JobStatus      `json:"status"`
	PublishedAt      *time.Time     `json:"published_at,omitempty"`
	MetaTitle        *string        `json:"meta_title,omitempty"`
	MetaDescription  *string        `json:"meta_description,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Denormalized relation names populated by list/find queries.
	Department *DepartmentRef `json:"department,omitempty"`
	Location   *LocationRef   `json:"location,omitempty"`
}

// IsOpen returns true if the job is accepting applications.
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}

// DepartmentRef is the flattened department relation returned on job rows.
type DepartmentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// LocationRef is the flattened location relation returned on job rows.
type LocationRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
	Remote bool      `json:"remote"`
}
