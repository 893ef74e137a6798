// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus represents the publishing state of a portfolio project.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "draft"
	ProjectStatusPublished ProjectStatus = "published"
)

// ValidProjectStatus reports whether the given status is known.
func ValidProjectStatus(s ProjectStatus) bool {
	return s == ProjectStatusDraft || s == ProjectStatusPublished
}

// CanTransitionProject reports whether a project may move between statuses.
// Projects toggle freely between draft and published.
func CanTransitionProject(from, to ProjectStatus) bool {
	if !ValidProjectStatus(from) || !ValidProjectStatus(to) {
		return false
	}
	return from != to
}

// Project represents a portfolio case study.
type Project struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Slug            string        `json:"slug"`
	Description     *string       `json:"description,omitempty"`
	Content         string        `json:"content"`
	ClientName      *string       `json:"client_name,omitempty"`
	Category        *string       `json:"category,omitempty"`
	Technologies    []string      `json:"technologies"`
	LiveURL         *string       `json:"live_url,omitempty"`
	CaseStudyURL    *string       `json:"case_study_url,omitempty"`
	Status          ProjectStatus `json:"status"`
	PublishedAt     *time.Time    `json:"published_at,omitempty"`
	MetaTitle       *string       `json:"meta_title,omitempty"`
	MetaDescription *string       `json:"meta_description,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsPublished returns true if the project is in published status.
func (p *Project) IsPublished() bool {
	return p.Status == ProjectStatusPublished
}
