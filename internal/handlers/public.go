// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"corpsite/internal/store"
)

// Public serves the unauthenticated read API the marketing site front
// end consumes. Only published posts, open jobs, and published projects
// are visible here; drafts and archived content never leak.
type Public struct {
	posts    *store.PostStore
	jobs     *store.JobStore
	projects *store.ProjectStore
}

// NewPublic creates a new Public handler group.
func NewPublic(posts *store.PostStore, jobs *store.JobStore, projects *store.ProjectStore) *Public {
	return &Public{posts: posts, jobs: jobs, projects: projects}
}

func (h *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)
	posts, total, err := h.posts.ListPublished(page)
	if err != nil {
		respondInternal(w, "list published posts failed", err)
		return
	}
	respondList(w, posts, total, page)
}

func (h *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.posts.FindPublishedBySlug(slug)
	if err != nil {
		respondInternal(w, "find published post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondData(w, http.StatusOK, post)
}

func (h *Public) ListJobs(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)
	jobs, total, err := h.jobs.ListOpen(page)
	if err != nil {
		respondInternal(w, "list open jobs failed", err)
		return
	}
	respondList(w, jobs, total, page)
}

func (h *Public) GetJob(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	job, err := h.jobs.FindOpenBySlug(slug)
	if err != nil {
		respondInternal(w, "find open job failed", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondData(w, http.StatusOK, job)
}

func (h *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	page := queryPage(r)
	projects, total, err := h.projects.ListPublished(page)
	if err != nil {
		respondInternal(w, "list published projects failed", err)
		return
	}
	respondList(w, projects, total, page)
}

func (h *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	project, err := h.projects.FindPublishedBySlug(slug)
	if err != nil {
		respondInternal(w, "find published project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondData(w, http.StatusOK, project)
}
