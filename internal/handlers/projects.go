package handlers

import (
	"encoding/json"
	"net/http"

	"corpsite/internal/metrics"
	"corpsite/internal/models"
	"corpsite/internal/store"
)

// Projects groups the portfolio project admin endpoints.
type Projects struct {
	projects *store.ProjectStore
}

// NewProjects creates a new Projects handler group.
func NewProjects(projects *store.ProjectStore) *Projects {
	return &Projects{projects: projects}
}

// List returns projects with optional status, category, and search filters.
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryPage(r)
	filter := store.ProjectFilter{
		Status:   models.ProjectStatus(q.Get("status")),
		Category: q.Get("category"),
		Search:   q.Get("q"),
		Page:     page,
	}
	if filter.Status != "" && !models.ValidProjectStatus(filter.Status) {
		respondError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	projects, total, err := h.projects.List(filter)
	if err != nil {
		respondInternal(w, "list projects failed", err)
		return
	}
	respondList(w, projects, total, page)
}

// Get returns a single project by ID.
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondData(w, http.StatusOK, project)
}

type projectRequest struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Content         string   `json:"content"`
	ClientName      *string  `json:"client_name"`
	Category        *string  `json:"category"`
	Technologies    []string `json:"technologies"`
	LiveURL         *string  `json:"live_url"`
	CaseStudyURL    *string  `json:"case_study_url"`
	Status          string   `json:"status"`
	MetaTitle       *string  `json:"meta_title"`
	MetaDescription *string  `json:"meta_description"`
}

func (req *projectRequest) validate() string {
	if msg := validateTitle(req.Title); msg != "" {
		return msg
	}
	if msg := validateBody(req.Content, "", deref(req.MetaTitle), deref(req.MetaDescription)); msg != "" {
		return msg
	}
	if msg := validateTechnologies(req.Technologies); msg != "" {
		return msg
	}
	return ""
}

// Create inserts a new project.
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	status := models.ProjectStatus(req.Status)
	if status == "" {
		status = models.ProjectStatusDraft
	}
	if !models.ValidProjectStatus(status) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	project, err := h.projects.Create(&models.Project{
		Title:           req.Title,
		Description:     req.Description,
		Content:         req.Content,
		ClientName:      req.ClientName,
		Category:        req.Category,
		Technologies:    req.Technologies,
		LiveURL:         req.LiveURL,
		CaseStudyURL:    req.CaseStudyURL,
		Status:          status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	})
	if err != nil {
		respondInternal(w, "create project failed", err)
		return
	}
	if status == models.ProjectStatusPublished {
		metrics.ObservePublish("project")
	}
	respondData(w, http.StatusCreated, project)
}

type patchProjectRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Content         *string   `json:"content"`
	ClientName      *string   `json:"client_name"`
	Category        *string   `json:"category"`
	Technologies    *[]string `json:"technologies"`
	LiveURL         *string   `json:"live_url"`
	CaseStudyURL    *string   `json:"case_study_url"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
}

// Update applies a partial update. Status moves through SetStatus.
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	existing, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "find project failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var req patchProjectRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.NewPatch()
	if req.Title != nil {
		if msg := validateTitle(*req.Title); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("title", *req.Title)
	}
	if req.Description != nil {
		patch.Set("description", *req.Description)
	}
	if req.Content != nil {
		patch.Set("content", *req.Content)
	}
	if req.ClientName != nil {
		patch.Set("client_name", *req.ClientName)
	}
	if req.Category != nil {
		patch.Set("category", *req.Category)
	}
	if req.Technologies != nil {
		if msg := validateTechnologies(*req.Technologies); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		encoded, err := json.Marshal(*req.Technologies)
		if err != nil {
			respondInternal(w, "encode technologies failed", err)
			return
		}
		patch.Set("technologies", encoded)
	}
	if req.LiveURL != nil {
		patch.Set("live_url", *req.LiveURL)
	}
	if req.CaseStudyURL != nil {
		patch.Set("case_study_url", *req.CaseStudyURL)
	}
	if req.MetaTitle != nil {
		patch.Set("meta_title", *req.MetaTitle)
	}
	if req.MetaDescription != nil {
		patch.Set("meta_description", *req.MetaDescription)
	}

	if err := h.projects.Apply(id, patch); err != nil {
		respondInternal(w, "patch project failed", err)
		return
	}

	updated, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "reload project failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// SetStatus toggles a project between draft and published.
func (h *Projects) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	to := models.ProjectStatus(req.Status)
	if !models.ValidProjectStatus(to) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	project, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if !models.CanTransitionProject(project.Status, to) {
		respondError(w, http.StatusBadRequest,
			"cannot move project from "+string(project.Status)+" to "+string(to))
		return
	}

	if err := h.projects.SetStatus(id, to); err != nil {
		respondInternal(w, "set project status failed", err)
		return
	}
	if to == models.ProjectStatusPublished {
		metrics.ObservePublish("project")
	}

	updated, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "reload project failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete removes a project permanently.
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := h.projects.FindByID(id)
	if err != nil {
		respondInternal(w, "find project failed", err)
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if err := h.projects.Delete(id); err != nil {
		respondInternal(w, "delete project failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "project deleted")
}
