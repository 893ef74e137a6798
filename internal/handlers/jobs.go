package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"corpsite/internal/metrics"
	"corpsite/internal/models"
	"corpsite/internal/store"
)

// Jobs groups the career listing admin endpoints.
type Jobs struct {
	jobs *store.JobStore
}

// NewJobs creates a new Jobs handler group.
func NewJobs(jobs *store.JobStore) *Jobs {
	return &Jobs{jobs: jobs}
}

// List returns jobs with optional status, department, location,
// employment type, level, and search filters.
func (h *Jobs) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryPage(r)
	filter := store.JobFilter{
		Status:         models.JobStatus(q.Get("status")),
		DepartmentID:   queryUUID(r, "department_id"),
		LocationID:     queryUUID(r, "location_id"),
		EmploymentType: models.EmploymentType(q.Get("employment_type")),
		Level:          models.JobLevel(q.Get("level")),
		Search:         q.Get("q"),
		Page:           page,
	}
	if filter.Status != "" && !models.ValidJobStatus(filter.Status) {
		respondError(w, http.StatusBadRequest, "unknown status filter")
		return
	}
	if filter.EmploymentType != "" && !models.ValidEmploymentType(filter.EmploymentType) {
		respondError(w, http.StatusBadRequest, "unknown employment type filter")
		return
	}
	if filter.Level != "" && !models.ValidJobLevel(filter.Level) {
		respondError(w, http.StatusBadRequest, "unknown level filter")
		return
	}

	jobs, total, err := h.jobs.List(filter)
	if err != nil {
		respondInternal(w, "list jobs failed", err)
		return
	}
	respondList(w, jobs, total, page)
}

// Get returns a single job by ID.
func (h *Jobs) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "find job failed", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	respondData(w, http.StatusOK, job)
}

type jobRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Responsibilities *string   `json:"responsibilities"`
	Requirements     *string   `json:"requirements"`
	Benefits         *string   `json:"benefits"`
	DepartmentID     uuid.UUID `json:"department_id"`
	LocationID       uuid.UUID `json:"location_id"`
	EmploymentType   string    `json:"employment_type"`
	Level            string    `json:"level"`
	ApplyURL         *string   `json:"apply_url"`
	Status           string    `json:"status"`
	MetaTitle        *string   `json:"meta_title"`
	MetaDescription  *string   `json:"meta_description"`
}

func (req *jobRequest) validate() string {
	if msg := validateTitle(req.Title); msg != "" {
		return msg
	}
	if msg := validateBody(req.Description, "", deref(req.MetaTitle), deref(req.MetaDescription)); msg != "" {
		return msg
	}
	if req.DepartmentID == uuid.Nil {
		return "department_id is required"
	}
	if req.LocationID == uuid.Nil {
		return "location_id is required"
	}
	if !models.ValidEmploymentType(models.EmploymentType(req.EmploymentType)) {
		return "unknown employment type"
	}
	if !models.ValidJobLevel(models.JobLevel(req.Level)) {
		return "unknown level"
	}
	return ""
}

// Create inserts a new job listing.
func (h *Jobs) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	status := models.JobStatus(req.Status)
	if status == "" {
		status = models.JobStatusDraft
	}
	if !models.ValidJobStatus(status) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	job, err := h.jobs.Create(&models.Job{
		Title:            req.Title,
		Description:      req.Description,
		Responsibilities: req.Responsibilities,
		Requirements:     req.Requirements,
		Benefits:         req.Benefits,
		DepartmentID:     req.DepartmentID,
		LocationID:       req.LocationID,
		EmploymentType:   models.EmploymentType(req.EmploymentType),
		Level:            models.JobLevel(req.Level),
		ApplyURL:         req.ApplyURL,
		Status:           status,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
	})
	if err != nil {
		respondInternal(w, "create job failed", err)
		return
	}
	if status == models.JobStatusOpen {
		metrics.ObservePublish("job")
	}
	respondData(w, http.StatusCreated, job)
}

type patchJobRequest struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Responsibilities *string    `json:"responsibilities"`
	Requirements     *string    `json:"requirements"`
	Benefits         *string    `json:"benefits"`
	DepartmentID     *uuid.UUID `json:"department_id"`
	LocationID       *uuid.UUID `json:"location_id"`
	EmploymentType   *string    `json:"employment_type"`
	Level            *string    `json:"level"`
	ApplyURL         *string    `json:"apply_url"`
	MetaTitle        *string    `json:"meta_title"`
	MetaDescription  *string    `json:"meta_description"`
}

// Update applies a partial update. Status moves through SetStatus.
func (h *Jobs) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	existing, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "find job failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}

	var req patchJobRequest
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
	if req.Responsibilities != nil {
		patch.Set("responsibilities", *req.Responsibilities)
	}
	if req.Requirements != nil {
		patch.Set("requirements", *req.Requirements)
	}
	if req.Benefits != nil {
		patch.Set("benefits", *req.Benefits)
	}
	if req.DepartmentID != nil {
		patch.Set("department_id", *req.DepartmentID)
	}
	if req.LocationID != nil {
		patch.Set("location_id", *req.LocationID)
	}
	if req.EmploymentType != nil {
		if !models.ValidEmploymentType(models.EmploymentType(*req.EmploymentType)) {
			respondError(w, http.StatusBadRequest, "unknown employment type")
			return
		}
		patch.Set("employment_type", *req.EmploymentType)
	}
	if req.Level != nil {
		if !models.ValidJobLevel(models.JobLevel(*req.Level)) {
			respondError(w, http.StatusBadRequest, "unknown level")
			return
		}
		patch.Set("level", *req.Level)
	}
	if req.ApplyURL != nil {
		patch.Set("apply_url", *req.ApplyURL)
	}
	if req.MetaTitle != nil {
		patch.Set("meta_title", *req.MetaTitle)
	}
	if req.MetaDescription != nil {
		patch.Set("meta_description", *req.MetaDescription)
	}

	if err := h.jobs.Apply(id, patch); err != nil {
		respondInternal(w, "patch job failed", err)
		return
	}

	updated, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "reload job failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// SetStatus moves a job through its lifecycle. Illegal transitions are
// rejected with a 409.
func (h *Jobs) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	to := models.JobStatus(req.Status)
	if !models.ValidJobStatus(to) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	job, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "find job failed", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	if !models.CanTransitionJob(job.Status, to) {
		respondError(w, http.StatusBadRequest,
			"cannot move job from "+string(job.Status)+" to "+string(to))
		return
	}

	if err := h.jobs.SetStatus(id, to); err != nil {
		respondInternal(w, "set job status failed", err)
		return
	}
	if to == models.JobStatusOpen {
		metrics.ObservePublish("job")
	}

	updated, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "reload job failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete removes a job permanently.
func (h *Jobs) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid job id")
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil {
		respondInternal(w, "find job failed", err)
		return
	}
	if job == nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	if err := h.jobs.Delete(id); err != nil {
		respondInternal(w, "delete job failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "job deleted")
}
