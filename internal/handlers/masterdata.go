package handlers

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"corpsite/internal/models"
	"corpsite/internal/store"
)

// MasterData groups the CRUD endpoints for the small lookup entities:
// blog categories and tags, author bylines, departments, and locations.
type MasterData struct {
	categories  *store.CategoryStore
	tags        *store.TagStore
	authors     *store.AuthorStore
	departments *store.DepartmentStore
	locations   *store.LocationStore
}

// NewMasterData creates a new MasterData handler group.
func NewMasterData(
	categories *store.CategoryStore,
	tags *store.TagStore,
	authors *store.AuthorStore,
	departments *store.DepartmentStore,
	locations *store.LocationStore,
) *MasterData {
	return &MasterData{
		categories:  categories,
		tags:        tags,
		authors:     authors,
		departments: departments,
		locations:   locations,
	}
}

// isFKViolation reports whether err is a foreign key constraint failure,
// meaning the entity is still referenced by content.
func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// deleteReferenced runs a delete and maps FK violations to a 409.
func deleteReferenced(w http.ResponseWriter, name string, del func() error) {
	if err := del(); err != nil {
		if isFKViolation(err) {
			respondError(w, http.StatusConflict, name+" is still in use")
			return
		}
		respondInternal(w, "delete "+name+" failed", err)
		return
	}
	respondMessage(w, http.StatusOK, name+" deleted")
}

type namedRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (req *namedRequest) active() bool {
	if req.Active == nil {
		return true
	}
	return *req.Active
}

// ---- categories ----

func (h *MasterData) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		respondInternal(w, "list categories failed", err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MasterData) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := h.categories.Create(&models.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      req.active(),
	})
	if err != nil {
		respondInternal(w, "create category failed", err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *MasterData) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	existing, err := h.categories.FindByID(id)
	if err != nil {
		respondInternal(w, "find category failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.NewPatch()
	if req.Name != "" {
		if msg := validateName(req.Name); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("name", req.Name)
	}
	if req.Description != nil {
		patch.Set("description", *req.Description)
	}
	if req.Active != nil {
		patch.Set("active", *req.Active)
	}
	if err := h.categories.Apply(id, patch); err != nil {
		respondInternal(w, "patch category failed", err)
		return
	}
	updated, err := h.categories.FindByID(id)
	if err != nil {
		respondInternal(w, "reload category failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *MasterData) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category id")
		return
	}
	deleteReferenced(w, "category", func() error { return h.categories.Delete(id) })
}

// ---- tags ----

func (h *MasterData) ListTags(w http.ResponseWriter, r *http.Request) {
	items, err := h.tags.List()
	if err != nil {
		respondInternal(w, "list tags failed", err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MasterData) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := h.tags.Create(&models.Tag{Name: req.Name, Active: req.active()})
	if err != nil {
		respondInternal(w, "create tag failed", err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *MasterData) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}
	existing, err := h.tags.FindByID(id)
	if err != nil {
		respondInternal(w, "find tag failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "tag not found")
		return
	}

	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := store.NewPatch()
	if req.Name != "" {
		if msg := validateName(req.Name); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("name", req.Name)
	}
	if req.Active != nil {
		patch.Set("active", *req.Active)
	}
	if err := h.tags.Apply(id, patch); err != nil {
		respondInternal(w, "patch tag failed", err)
		return
	}
	updated, err := h.tags.FindByID(id)
	if err != nil {
		respondInternal(w, "reload tag failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *MasterData) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid tag id")
		return
	}
	deleteReferenced(w, "tag", func() error { return h.tags.Delete(id) })
}

// ---- authors ----

type authorRequest struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Active    *bool   `json:"active"`
}

func (h *MasterData) ListAuthors(w http.ResponseWriter, r *http.Request) {
	items, err := h.authors.List()
	if err != nil {
		respondInternal(w, "list authors failed", err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MasterData) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req authorRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	created, err := h.authors.Create(&models.Author{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Active:    active,
	})
	if err != nil {
		respondInternal(w, "create author failed", err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *MasterData) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	existing, err := h.authors.FindByID(id)
	if err != nil {
		respondInternal(w, "find author failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "author not found")
		return
	}

	var req authorRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := store.NewPatch()
	if req.Name != "" {
		if msg := validateName(req.Name); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("name", req.Name)
	}
	if req.Bio != nil {
		patch.Set("bio", *req.Bio)
	}
	if req.AvatarURL != nil {
		patch.Set("avatar_url", *req.AvatarURL)
	}
	if req.Active != nil {
		patch.Set("active", *req.Active)
	}
	if err := h.authors.Apply(id, patch); err != nil {
		respondInternal(w, "patch author failed", err)
		return
	}
	updated, err := h.authors.FindByID(id)
	if err != nil {
		respondInternal(w, "reload author failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *MasterData) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	deleteReferenced(w, "author", func() error { return h.authors.Delete(id) })
}

// ---- departments ----

func (h *MasterData) ListDepartments(w http.ResponseWriter, r *http.Request) {
	items, err := h.departments.List()
	if err != nil {
		respondInternal(w, "list departments failed", err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MasterData) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	created, err := h.departments.Create(&models.Department{Name: req.Name, Active: req.active()})
	if err != nil {
		respondInternal(w, "create department failed", err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *MasterData) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid department id")
		return
	}
	existing, err := h.departments.FindByID(id)
	if err != nil {
		respondInternal(w, "find department failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "department not found")
		return
	}

	var req namedRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := store.NewPatch()
	if req.Name != "" {
		if msg := validateName(req.Name); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("name", req.Name)
	}
	if req.Active != nil {
		patch.Set("active", *req.Active)
	}
	if err := h.departments.Apply(id, patch); err != nil {
		respondInternal(w, "patch department failed", err)
		return
	}
	updated, err := h.departments.FindByID(id)
	if err != nil {
		respondInternal(w, "reload department failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *MasterData) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid department id")
		return
	}
	deleteReferenced(w, "department", func() error { return h.departments.Delete(id) })
}

// ---- locations ----

type locationRequest struct {
	Name    string  `json:"name"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	Remote  *bool   `json:"remote"`
	Active  *bool   `json:"active"`
}

func (h *MasterData) ListLocations(w http.ResponseWriter, r *http.Request) {
	items, err := h.locations.List()
	if err != nil {
		respondInternal(w, "list locations failed", err)
		return
	}
	respondData(w, http.StatusOK, items)
}

func (h *MasterData) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateName(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	loc := &models.Location{Name: req.Name, City: req.City, Country: req.Country, Active: true}
	if req.Remote != nil {
		loc.Remote = *req.Remote
	}
	if req.Active != nil {
		loc.Active = *req.Active
	}
	created, err := h.locations.Create(loc)
	if err != nil {
		respondInternal(w, "create location failed", err)
		return
	}
	respondData(w, http.StatusCreated, created)
}

func (h *MasterData) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	existing, err := h.locations.FindByID(id)
	if err != nil {
		respondInternal(w, "find location failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "location not found")
		return
	}

	var req locationRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patch := store.NewPatch()
	if req.Name != "" {
		if msg := validateName(req.Name); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("name", req.Name)
	}
	if req.City != nil {
		patch.Set("city", *req.City)
	}
	if req.Country != nil {
		patch.Set("country", *req.Country)
	}
	if req.Remote != nil {
		patch.Set("remote", *req.Remote)
	}
	if req.Active != nil {
		patch.Set("active", *req.Active)
	}
	if err := h.locations.Apply(id, patch); err != nil {
		respondInternal(w, "patch location failed", err)
		return
	}
	updated, err := h.locations.FindByID(id)
	if err != nil {
		respondInternal(w, "reload location failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

func (h *MasterData) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	deleteReferenced(w, "location", func() error { return h.locations.Delete(id) })
}
