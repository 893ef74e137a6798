// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"corpsite/internal/middleware"
	"corpsite/internal/models"
	"corpsite/internal/rbac"
	"corpsite/internal/store"
)

// Users provides the admin-only account management endpoints.
type Users struct {
	users *store.UserStore
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore) *Users {
	return &Users{users: users}
}

// List returns users filtered by status, role, and a free text search.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	f := store.UserFilter{
		Search: r.URL.Query().Get("q"),
		Page:   queryPage(r),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !models.ValidUserStatus(models.UserStatus(s)) {
			respondError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		f.Status = models.UserStatus(s)
	}
	if role := r.URL.Query().Get("role"); role != "" {
		f.Role = rbac.NormalizeRole(models.Role(role))
	}

	users, total, err := h.users.List(f)
	if err != nil {
		respondInternal(w, "list users failed", err)
		return
	}
	respondList(w, users, total, f.Page)
}

func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.users.FindByID(id)
	if err != nil {
		respondInternal(w, "find user failed", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondData(w, http.StatusOK, user)
}

type createUserRequest struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
}

func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateNewUser(req.Username, req.Email, req.Password, req.Role); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondInternal(w, "check email failed", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "a user with this email already exists")
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}
	user, err := h.users.Create(req.Username, req.Email, req.Password, displayName, rbac.NormalizeRole(req.Role))
	if err != nil {
		respondInternal(w, "create user failed", err)
		return
	}
	respondData(w, http.StatusCreated, user)
}

type patchUserRequest struct {
	DisplayName *string            `json:"display_name"`
	Role        *models.Role       `json:"role"`
	AvatarURL   *string            `json:"avatar_url"`
	Status      *models.UserStatus `json:"status"`
	Password    *string            `json:"password"`
}

// Update applies a partial update to a user. Admins may also rotate a
// user's password here; the user's own password change goes through the
// auth endpoint, which verifies the current password first.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	existing, err := h.users.FindByID(id)
	if err != nil {
		respondInternal(w, "find user failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var req patchUserRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.NewPatch()
	if req.DisplayName != nil {
		if msg := validateName(*req.DisplayName); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("display_name", *req.DisplayName)
	}
	if req.Role != nil {
		role := rbac.NormalizeRole(*req.Role)
		if !models.ValidRole(role) {
			respondError(w, http.StatusBadRequest, "unknown role")
			return
		}
		// An admin cannot demote their own account.
		sess := middleware.SessionFromCtx(r.Context())
		if sess != nil && sess.UserID == id && role != models.RoleAdmin {
			respondError(w, http.StatusConflict, "cannot change your own role")
			return
		}
		patch.Set("role", role)
	}
	if req.AvatarURL != nil {
		patch.Set("avatar_url", *req.AvatarURL)
	}
	if req.Status != nil {
		if !models.ValidUserStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, "unknown status")
			return
		}
		sess := middleware.SessionFromCtx(r.Context())
		if sess != nil && sess.UserID == id && *req.Status != models.UserStatusActive {
			respondError(w, http.StatusConflict, "cannot deactivate your own account")
			return
		}
		patch.Set("status", *req.Status)
	}
	if err := h.users.Apply(id, patch); err != nil {
		respondInternal(w, "patch user failed", err)
		return
	}

	if req.Password != nil {
		if len(*req.Password) < minPasswordLen {
			respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		if err := h.users.SetPassword(id, *req.Password); err != nil {
			respondInternal(w, "set password failed", err)
			return
		}
	}

	updated, err := h.users.FindByID(id)
	if err != nil {
		respondInternal(w, "reload user failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete deactivates a user account. The row is kept so that authored
// content stays attributable.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		respondError(w, http.StatusConflict, "cannot delete your own account")
		return
	}
	existing, err := h.users.FindByID(id)
	if err != nil {
		respondInternal(w, "find user failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := h.users.SoftDelete(id); err != nil {
		respondInternal(w, "delete user failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "user deactivated")
}

// ResetTOTP clears a user's two factor enrollment so they can re-enroll
// on next login.
func (h *Users) ResetTOTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	existing, err := h.users.FindByID(id)
	if err != nil {
		respondInternal(w, "find user failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := h.users.ResetTOTP(id); err != nil {
		respondInternal(w, "reset totp failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "two factor authentication reset")
}
