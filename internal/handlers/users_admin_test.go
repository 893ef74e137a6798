// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// users_admin_test.go covers the admin account management endpoints.
// Skipped without PostgreSQL and Valkey.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"corpsite/internal/models"
)

func TestUserCreate_AdminFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")

	req := authedJSON(admin, http.MethodPost, "/api/users",
		`{"username":"hnd-new-editor","email":"hnd-new-editor@example.test","password":"editor-pass-1","role":"editor"}`)
	rec := httptest.NewRecorder()
	env.UserHandler.Create(rec, req)
	id := createdID(t, env, rec, "users")

	created, err := env.Users.FindByID(id)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if created.Role != models.RoleEditor {
		t.Errorf("role: got %s, want editor", created.Role)
	}
	// display_name falls back to the username when omitted.
	if created.DisplayName != "hnd-new-editor" {
		t.Errorf("display name: got %q", created.DisplayName)
	}

	// Duplicate email conflicts.
	rec = httptest.NewRecorder()
	env.UserHandler.Create(rec, authedJSON(admin, http.MethodPost, "/api/users",
		`{"username":"hnd-other","email":"hnd-new-editor@example.test","password":"editor-pass-1","role":"editor"}`))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate email: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestUserCreate_LegacyRoleNormalized(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")

	req := authedJSON(admin, http.MethodPost, "/api/users",
		`{"username":"hnd-legacy-hr","email":"hnd-legacy-hr@example.test","password":"hr-pass-123","role":"hr_manager"}`)
	rec := httptest.NewRecorder()
	env.UserHandler.Create(rec, req)
	id := createdID(t, env, rec, "users")

	created, _ := env.Users.FindByID(id)
	if created.Role != models.RoleHR {
		t.Errorf("role: got %s, want hr", created.Role)
	}
}

func TestUserUpdate_RoleAndStatus(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")
	target := env.testUser(t, models.RoleEditor, "target-pass-123")

	req := authedJSON(admin, http.MethodPut, "/api/users/"+target.ID.String(),
		`{"role":"content_manager","status":"suspended"}`)
	req = withChiURLParam(req, "id", target.ID.String())
	rec := httptest.NewRecorder()
	env.UserHandler.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d (%s)", rec.Code, rec.Body.String())
	}

	updated, _ := env.Users.FindByID(target.ID)
	if updated.Role != models.RoleContentManager {
		t.Errorf("role: got %s", updated.Role)
	}
	if updated.Status != models.UserStatusSuspended {
		t.Errorf("status: got %s", updated.Status)
	}
	if updated.CanLogIn() {
		t.Error("suspended account must not be able to log in")
	}
}

func TestUserUpdate_SelfDemotionBlocked(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")

	req := authedJSON(admin, http.MethodPut, "/api/users/"+admin.ID.String(), `{"role":"editor"}`)
	req = withChiURLParam(req, "id", admin.ID.String())
	rec := httptest.NewRecorder()
	env.UserHandler.Update(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("self demotion: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestUserDelete_SoftDeletesAndBlocksSelf(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")
	target := env.testUser(t, models.RoleEditor, "target-pass-123")

	req := authedJSON(admin, http.MethodDelete, "/api/users/"+target.ID.String(), "")
	req = withChiURLParam(req, "id", target.ID.String())
	rec := httptest.NewRecorder()
	env.UserHandler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d (%s)", rec.Code, rec.Body.String())
	}

	// The row is kept, deactivated.
	deleted, _ := env.Users.FindByID(target.ID)
	if deleted == nil {
		t.Fatal("soft deleted user row must remain")
	}
	if deleted.Status != models.UserStatusInactive {
		t.Errorf("status: got %s, want inactive", deleted.Status)
	}

	// Deleting your own account is refused.
	req = authedJSON(admin, http.MethodDelete, "/api/users/"+admin.ID.String(), "")
	req = withChiURLParam(req, "id", admin.ID.String())
	rec = httptest.NewRecorder()
	env.UserHandler.Delete(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("self delete: got %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestUserResetTOTP(t *testing.T) {
	env := newTestEnv(t)
	admin := env.testUser(t, models.RoleAdmin, "correct-horse-battery")
	target := env.testUser(t, models.RoleEditor, "target-pass-123")

	if err := env.Users.SetTOTPSecret(target.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	if err := env.Users.EnableTOTP(target.ID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}

	req := authedJSON(admin, http.MethodPost, "/api/users/"+target.ID.String()+"/reset-2fa", "")
	req = withChiURLParam(req, "id", target.ID.String())
	rec := httptest.NewRecorder()
	env.UserHandler.ResetTOTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got %d (%s)", rec.Code, rec.Body.String())
	}

	reloaded, _ := env.Users.FindByID(target.ID)
	if reloaded.TOTPEnabled || reloaded.TOTPSecret != nil {
		t.Errorf("enrollment not cleared: enabled=%v secret=%v", reloaded.TOTPEnabled, reloaded.TOTPSecret)
	}
}

func TestUserList_Filters(t *testing.T) {
	env := newTestEnv(t)
	env.testUser(t, models.RoleAdmin, "correct-horse-battery")
	editor := env.testUser(t, models.RoleEditor, "editor-pass-123")

	req := httptest.NewRequest(http.MethodGet, "/api/users?role=editor&q="+editor.Username, nil)
	rec := httptest.NewRecorder()
	env.UserHandler.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d (%s)", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Total-Count"); got != "1" {
		t.Errorf("X-Total-Count: got %q, want 1", got)
	}

	// Unknown status filter is a client error.
	req = httptest.NewRequest(http.MethodGet, "/api/users?status=bogus", nil)
	rec = httptest.NewRecorder()
	env.UserHandler.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status filter: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
