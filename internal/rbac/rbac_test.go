// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rbac

import (
	"testing"

	"corpsite/internal/models"
)

// TestAllowed exercises the policy table across roles, resources, and actions.
func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		resource Resource
		action   Action
		want     bool
	}{
		// Admin can do everything.
		{name: "admin blog delete", role: models.RoleAdmin, resource: ResourceBlog, action: ActionDelete, want: true},
		{name: "admin users write", role: models.RoleAdmin, resource: ResourceUsers, action: ActionWrite, want: true},
		{name: "admin careers write", role: models.RoleAdmin, resource: ResourceCareers, action: ActionWrite, want: true},

		// Editors own blog and projects but not careers or users.
		{name: "editor blog write", role: models.RoleEditor, resource: ResourceBlog, action: ActionWrite, want: true},
		{name: "editor projects write", role: models.RoleEditor, resource: ResourceProjects, action: ActionWrite, want: true},
		{name: "editor careers write", role: models.RoleEditor, resource: ResourceCareers, action: ActionWrite, want: false},
		{name: "editor blog delete", role: models.RoleEditor, resource: ResourceBlog, action: ActionDelete, want: false},
		{name: "editor users read", role: models.RoleEditor, resource: ResourceUsers, action: ActionRead, want: false},

		// HR owns careers but not blog or projects.
		{name: "hr careers write", role: models.RoleHR, resource: ResourceCareers, action: ActionWrite, want: true},
		{name: "hr blog write", role: models.RoleHR, resource: ResourceBlog, action: ActionWrite, want: false},
		{name: "hr projects write", role: models.RoleHR, resource: ResourceProjects, action: ActionWrite, want: false},
		{name: "hr careers delete", role: models.RoleHR, resource: ResourceCareers, action: ActionDelete, want: false},

		// Content managers mirror editors.
		{name: "content manager blog write", role: models.RoleContentManager, resource: ResourceBlog, action: ActionWrite, want: true},
		{name: "content manager careers write", role: models.RoleContentManager, resource: ResourceCareers, action: ActionWrite, want: false},

		// Every authenticated role can read dashboard listings and media.
		{name: "hr blog read", role: models.RoleHR, resource: ResourceBlog, action: ActionRead, want: true},
		{name: "editor media write", role: models.RoleEditor, resource: ResourceMedia, action: ActionWrite, want: true},
		{name: "hr media write", role: models.RoleHR, resource: ResourceMedia, action: ActionWrite, want: true},

		// Unknown roles and pairs deny.
		{name: "unknown role", role: models.Role("viewer"), resource: ResourceBlog, action: ActionRead, want: false},
		{name: "empty role", role: models.Role(""), resource: ResourceBlog, action: ActionRead, want: false},
		{name: "unknown resource", role: models.RoleAdmin, resource: Resource("comments"), action: ActionRead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Allowed(%q, %q, %q) = %v, want %v",
					tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

// TestNormalizeRole verifies that legacy hr role names collapse to "hr".
func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   models.Role
		want models.Role
	}{
		{in: "hr_manager", want: models.RoleHR},
		{in: "hr_staff", want: models.RoleHR},
		{in: models.RoleHR, want: models.RoleHR},
		{in: models.RoleAdmin, want: models.RoleAdmin},
		{in: "viewer", want: "viewer"},
	}

	for _, tt := range tests {
		if got := NormalizeRole(tt.in); got != tt.want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestLegacyHRNamesInheritPolicy verifies the drifted names get hr's grants.
func TestLegacyHRNamesInheritPolicy(t *testing.T) {
	for _, legacy := range []models.Role{"hr_manager", "hr_staff"} {
		if !Allowed(legacy, ResourceCareers, ActionWrite) {
			t.Errorf("legacy role %q should inherit hr careers write", legacy)
		}
		if Allowed(legacy, ResourceBlog, ActionWrite) {
			t.Errorf("legacy role %q must not gain blog write", legacy)
		}
	}
}
