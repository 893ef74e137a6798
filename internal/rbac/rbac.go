// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rbac holds the single role policy table for the dashboard API.
// Every handler consults this table through the middleware instead of
// carrying its own allow-list.
package rbac

import "corpsite/internal/models"

// Resource identifies a protected resource group.
type Resource string

const (
	ResourceBlog     Resource = "blog"
	ResourceCareers  Resource = "careers"
	ResourceProjects Resource = "projects"
	ResourceUsers    Resource = "users"
	ResourceMedia    Resource = "media"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// policyKey keys the policy table by (resource, action).
type policyKey struct {
	resource Resource
	action   Action
}

// policy maps (resource, action) to the roles allowed to perform it.
// Read access to dashboard listings is open to every authenticated role,
// expressed here by listing all four.
var policy = map[policyKey][]models.Role{
	{ResourceBlog, ActionRead}:   {models.RoleAdmin, models.RoleEditor, models.RoleHR, models.RoleContentManager},
	{ResourceBlog, ActionWrite}:  {models.RoleAdmin, models.RoleEditor, models.RoleContentManager},
	{ResourceBlog, ActionDelete}: {models.RoleAdmin},

	{ResourceCareers, ActionRead}:   {models.RoleAdmin, models.RoleEditor, models.RoleHR, models.RoleContentManager},
	{ResourceCareers, ActionWrite}:  {models.RoleAdmin, models.RoleHR},
	{ResourceCareers, ActionDelete}: {models.RoleAdmin},

	{ResourceProjects, ActionRead}:   {models.RoleAdmin, models.RoleEditor, models.RoleHR, models.RoleContentManager},
	{ResourceProjects, ActionWrite}:  {models.RoleAdmin, models.RoleEditor, models.RoleContentManager},
	{ResourceProjects, ActionDelete}: {models.RoleAdmin},

	{ResourceUsers, ActionRead}:   {models.RoleAdmin},
	{ResourceUsers, ActionWrite}:  {models.RoleAdmin},
	{ResourceUsers, ActionDelete}: {models.RoleAdmin},

	{ResourceMedia, ActionRead}:   {models.RoleAdmin, models.RoleEditor, models.RoleHR, models.RoleContentManager},
	{ResourceMedia, ActionWrite}:  {models.RoleAdmin, models.RoleEditor, models.RoleHR, models.RoleContentManager},
	{ResourceMedia, ActionDelete}: {models.RoleAdmin},
}

// Allowed reports whether the given role may perform action on resource.
// Unknown (resource, action) pairs deny everything.
func Allowed(role models.Role, resource Resource, action Action) bool {
	role = NormalizeRole(role)
	for _, r := range policy[policyKey{resource, action}] {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeRole collapses historical role-name drift onto the canonical
// set. Earlier data used "hr_manager" and "hr_staff" interchangeably with
// "hr"; both map to hr here.
func NormalizeRole(role models.Role) models.Role {
	switch role {
	case "hr_manager", "hr_staff":
		return models.RoleHR
	}
	return role
}
