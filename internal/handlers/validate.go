package handlers

import (
	"strings"
	"unicode/utf8"

	"corpsite/internal/models"
	"corpsite/internal/rbac"
)

// Validation limits for content fields.
const (
	maxTitleLen    = 300
	maxNameLen     = 200
	maxBodyLen     = 100_000
	maxExcerptLen  = 1_000
	maxMetaLen     = 500
	maxTechCount   = 50
	maxUsernameLen = 100
	minPasswordLen = 8
)

// validateTitle checks a required title field and returns the first error found.
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	return ""
}

// validateName checks a required name field for master data entities.
func validateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 200 characters)"
	}
	return ""
}

// validateBody checks the required long-form content field and the
// optional excerpt and SEO fields.
func validateBody(content, excerpt, metaTitle, metaDesc string) string {
	if strings.TrimSpace(content) == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > maxBodyLen {
		return "content is too long (max 100,000 characters)"
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "excerpt is too long (max 1,000 characters)"
	}
	if utf8.RuneCountInString(metaTitle) > maxMetaLen {
		return "meta title is too long (max 500 characters)"
	}
	if utf8.RuneCountInString(metaDesc) > maxMetaLen {
		return "meta description is too long (max 500 characters)"
	}
	return ""
}

// validateTechnologies checks a project's technology list.
func validateTechnologies(techs []string) string {
	if len(techs) > maxTechCount {
		return "too many technologies (max 50)"
	}
	for _, t := range techs {
		if strings.TrimSpace(t) == "" {
			return "technology entries must not be blank"
		}
		if utf8.RuneCountInString(t) > maxNameLen {
			return "technology entry is too long (max 200 characters)"
		}
	}
	return ""
}

// validateNewUser checks the fields for user creation.
func validateNewUser(username, email, password string, role models.Role) string {
	if strings.TrimSpace(username) == "" {
		return "username is required"
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "username is too long (max 100 characters)"
	}
	if !strings.Contains(email, "@") {
		return "a valid email is required"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	if !models.ValidRole(rbac.NormalizeRole(role)) {
		return "unknown role"
	}
	return ""
}
