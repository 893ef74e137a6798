// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the editorial state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusReview    PostStatus = "review"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// ValidPostStatus reports whether the given status is one of the known states.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusReview, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// postTransitions enumerates the allowed post status moves.
var postTransitions = map[PostStatus][]PostStatus{
	PostStatusDraft:     {PostStatusReview, PostStatusPublished},
	PostStatusReview:    {PostStatusDraft, PostStatusPublished},
	PostStatusPublished: {PostStatusArchived, PostStatusDraft},
	PostStatusArchived:  {PostStatusDraft},
}

// CanTransitionPost reports whether a post may move from one status to another.
func CanTransitionPost(from, to PostStatus) bool {
	for _, allowed := range postTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Post represents a blog post with its category, author, and tag relations.
type Post struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         *string    `json:"excerpt,omitempty"`
	Content         string     `json:"content"`
	CategoryID      uuid.UUID  `json:"category_id"`
	AuthorID        uuid.UUID  `json:"author_id"`
	Status          PostStatus `json:"status"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	MetaTitle       *string    `json:"meta_title,omitempty"`
	MetaDescription *string    `json:"meta_description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Denormalized relation names populated by list/find queries.
	Category *CategoryRef `json:"category,omitempty"`
	Author   *AuthorRef   `json:"author,omitempty"`
	Tags     []Tag        `json:"tags,omitempty"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// CategoryRef is the flattened category relation returned on post rows.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// AuthorRef is the flattened author relation returned on post rows.
type AuthorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
