// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"corpsite/internal/models"
)

// PostStore handles all blog post database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postSelect joins category and author names onto each post row.
const postSelect = `
	SELECT p.id, p.title, p.slug, p.excerpt, p.content, p.category_id, p.author_id,
	       p.status, p.published_at, p.meta_title, p.meta_description,
	       p.created_at, p.updated_at,
	       c.name, c.slug, a.name, a.slug
	FROM blog_posts p
	JOIN blog_categories c ON c.id = p.category_id
	JOIN blog_authors a ON a.id = p.author_id`

// scanPost scans a joined row into a Post with its relation refs populated.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var (
		p                    models.Post
		catName, catSlug     string
		authorName, authSlug string
	)
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CategoryID, &p.AuthorID,
		&p.Status, &p.PublishedAt, &p.MetaTitle, &p.MetaDescription,
		&p.CreatedAt, &p.UpdatedAt,
		&catName, &catSlug, &authorName, &authSlug,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &models.CategoryRef{ID: p.CategoryID, Name: catName, Slug: catSlug}
	p.Author = &models.AuthorRef{ID: p.AuthorID, Name: authorName, Slug: authSlug}
	return &p, nil
}

// PostFilter narrows List results.
type PostFilter struct {
	Status     models.PostStatus
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	Tag        string // tag slug
	Search     string // matches title and excerpt
	Page       Page
}

// List returns posts matching the filter, newest first, with the total
// row count for pagination headers. Category and author names are joined
// onto each row; tags are loaded per post.
func (s *PostStore) List(f PostFilter) ([]models.Post, int, error) {
	where := "WHERE 1=1"
	var args []any
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND p.status = $%d", len(args))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where += fmt.Sprintf(" AND p.category_id = $%d", len(args))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		where += fmt.Sprintf(" AND p.author_id = $%d", len(args))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		where += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM blog_post_tags pt
			JOIN blog_tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $%d)`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND (p.title ILIKE $%d OR p.excerpt ILIKE $%d)", len(args), len(args))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts p `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	limit, offset := f.Page.LimitOffset()
	args = append(args, limit, offset)
	rows, err := s.db.Query(
		postSelect+" "+where+
			fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range posts {
		tags, err := s.tagsFor(posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Tags = tags
	}
	return posts, total, nil
}

// ListPublished returns published posts ordered by publish date descending.
// Used by the public API. Publishing always restamps published_at, so a
// republished post moves back to the top of the feed.
func (s *PostStore) ListPublished(page Page) ([]models.Post, int, error) {
	where := "WHERE p.status = 'published'"
	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM blog_posts p ` + where).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published posts: %w", err)
	}
	limit, offset := page.LimitOffset()
	rows, err := s.db.Query(
		postSelect+" "+where+" ORDER BY p.published_at DESC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list published posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range posts {
		tags, err := s.tagsFor(posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Tags = tags
	}
	return posts, total, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	p.Tags, err = s.tagsFor(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post by its slug. Used for
// public rendering; drafts and archived posts are invisible here.
func (s *PostStore) FindPublishedBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.slug = $1 AND p.status = 'published'`, slug)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	p.Tags, err = s.tagsFor(p.ID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new post with tag links and returns it. The slug is
// derived from the title; a collision appends the base-36 suffix once.
// Creating directly in published status stamps published_at.
func (s *PostStore) Create(p *models.Post, tagIDs []uuid.UUID) (*models.Post, error) {
	slugVal, err := ensureSlug(s.db, "blog_posts", p.Title)
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO blog_posts (title, slug, excerpt, content, category_id, author_id,
		                        status, published_at, meta_title, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        CASE WHEN $7 = 'published' THEN NOW() ELSE NULL END, $8, $9)
		RETURNING id
	`, p.Title, slugVal, p.Excerpt, p.Content, p.CategoryID, p.AuthorID,
		p.Status, p.MetaTitle, p.MetaDescription,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.SetTags(id, tagIDs); err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// Apply runs a partial update against the blog_posts table.
func (s *PostStore) Apply(id uuid.UUID, p *Patch) error {
	if p.Empty() {
		return nil
	}
	query, args := p.Build("blog_posts", id)
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("patch post: %w", err)
	}
	return nil
}

// SetStatus moves a post to a new status. Entering published always
// overwrites published_at with the current time, so republishing resets
// the publish date. Transition legality is checked by the caller.
func (s *PostStore) SetStatus(id uuid.UUID, to models.PostStatus) error {
	_, err := s.db.Exec(`
		UPDATE blog_posts SET
			status = $1,
			published_at = CASE WHEN $1 = 'published' THEN NOW() ELSE published_at END,
			updated_at = NOW()
		WHERE id = $2
	`, to, id)
	if err != nil {
		return fmt.Errorf("set post status: %w", err)
	}
	return nil
}

// SetTags replaces the post's tag links in a transaction.
func (s *PostStore) SetTags(postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blog_post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`
			INSERT INTO blog_post_tags (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID); err != nil {
			return fmt.Errorf("link post tag: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a post by ID. Tag links cascade away.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// tagsFor loads the tags linked to a post, ordered by name.
func (s *PostStore) tagsFor(postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.slug, t.active, t.created_at, t.updated_at
		FROM blog_tags t
		JOIN blog_post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("post tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}
