package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"corpsite/internal/metrics"
	"corpsite/internal/middleware"
	"corpsite/internal/models"
	"corpsite/internal/store"
)

// Posts groups the blog post admin endpoints.
type Posts struct {
	posts   *store.PostStore
	authors *store.AuthorStore
	users   *store.UserStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore, authors *store.AuthorStore, users *store.UserStore) *Posts {
	return &Posts{posts: posts, authors: authors, users: users}
}

// List returns posts with optional status, category, author, tag, and
// search filters.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryPage(r)
	filter := store.PostFilter{
		Status:     models.PostStatus(q.Get("status")),
		CategoryID: queryUUID(r, "category_id"),
		AuthorID:   queryUUID(r, "author_id"),
		Tag:        q.Get("tag"),
		Search:     q.Get("q"),
		Page:       page,
	}
	if filter.Status != "" && !models.ValidPostStatus(filter.Status) {
		respondError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	posts, total, err := h.posts.List(filter)
	if err != nil {
		respondInternal(w, "list posts failed", err)
		return
	}
	respondList(w, posts, total, page)
}

// Get returns a single post by ID.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	respondData(w, http.StatusOK, post)
}

type postRequest struct {
	Title           string      `json:"title"`
	Excerpt         *string     `json:"excerpt"`
	Content         string      `json:"content"`
	CategoryID      uuid.UUID   `json:"category_id"`
	AuthorID        *uuid.UUID  `json:"author_id"`
	TagIDs          []uuid.UUID `json:"tag_ids"`
	Status          string      `json:"status"`
	MetaTitle       *string     `json:"meta_title"`
	MetaDescription *string     `json:"meta_description"`
}

func (req *postRequest) validate() string {
	if msg := validateTitle(req.Title); msg != "" {
		return msg
	}
	excerpt := ""
	if req.Excerpt != nil {
		excerpt = *req.Excerpt
	}
	if msg := validateBody(req.Content, excerpt, deref(req.MetaTitle), deref(req.MetaDescription)); msg != "" {
		return msg
	}
	if req.CategoryID == uuid.Nil {
		return "category_id is required"
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create inserts a new post. When author_id is omitted, the caller's own
// byline is used, creating it on first use.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	status := models.PostStatus(req.Status)
	if status == "" {
		status = models.PostStatusDraft
	}
	if !models.ValidPostStatus(status) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	authorID, err := h.resolveAuthor(r, req.AuthorID)
	if err != nil {
		respondInternal(w, "resolve author failed", err)
		return
	}
	if authorID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "author not found")
		return
	}

	post, err := h.posts.Create(&models.Post{
		Title:           req.Title,
		Excerpt:         req.Excerpt,
		Content:         req.Content,
		CategoryID:      req.CategoryID,
		AuthorID:        authorID,
		Status:          status,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
	}, req.TagIDs)
	if err != nil {
		respondInternal(w, "create post failed", err)
		return
	}
	if status == models.PostStatusPublished {
		metrics.ObservePublish("post")
	}
	respondData(w, http.StatusCreated, post)
}

// resolveAuthor maps an explicit author_id through, or falls back to the
// caller's linked byline, creating it lazily.
func (h *Posts) resolveAuthor(r *http.Request, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		author, err := h.authors.FindByID(*explicit)
		if err != nil {
			return uuid.Nil, err
		}
		if author == nil {
			return uuid.Nil, nil
		}
		return author.ID, nil
	}

	sess := middleware.SessionFromCtx(r.Context())
	user, err := h.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		return uuid.Nil, err
	}
	author, err := h.authors.EnsureForUser(user)
	if err != nil {
		return uuid.Nil, err
	}
	return author.ID, nil
}

// patchPostRequest uses pointers so absent fields stay untouched.
type patchPostRequest struct {
	Title           *string      `json:"title"`
	Excerpt         *string      `json:"excerpt"`
	Content         *string      `json:"content"`
	CategoryID      *uuid.UUID   `json:"category_id"`
	AuthorID        *uuid.UUID   `json:"author_id"`
	TagIDs          *[]uuid.UUID `json:"tag_ids"`
	MetaTitle       *string      `json:"meta_title"`
	MetaDescription *string      `json:"meta_description"`
}

// Update applies a partial update. Only fields present in the body change;
// status moves through the dedicated transition endpoint.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	existing, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	var req patchPostRequest
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
	if req.Excerpt != nil {
		patch.Set("excerpt", *req.Excerpt)
	}
	if req.Content != nil {
		if msg := validateBody(*req.Content, "", "", ""); msg != "" {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		patch.Set("content", *req.Content)
	}
	if req.CategoryID != nil {
		patch.Set("category_id", *req.CategoryID)
	}
	if req.AuthorID != nil {
		patch.Set("author_id", *req.AuthorID)
	}
	if req.MetaTitle != nil {
		patch.Set("meta_title", *req.MetaTitle)
	}
	if req.MetaDescription != nil {
		patch.Set("meta_description", *req.MetaDescription)
	}

	if err := h.posts.Apply(id, patch); err != nil {
		respondInternal(w, "patch post failed", err)
		return
	}
	if req.TagIDs != nil {
		if err := h.posts.SetTags(id, *req.TagIDs); err != nil {
			respondInternal(w, "set post tags failed", err)
			return
		}
	}

	updated, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "reload post failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves a post through its editorial workflow. Illegal
// transitions are rejected with a 409.
func (h *Posts) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req statusRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	to := models.PostStatus(req.Status)
	if !models.ValidPostStatus(to) {
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	if !models.CanTransitionPost(post.Status, to) {
		respondError(w, http.StatusBadRequest,
			"cannot move post from "+string(post.Status)+" to "+string(to))
		return
	}

	if err := h.posts.SetStatus(id, to); err != nil {
		respondInternal(w, "set post status failed", err)
		return
	}
	if to == models.PostStatusPublished {
		metrics.ObservePublish("post")
	}

	updated, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "reload post failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete removes a post permanently.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := h.posts.FindByID(id)
	if err != nil {
		respondInternal(w, "find post failed", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}
	if err := h.posts.Delete(id); err != nil {
		respondInternal(w, "delete post failed", err)
		return
	}
	respondMessage(w, http.StatusOK, "post deleted")
}
