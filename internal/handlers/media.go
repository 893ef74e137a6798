// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"corpsite/internal/metrics"
	"corpsite/internal/middleware"
	"corpsite/internal/models"
	"corpsite/internal/storage"
	"corpsite/internal/store"
)

// maxUploadBytes caps a single media upload at 20 MiB.
const maxUploadBytes = 20 << 20

// allowedMediaTypes lists the MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// Media handles upload and management of media files. File bytes go to
// the configured storage backend; metadata goes to PostgreSQL.
type Media struct {
	media   *store.MediaStore
	backend storage.Backend
}

// NewMedia creates a new Media handler group.
func NewMedia(media *store.MediaStore, backend storage.Backend) *Media {
	return &Media{media: media, backend: backend}
}

// List returns media files, newest first, optionally filtered by folder
// or a search over original file names.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	f := store.MediaFilter{
		Folder: r.URL.Query().Get("folder"),
		Search: r.URL.Query().Get("q"),
		Page:   queryPage(r),
	}
	files, total, err := h.media.List(f)
	if err != nil {
		respondInternal(w, "list media failed", err)
		return
	}
	respondList(w, files, total, f.Page)
}

func (h *Media) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	file, err := h.media.FindByID(id)
	if err != nil {
		respondInternal(w, "find media failed", err)
		return
	}
	if file == nil {
		respondError(w, http.StatusNotFound, "media file not found")
		return
	}
	respondData(w, http.StatusOK, file)
}

// Upload accepts a multipart form with a "file" part and an optional
// "folder" and "alt_text". The stored filename is generated; the
// original name is kept as metadata.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[mimeType] {
		respondError(w, http.StatusUnsupportedMediaType, "unsupported file type")
		return
	}

	folder := strings.Trim(r.FormValue("folder"), "/")
	if folder == "" {
		folder = time.Now().UTC().Format("2006/01")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.New().String() + ext
	key := folder + "/" + filename

	url, err := h.backend.Save(r.Context(), key, mimeType, file, header.Size)
	if err != nil {
		metrics.ObserveMediaUpload(h.backend.Name(), "failure")
		respondInternal(w, "store file failed", err)
		return
	}

	created, err := h.media.Create(&models.MediaFile{
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		SizeBytes:    header.Size,
		Folder:       folder,
		AltText:      optionalFormValue(r, "alt_text"),
		StorageKey:   key,
		URL:          url,
		UploaderID:   sess.UserID,
	})
	if err != nil {
		metrics.ObserveMediaUpload(h.backend.Name(), "failure")
		// Roll back the stored bytes so the backend does not leak orphans.
		if delErr := h.backend.Delete(r.Context(), key); delErr != nil {
			err = fmt.Errorf("%w (cleanup also failed: %v)", err, delErr)
		}
		respondInternal(w, "record media failed", err)
		return
	}

	metrics.ObserveMediaUpload(h.backend.Name(), "success")
	respondData(w, http.StatusCreated, created)
}

type patchMediaRequest struct {
	AltText *string `json:"alt_text"`
}

// Update changes the mutable metadata of a media file. Only alt text is
// editable after upload.
func (h *Media) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	existing, err := h.media.FindByID(id)
	if err != nil {
		respondInternal(w, "find media failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "media file not found")
		return
	}

	var req patchMediaRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.media.SetAltText(id, req.AltText); err != nil {
		respondInternal(w, "update media failed", err)
		return
	}
	updated, err := h.media.FindByID(id)
	if err != nil {
		respondInternal(w, "reload media failed", err)
		return
	}
	respondData(w, http.StatusOK, updated)
}

// Delete removes the metadata row and the stored file.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	existing, err := h.media.FindByID(id)
	if err != nil {
		respondInternal(w, "find media failed", err)
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "media file not found")
		return
	}
	if err := h.media.Delete(id); err != nil {
		respondInternal(w, "delete media failed", err)
		return
	}
	if err := h.backend.Delete(r.Context(), existing.StorageKey); err != nil {
		// The metadata row is already gone; report success anyway.
		slog.Warn("orphaned media bytes", "key", existing.StorageKey, "backend", h.backend.Name(), "error", err)
	}
	respondMessage(w, http.StatusOK, "media file deleted")
}

func optionalFormValue(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}
