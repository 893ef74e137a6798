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

// MediaStore handles media file metadata. The bytes themselves live in
// local disk or S3; see the storage package.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, filename, original_name, mime_type, size_bytes,
	folder, alt_text, storage_key, url, uploader_id, created_at`

func scanMedia(scanner interface{ Scan(...any) error }) (*models.MediaFile, error) {
	var m models.MediaFile
	err := scanner.Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.SizeBytes,
		&m.Folder, &m.AltText, &m.StorageKey, &m.URL, &m.UploaderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MediaFilter narrows List results.
type MediaFilter struct {
	Folder string
	Search string // matches original filename
	Page   Page
}

// List returns media files, newest first, with the total row count for
// pagination headers.
func (s *MediaStore) List(f MediaFilter) ([]models.MediaFile, int, error) {
	where := "WHERE 1=1"
	var args []any
	if f.Folder != "" {
		args = append(args, f.Folder)
		where += fmt.Sprintf(" AND folder = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(" AND original_name ILIKE $%d", len(args))
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM media_files `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count media: %w", err)
	}

	limit, offset := f.Page.LimitOffset()
	args = append(args, limit, offset)
	rows, err := s.db.Query(
		`SELECT `+mediaColumns+` FROM media_files `+where+
			fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan media: %w", err)
		}
		files = append(files, *m)
	}
	return files, total, rows.Err()
}

// FindByID retrieves a media record by its UUID. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.MediaFile, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+` FROM media_files WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Create records an uploaded file and returns the stored row.
func (s *MediaStore) Create(m *models.MediaFile) (*models.MediaFile, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO media_files (filename, original_name, mime_type, size_bytes,
		                         folder, alt_text, storage_key, url, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, m.Filename, m.OriginalName, m.MimeType, m.SizeBytes,
		m.Folder, m.AltText, m.StorageKey, m.URL, m.UploaderID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return s.FindByID(id)
}

// SetAltText updates a file's alt text.
func (s *MediaStore) SetAltText(id uuid.UUID, altText *string) error {
	_, err := s.db.Exec(`UPDATE media_files SET alt_text = $1 WHERE id = $2`, altText, id)
	if err != nil {
		return fmt.Errorf("set media alt text: %w", err)
	}
	return nil
}

// Delete removes a media record by ID. The caller is responsible for
// removing the stored bytes.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media_files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
