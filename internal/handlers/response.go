// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"corpsite/internal/store"
)

// envelope is the uniform response wrapper. Success responses carry data,
// error responses carry a machine-readable error string. Message is an
// optional human-readable note on mutations.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// maxBodyBytes caps JSON request bodies. Media uploads have their own limit.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// respondData writes a success envelope with a payload.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// respondMessage writes a success envelope with no payload.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

// respondList writes a success envelope for a paginated collection and
// sets the X-Total-Count and X-Total-Pages headers.
func respondList(w http.ResponseWriter, data any, total int, page store.Page) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	w.Header().Set("X-Total-Pages", strconv.Itoa(page.TotalPages(total)))
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// respondInternal logs the underlying error and hides it from the client.
func respondInternal(w http.ResponseWriter, context string, err error) {
	slog.Error(context, "error", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody parses a JSON request body into dst, rejecting unknown
// fields and oversized payloads.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Reject trailing garbage after the JSON object.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// pathID extracts and parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// queryPage reads the page and limit query parameters. page_size is
// accepted as an alias for limit. Out-of-range values are normalized by
// the store layer.
func queryPage(r *http.Request) store.Page {
	q := r.URL.Query()
	number, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("limit"))
	if size == 0 {
		size, _ = strconv.Atoi(q.Get("page_size"))
	}
	return store.Page{Number: number, Size: size}
}

// queryUUID parses an optional UUID query parameter. Returns nil when the
// parameter is absent or malformed.
func queryUUID(r *http.Request, name string) *uuid.UUID {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}
