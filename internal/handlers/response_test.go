// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"corpsite/internal/store"
)

func TestRespondData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type: got %q", ct)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != true {
		t.Errorf("success: got %v", body["success"])
	}
	data, _ := body["data"].(map[string]any)
	if data["hello"] != "world" {
		t.Errorf("data: got %v", body["data"])
	}
}

func TestRespondError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusConflict, "already exists")

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Errorf("success: got %v", body["success"])
	}
	if body["error"] != "already exists" {
		t.Errorf("error: got %v", body["error"])
	}
}

func TestRespondList_PaginationHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	page := store.Page{Number: 2, Size: 10}
	respondList(rec, []int{1, 2, 3}, 23, page)

	if got := rec.Header().Get("X-Total-Count"); got != "23" {
		t.Errorf("X-Total-Count: got %q, want 23", got)
	}
	if got := rec.Header().Get("X-Total-Pages"); got != "3" {
		t.Errorf("X-Total-Pages: got %q, want 3", got)
	}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name string
		body string
		ok   bool
	}{
		{"valid", `{"name":"x"}`, true},
		{"unknown field", `{"name":"x","bogus":1}`, false},
		{"trailing garbage", `{"name":"x"}{"again":true}`, false},
		{"not json", `name=x`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var p payload
			err := decodeBody(rec, req, &p)
			if (err == nil) != tt.ok {
				t.Errorf("decodeBody(%q) error = %v, want ok=%v", tt.body, err, tt.ok)
			}
		})
	}
}

func TestQueryPage(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantNum  int
		wantSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=5", 3, 5},
		{"page_size alias", "page=2&page_size=15", 2, 15},
		{"limit wins over alias", "limit=5&page_size=15", 1, 5},
		{"zero page clamps", "page=0", 1, 20},
		{"negative clamps", "page=-2&limit=-1", 1, 20},
		{"oversized clamps", "limit=10000", 1, 100},
		{"garbage ignored", "page=abc&limit=xyz", 1, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			page := queryPage(req).Normalize()
			if page.Number != tt.wantNum || page.Size != tt.wantSize {
				t.Errorf("queryPage(%q) = %+v, want number=%d size=%d", tt.query, page, tt.wantNum, tt.wantSize)
			}
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/"+id.String(), nil)
	req = withChiURLParam(req, "id", id.String())
	got, err := pathID(req)
	if err != nil {
		t.Fatalf("pathID: %v", err)
	}
	if got != id {
		t.Errorf("pathID: got %s, want %s", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
	req = withChiURLParam(req, "id", "not-a-uuid")
	if _, err := pathID(req); err == nil {
		t.Error("expected an error for a malformed id")
	}
}
