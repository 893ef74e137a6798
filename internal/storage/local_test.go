package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalBackendSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	b, err := NewLocal(dir, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	body := strings.NewReader("hello bytes")
	url, err := b.Save(context.Background(), "2026/08/pic.png", "image/png", body, int64(body.Len()))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url != "http://localhost:8080/uploads/2026/08/pic.png" {
		t.Errorf("url: got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "2026", "08", "pic.png"))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "hello bytes" {
		t.Errorf("content: got %q", data)
	}

	if err := b.Delete(context.Background(), "2026/08/pic.png"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "2026", "08", "pic.png")); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}

	// Deleting again is not an error.
	if err := b.Delete(context.Background(), "2026/08/pic.png"); err != nil {
		t.Errorf("Delete (missing): %v", err)
	}
}

func TestLocalBackendKeyTraversal(t *testing.T) {
	dir := t.TempDir()
	b, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	// A traversal key must resolve inside the base directory.
	body := strings.NewReader("x")
	_, err = b.Save(context.Background(), "../../etc/escape.txt", "text/plain", body, 1)
	if err != nil {
		// Rejecting outright is fine too.
		return
	}
	if _, statErr := os.Stat(filepath.Join(dir, "etc", "escape.txt")); statErr != nil {
		t.Error("expected traversal key to be confined to the base directory")
	}
}
