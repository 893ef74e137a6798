// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"corpsite/internal/models"
)

func TestAuthorStoreEnsureForUser(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)
	authors := NewAuthorStore(db)

	email := "test-ensure-author@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := users.Create("test-ensure-author", email, "pass", "Byline User", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	// No author row exists yet.
	existing, err := authors.FindByUserID(user.ID)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if existing != nil {
		t.Fatal("expected no author before EnsureForUser")
	}

	first, err := authors.EnsureForUser(user)
	if err != nil {
		t.Fatalf("EnsureForUser: %v", err)
	}
	if first.Name != "Byline User" {
		t.Errorf("name: got %q, want %q", first.Name, "Byline User")
	}
	if first.UserID == nil || *first.UserID != user.ID {
		t.Errorf("user link: got %v, want %s", first.UserID, user.ID)
	}

	// Second call returns the same row, no duplicate.
	second, err := authors.EnsureForUser(user)
	if err != nil {
		t.Fatalf("EnsureForUser (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected idempotent result: first %s, second %s", first.ID, second.ID)
	}
}

func TestAuthorStoreCreateSlug(t *testing.T) {
	db := testDB(t)
	s := NewAuthorStore(db)

	t.Cleanup(func() { cleanTable(t, db, "blog_authors", "jane-q-doe") })

	a, err := s.Create(&models.Author{Name: "Jane Q. Doe", Active: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Slug != "jane-q-doe" {
		t.Errorf("slug: got %q, want %q", a.Slug, "jane-q-doe")
	}
}
