// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"corpsite/internal/models"
)

func TestJobStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewJobStore(db)

	dep := testDepartment(t, db, "Create Job Dep")
	loc := testLocation(t, db, "Create Job Loc")
	t.Cleanup(func() { cleanTable(t, db, "jobs", "backend-engineer-test") })

	job, err := s.Create(&models.Job{
		Title:          "Backend Engineer Test",
		Description:    "Build things.",
		DepartmentID:   dep.ID,
		LocationID:     loc.ID,
		EmploymentType: models.EmploymentFullTime,
		Level:          models.LevelSenior,
		Status:         models.JobStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if job.Slug != "backend-engineer-test" {
		t.Errorf("slug: got %q, want %q", job.Slug, "backend-engineer-test")
	}
	if job.PublishedAt != nil {
		t.Error("draft job must not have published_at")
	}
	if job.Department == nil || job.Department.Name != dep.Name {
		t.Errorf("department ref not populated: %+v", job.Department)
	}
	if job.Location == nil || !job.Location.Remote {
		t.Errorf("location ref not populated: %+v", job.Location)
	}
}

func TestJobStoreReopenKeepsPublishDate(t *testing.T) {
	db := testDB(t)
	s := NewJobStore(db)

	dep := testDepartment(t, db, "Reopen Dep")
	loc := testLocation(t, db, "Reopen Loc")
	t.Cleanup(func() { cleanTable(t, db, "jobs", "reopen-test-job") })

	job, err := s.Create(&models.Job{
		Title: "Reopen Test Job", DepartmentID: dep.ID, LocationID: loc.ID,
		EmploymentType: models.EmploymentContract, Level: models.LevelMid,
		Status: models.JobStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetStatus(job.ID, models.JobStatusOpen); err != nil {
		t.Fatalf("SetStatus open: %v", err)
	}
	opened, _ := s.FindByID(job.ID)
	if opened.PublishedAt == nil {
		t.Fatal("expected published_at stamped on first open")
	}
	firstStamp := *opened.PublishedAt

	// Close and reopen. Unlike posts, the original date sticks.
	if err := s.SetStatus(job.ID, models.JobStatusClosed); err != nil {
		t.Fatalf("SetStatus closed: %v", err)
	}
	if err := s.SetStatus(job.ID, models.JobStatusOpen); err != nil {
		t.Fatalf("SetStatus reopen: %v", err)
	}

	reopened, _ := s.FindByID(job.ID)
	if !reopened.PublishedAt.Equal(firstStamp) {
		t.Errorf("expected publish date preserved on reopen: first %v, after %v",
			firstStamp, *reopened.PublishedAt)
	}
}

func TestJobStorePublicVisibility(t *testing.T) {
	db := testDB(t)
	s := NewJobStore(db)

	dep := testDepartment(t, db, "Job Vis Dep")
	loc := testLocation(t, db, "Job Vis Loc")
	t.Cleanup(func() { cleanTable(t, db, "jobs", "job-visibility-test") })

	job, err := s.Create(&models.Job{
		Title: "Job Visibility Test", DepartmentID: dep.ID, LocationID: loc.ID,
		EmploymentType: models.EmploymentFullTime, Level: models.LevelJunior,
		Status: models.JobStatusDraft,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindOpenBySlug(job.Slug)
	if err != nil {
		t.Fatalf("FindOpenBySlug (draft): %v", err)
	}
	if found != nil {
		t.Error("draft job must not be visible by public slug lookup")
	}

	s.SetStatus(job.ID, models.JobStatusOpen)
	found, err = s.FindOpenBySlug(job.Slug)
	if err != nil {
		t.Fatalf("FindOpenBySlug (open): %v", err)
	}
	if found == nil {
		t.Fatal("open job must be visible by public slug lookup")
	}

	// Closing hides it again.
	s.SetStatus(job.ID, models.JobStatusClosed)
	found, _ = s.FindOpenBySlug(job.Slug)
	if found != nil {
		t.Error("closed job must not be visible by public slug lookup")
	}
}

func TestJobStoreListFilters(t *testing.T) {
	db := testDB(t)
	s := NewJobStore(db)

	dep := testDepartment(t, db, "Job Filter Dep")
	loc := testLocation(t, db, "Job Filter Loc")
	t.Cleanup(func() { cleanTable(t, db, "jobs", "job-filter-test") })

	s.Create(&models.Job{
		Title: "Job Filter Test A", DepartmentID: dep.ID, LocationID: loc.ID,
		EmploymentType: models.EmploymentFullTime, Level: models.LevelSenior,
		Status: models.JobStatusDraft,
	})
	s.Create(&models.Job{
		Title: "Job Filter Test B", DepartmentID: dep.ID, LocationID: loc.ID,
		EmploymentType: models.EmploymentInternship, Level: models.LevelJunior,
		Status: models.JobStatusDraft,
	})

	jobs, total, err := s.List(JobFilter{
		DepartmentID:   &dep.ID,
		EmploymentType: models.EmploymentInternship,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Errorf("total: got %d, want 1", total)
	}
	for _, j := range jobs {
		if j.EmploymentType != models.EmploymentInternship {
			t.Errorf("filter leak: got employment type %q", j.EmploymentType)
		}
	}
}
