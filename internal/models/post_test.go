package models

import "testing"

// TestCanTransitionPost verifies the allowed post status moves.
func TestCanTransitionPost(t *testing.T) {
	tests := []struct {
		name string
		from PostStatus
		to   PostStatus
		want bool
	}{
		{name: "draft to review", from: PostStatusDraft, to: PostStatusReview, want: true},
		{name: "draft to published", from: PostStatusDraft, to: PostStatusPublished, want: true},
		{name: "draft to archived", from: PostStatusDraft, to: PostStatusArchived, want: false},
		{name: "review to published", from: PostStatusReview, to: PostStatusPublished, want: true},
		{name: "review to draft", from: PostStatusReview, to: PostStatusDraft, want: true},
		{name: "review to archived", from: PostStatusReview, to: PostStatusArchived, want: false},
		{name: "published to archived", from: PostStatusPublished, to: PostStatusArchived, want: true},
		{name: "published to draft", from: PostStatusPublished, to: PostStatusDraft, want: true},
		{name: "published to review", from: PostStatusPublished, to: PostStatusReview, want: false},
		{name: "archived to draft", from: PostStatusArchived, to: PostStatusDraft, want: true},
		{name: "archived to published", from: PostStatusArchived, to: PostStatusPublished, want: false},
		{name: "same status", from: PostStatusDraft, to: PostStatusDraft, want: false},
		{name: "unknown from", from: PostStatus("bogus"), to: PostStatusDraft, want: false},
		{name: "unknown to", from: PostStatusDraft, to: PostStatus("bogus"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionPost(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransitionPost(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

// TestValidPostStatus verifies recognition of the four post states.
func TestValidPostStatus(t *testing.T) {
	for _, s := range []PostStatus{PostStatusDraft, PostStatusReview, PostStatusPublished, PostStatusArchived} {
		if !ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []PostStatus{"", "open", "DRAFT", "deleted"} {
		if ValidPostStatus(s) {
			t.Errorf("ValidPostStatus(%q) = true, want false", s)
		}
	}
}

// TestPostIsPublished verifies that IsPublished returns true only for the
// "published" status.
func TestPostIsPublished(t *testing.T) {
	tests := []struct {
		name   string
		status PostStatus
		want   bool
	}{
		{name: "published", status: PostStatusPublished, want: true},
		{name: "draft", status: PostStatusDraft, want: false},
		{name: "review", status: PostStatusReview, want: false},
		{name: "archived", status: PostStatusArchived, want: false},
		{name: "empty", status: PostStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status}
			if got := p.IsPublished(); got != tt.want {
				t.Errorf("Post{Status: %q}.IsPublished() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}
