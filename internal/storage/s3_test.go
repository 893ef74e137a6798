package storage

import "testing"

func TestNewS3RequiresConfig(t *testing.T) {
	tests := []struct {
		name      string
		endpoint  string
		accessKey string
		secretKey string
		bucket    string
	}{
		{"missing endpoint", "", "key", "secret", "media"},
		{"missing access key", "https://s3.example.com", "", "secret", "media"},
		{"missing secret key", "https://s3.example.com", "key", "", "media"},
		{"missing bucket", "https://s3.example.com", "key", "secret", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := NewS3(tt.endpoint, "us-east-1", tt.accessKey, tt.secretKey, tt.bucket, "")
			if err == nil {
				t.Fatal("expected an error for incomplete configuration")
			}
			if backend != nil {
				t.Errorf("expected nil backend, got %+v", backend)
			}
		})
	}
}

func TestS3FileURL(t *testing.T) {
	b, err := NewS3("https://s3.example.com/", "us-east-1", "key", "secret", "media", "")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got := b.fileURL("2026/01/pic.png"); got != "https://s3.example.com/media/2026/01/pic.png" {
		t.Errorf("path-style URL: got %q", got)
	}

	b, err = NewS3("https://s3.example.com", "us-east-1", "key", "secret", "media", "https://cdn.example.com/")
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got := b.fileURL("2026/01/pic.png"); got != "https://cdn.example.com/2026/01/pic.png" {
		t.Errorf("public URL: got %q", got)
	}
}
