package storage

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateContentType(t *testing.T) {
	tests := []struct {
		contentType string
		ok          bool
	}{
		{"image/jpeg", true},
		{"IMAGE/PNG", true},
		{"image/webp; q=0.9", true},
		{"image/gif", false},
		{"application/pdf", false},
		{"", false},
	}
	for _, tt := range tests {
		if err := validateContentType(tt.contentType); (err == nil) != tt.ok {
			t.Errorf("validateContentType(%q) = %v", tt.contentType, err)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	if err := validateFileSize(0, 10); err == nil {
		t.Error("zero size accepted")
	}
	if err := validateFileSize(11, 10); err == nil {
		t.Error("oversized file accepted")
	}
	if err := validateFileSize(10, 10); err != nil {
		t.Errorf("max size rejected: %v", err)
	}
}

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("12345678-9abc-def0-1234-56789abcdef0")
	tests := []struct {
		folder, name, want string
	}{
		{"offerte/abc", "Dak.JPG", "offerte/abc/Dak_12345678.jpg"},
		{"offerte/abc", "../../etc/passwd", "offerte/abc/passwd_12345678"},
		{"offerte/abc", `C:\Users\jan\foto.png`, "offerte/abc/foto_12345678.png"},
		{"offerte/abc", "", "offerte/abc/photo_12345678"},
	}
	for _, tt := range tests {
		got := ObjectKey(tt.folder, tt.name, id)
		if got != tt.want {
			t.Errorf("ObjectKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if strings.Contains(got, "..") {
			t.Errorf("key escapes folder: %q", got)
		}
	}
}
