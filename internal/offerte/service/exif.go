package service

import (
	"bytes"
	"strings"
	"time"

	"offerte_backend/internal/offerte/domain"

	"github.com/rwcarlsen/goexif/exif"
)

// captureTime reads the EXIF DateTime of a JPEG. Missing or unreadable
// metadata yields nil; it never rejects the photo.
func captureTime(file domain.PhotoFile) *time.Time {
	if !strings.EqualFold(strings.TrimSpace(strings.Split(file.ContentType, ";")[0]), "image/jpeg") || len(file.Data) == 0 {
		return nil
	}
	x, err := exif.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return nil
	}
	t, err := x.DateTime()
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}
