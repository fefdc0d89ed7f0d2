package domain

import "strings"

const (
	// MaxPhotos is the maximum number of attachments held at any time.
	MaxPhotos = 10
	// MaxPhotoSize is the per-file ceiling in bytes (5 MiB).
	MaxPhotoSize int64 = 5 << 20

	// DefaultCountry is the country a new location starts with.
	DefaultCountry = "Netherlands"

	MinConstructionYear = 1800
	// ConstructionYearSlack allows planned new builds a few years ahead.
	ConstructionYearSlack = 5
)

var acceptedPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// IsAcceptedPhotoType reports whether contentType is jpeg, png or webp.
// Parameters such as "; charset" are ignored.
func IsAcceptedPhotoType(contentType string) bool {
	normalized := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	if normalized == "image/jpg" {
		normalized = "image/jpeg"
	}
	return acceptedPhotoTypes[normalized]
}

// AcceptedPhotoTypes lists the accepted MIME types for photo attachments.
func AcceptedPhotoTypes() []string {
	return []string{"image/jpeg", "image/png", "image/webp"}
}
