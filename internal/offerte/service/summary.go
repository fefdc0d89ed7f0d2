package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// summaryDescriptionLength caps the description excerpt on review screens.
const summaryDescriptionLength = 80

// ProjectSummary is a short digest of stage 3 for review screens. It is
// never used for validation.
type ProjectSummary struct {
	Description     string `json:"description"`
	ServiceCategory string `json:"serviceCategory,omitempty"`
	WorkCategory    string `json:"workCategory,omitempty"`
	SurfaceArea     string `json:"surfaceArea,omitempty"`
	Urgency         string `json:"urgency"`
	PhotoCount      int    `json:"photoCount"`
}

// String joins the non-empty parts into one line.
func (s ProjectSummary) String() string {
	parts := make([]string, 0, 6)
	category := s.WorkCategory
	if s.ServiceCategory != "" {
		if category != "" {
			category = fmt.Sprintf("%s (%s)", category, s.ServiceCategory)
		} else {
			category = s.ServiceCategory
		}
	}
	for _, p := range []string{category, s.SurfaceArea, s.Urgency} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if s.PhotoCount == 1 {
		parts = append(parts, "1 foto")
	} else if s.PhotoCount > 1 {
		parts = append(parts, fmt.Sprintf("%d foto's", s.PhotoCount))
	}
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	return strings.Join(parts, " | ")
}

// ProjectSummary digests the current details and photo count.
func (c *DetailsController) ProjectSummary() ProjectSummary {
	d := c.Controller.Values()
	return ProjectSummary{
		Description:     truncate(strings.TrimSpace(d.Description), summaryDescriptionLength),
		ServiceCategory: d.ServiceCategory.Label(),
		WorkCategory:    d.WorkCategory.Label(),
		SurfaceArea:     d.SurfaceArea.Label(),
		Urgency:         d.Urgency.Label(),
		PhotoCount:      c.photos.Len(),
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "…"
}
