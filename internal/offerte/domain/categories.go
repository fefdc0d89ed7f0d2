package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ServiceCategory is the top level of the two-level work classification.
type ServiceCategory string

const (
	ServiceTotalRenovation ServiceCategory = "total_renovation"
	ServiceStructural      ServiceCategory = "structural"
	ServiceRoofing         ServiceCategory = "roofing"
	ServiceFinishing       ServiceCategory = "finishing"
	ServiceInterior        ServiceCategory = "interior"
	ServiceInstallations   ServiceCategory = "installations"
)

// ServiceCategories lists every service category in display order.
var ServiceCategories = []ServiceCategory{
	ServiceTotalRenovation,
	ServiceStructural,
	ServiceRoofing,
	ServiceFinishing,
	ServiceInterior,
	ServiceInstallations,
}

// WorkCategory is a leaf category; it is only meaningful within the
// ServiceCategory that lists it.
type WorkCategory string

//go:embed categories.yaml
var categoriesYAML []byte

type categoryFile struct {
	ServiceCategories []struct {
		Key            ServiceCategory `yaml:"key"`
		Label          string          `yaml:"label"`
		WorkCategories []struct {
			Key   WorkCategory `yaml:"key"`
			Label string       `yaml:"label"`
		} `yaml:"work_categories"`
	} `yaml:"service_categories"`
}

type categoryTable struct {
	allowed       map[ServiceCategory][]WorkCategory
	owner         map[WorkCategory]ServiceCategory
	serviceLabels map[ServiceCategory]string
	workLabels    map[WorkCategory]string
}

// categories is built once at init and never mutated afterwards.
var categories = mustLoadCategories(categoriesYAML)

func mustLoadCategories(data []byte) *categoryTable {
	t, err := loadCategories(data)
	if err != nil {
		panic("offerte categories: " + err.Error())
	}
	return t
}

func loadCategories(data []byte) (*categoryTable, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	t := &categoryTable{
		allowed:       make(map[ServiceCategory][]WorkCategory),
		owner:         make(map[WorkCategory]ServiceCategory),
		serviceLabels: make(map[ServiceCategory]string),
		workLabels:    make(map[WorkCategory]string),
	}

	known := make(map[ServiceCategory]bool, len(ServiceCategories))
	for _, sc := range ServiceCategories {
		known[sc] = true
	}

	for _, sc := range file.ServiceCategories {
		if !known[sc.Key] {
			return nil, fmt.Errorf("unknown service category %q", sc.Key)
		}
		if _, dup := t.allowed[sc.Key]; dup {
			return nil, fmt.Errorf("duplicate service category %q", sc.Key)
		}
		if n := len(sc.WorkCategories); n < 4 || n > 6 {
			return nil, fmt.Errorf("service category %q has %d work categories, want 4-6", sc.Key, n)
		}
		t.serviceLabels[sc.Key] = sc.Label
		works := make([]WorkCategory, 0, len(sc.WorkCategories))
		for _, wc := range sc.WorkCategories {
			if prev, dup := t.owner[wc.Key]; dup {
				return nil, fmt.Errorf("work category %q listed under both %q and %q", wc.Key, prev, sc.Key)
			}
			t.owner[wc.Key] = sc.Key
			t.workLabels[wc.Key] = wc.Label
			works = append(works, wc.Key)
		}
		t.allowed[sc.Key] = works
	}

	for _, sc := range ServiceCategories {
		if _, ok := t.allowed[sc]; !ok {
			return nil, fmt.Errorf("service category %q missing from table", sc)
		}
	}
	return t, nil
}

// Valid reports whether c is one of the six service categories.
func (c ServiceCategory) Valid() bool {
	_, ok := categories.allowed[c]
	return ok
}

// Label returns the display label, or "" for an unknown category.
func (c ServiceCategory) Label() string { return categories.serviceLabels[c] }

// Valid reports whether w appears anywhere in the table.
func (w WorkCategory) Valid() bool {
	_, ok := categories.owner[w]
	return ok
}

// Label returns the display label, or "" for an unknown category.
func (w WorkCategory) Label() string { return categories.workLabels[w] }

// AllowedWorkCategories returns the work categories allowed for c, in display
// order. Unknown or empty categories yield an empty slice. The result is a copy.
func AllowedWorkCategories(c ServiceCategory) []WorkCategory {
	works := categories.allowed[c]
	out := make([]WorkCategory, len(works))
	copy(out, works)
	return out
}

// IsAllowedWorkCategory reports whether w belongs to c's allowed set.
func IsAllowedWorkCategory(c ServiceCategory, w WorkCategory) bool {
	owner, ok := categories.owner[w]
	return ok && owner == c
}
