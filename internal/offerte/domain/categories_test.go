package domain

import (
	"strings"
	"testing"
)

func TestCategoryTableShape(t *testing.T) {
	total := 0
	seen := make(map[WorkCategory]ServiceCategory)

	for _, sc := range ServiceCategories {
		works := AllowedWorkCategories(sc)
		if len(works) < 4 || len(works) > 6 {
			t.Errorf("%s: %d work categories, want 4-6", sc, len(works))
		}
		if sc.Label() == "" {
			t.Errorf("%s: missing label", sc)
		}
		for _, wc := range works {
			if prev, dup := seen[wc]; dup {
				t.Errorf("work category %s listed under %s and %s", wc, prev, sc)
			}
			seen[wc] = sc
			if !IsAllowedWorkCategory(sc, wc) {
				t.Errorf("IsAllowedWorkCategory(%s, %s) = false", sc, wc)
			}
		}
		total += len(works)
	}

	if len(ServiceCategories) != 6 {
		t.Fatalf("expected 6 service categories, got %d", len(ServiceCategories))
	}
	if total != 36 {
		t.Fatalf("expected 36 work categories, got %d", total)
	}
}

func TestAllowedWorkCategoriesIsACopy(t *testing.T) {
	works := AllowedWorkCategories(ServiceRoofing)
	works[0] = "kitchens"

	if IsAllowedWorkCategory(ServiceRoofing, "kitchens") {
		t.Fatal("mutating the returned slice must not change the table")
	}
	if AllowedWorkCategories(ServiceRoofing)[0] == "kitchens" {
		t.Fatal("table was mutated through returned slice")
	}
}

func TestAllowedWorkCategoriesUnknown(t *testing.T) {
	if got := AllowedWorkCategories(""); len(got) != 0 {
		t.Fatalf("expected empty set for unset category, got %v", got)
	}
	if got := AllowedWorkCategories("gardening"); len(got) != 0 {
		t.Fatalf("expected empty set for unknown category, got %v", got)
	}
	if IsAllowedWorkCategory(ServiceRoofing, "kitchens") {
		t.Fatal("kitchens must not be allowed under roofing")
	}
}

func TestLoadCategoriesRejectsOverlap(t *testing.T) {
	data := strings.Replace(string(categoriesYAML), "key: skylights", "key: kitchens", 1)
	if _, err := loadCategories([]byte(data)); err == nil {
		t.Fatal("expected error for work category listed twice")
	}
}

func TestLoadCategoriesRejectsUnknownService(t *testing.T) {
	data := strings.Replace(string(categoriesYAML), "key: installations", "key: gardening", 1)
	if _, err := loadCategories([]byte(data)); err == nil {
		t.Fatal("expected error for unknown service category")
	}
}
