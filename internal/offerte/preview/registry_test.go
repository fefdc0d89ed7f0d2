package preview

import (
	"strings"
	"sync"
	"testing"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/service"
)

var _ service.PreviewProvider = (*Registry)(nil)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	file := domain.PhotoFile{Name: "a.png", ContentType: "image/png", Size: 3, Data: []byte("png")}

	h := r.Create(file)
	if !strings.HasPrefix(string(h), "preview-") {
		t.Errorf("handle = %q", h)
	}
	p, ok := r.Get(h)
	if !ok || p.ContentType != "image/png" || string(p.Data) != "png" {
		t.Fatalf("Get = %+v, %v", p, ok)
	}

	other := r.Create(file)
	if other == h {
		t.Error("handles must be unique")
	}

	r.Release(h)
	r.Release(h)
	if _, ok := r.Get(h); ok {
		t.Error("released handle still resolvable")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := r.Create(domain.PhotoFile{ContentType: "image/jpeg", Size: 1, Data: []byte{1}})
			r.Get(h)
			r.Release(h)
		}()
	}
	wg.Wait()
	if r.Len() != 0 {
		t.Errorf("Len = %d", r.Len())
	}
}

func TestRegistryWithDetailsController(t *testing.T) {
	r := NewRegistry()
	c := service.NewDetailsController(r, nil, nil)
	for i := 0; i < 3; i++ {
		c.AddPhoto(domain.PhotoFile{Name: "x.jpg", ContentType: "image/jpeg", Size: 1, Data: []byte{1}})
	}
	if r.Len() != 3 {
		t.Fatalf("Len = %d", r.Len())
	}
	c.Reset()
	if r.Len() != 0 {
		t.Errorf("reset leaked %d previews", r.Len())
	}
}
