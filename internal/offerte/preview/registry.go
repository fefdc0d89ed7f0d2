// Package preview keeps in-memory photo previews addressable by handle so the
// intake form can show thumbnails before anything is uploaded.
package preview

import (
	"sync"

	"offerte_backend/internal/offerte/domain"

	"github.com/google/uuid"
)

// Preview is the displayable content behind a handle.
type Preview struct {
	ContentType string
	Data        []byte
}

// Registry implements service.PreviewProvider for all sessions of the process.
type Registry struct {
	mu    sync.RWMutex
	items map[domain.PreviewHandle]Preview
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[domain.PreviewHandle]Preview)}
}

// Create stores the file's bytes under a fresh, unguessable handle.
func (r *Registry) Create(file domain.PhotoFile) domain.PreviewHandle {
	handle := domain.PreviewHandle("preview-" + uuid.NewString())
	r.mu.Lock()
	r.items[handle] = Preview{ContentType: file.ContentType, Data: file.Data}
	r.mu.Unlock()
	return handle
}

// Release forgets a handle. Unknown handles are ignored.
func (r *Registry) Release(handle domain.PreviewHandle) {
	r.mu.Lock()
	delete(r.items, handle)
	r.mu.Unlock()
}

// Get returns the preview behind handle.
func (r *Registry) Get(handle domain.PreviewHandle) (Preview, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[handle]
	return p, ok
}

// Len returns the number of live previews.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
