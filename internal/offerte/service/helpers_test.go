package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"offerte_backend/internal/offerte/domain"
)

// countingPreviews records how often each handle was created and released.
type countingPreviews struct {
	mu       sync.Mutex
	next     int
	created  []domain.PreviewHandle
	released map[domain.PreviewHandle]int
}

func newCountingPreviews() *countingPreviews {
	return &countingPreviews{released: make(map[domain.PreviewHandle]int)}
}

func (p *countingPreviews) Create(domain.PhotoFile) domain.PreviewHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	h := domain.PreviewHandle(fmt.Sprintf("preview-%d", p.next))
	p.created = append(p.created, h)
	return h
}

func (p *countingPreviews) Release(h domain.PreviewHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released[h]++
}

func (p *countingPreviews) releases(h domain.PreviewHandle) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released[h]
}

func (p *countingPreviews) outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, h := range p.created {
		if p.released[h] == 0 {
			n++
		}
	}
	return n
}

func (p *countingPreviews) assertReleasedOnce(t *testing.T) {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, h := range p.created {
		if got := p.released[h]; got != 1 {
			t.Errorf("handle %s released %d times, want 1", h, got)
		}
	}
}

func jpeg(name string, size int64) domain.PhotoFile {
	return domain.PhotoFile{Name: name, ContentType: "image/jpeg", Size: size, Data: []byte{0xFF, 0xD8}}
}

// fixedClock returns a clock stopped at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2026, time.March, 10, 23, 30, 0, 0, time.FixedZone("CET", 3600))
