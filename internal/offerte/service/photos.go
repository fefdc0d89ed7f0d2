package service

import (
	"fmt"
	"math"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/platform/apperr"

	"github.com/google/uuid"
)

// PreviewProvider creates and releases displayable previews of photo blobs.
// Create is effectively instantaneous and Release cannot fail.
type PreviewProvider interface {
	Create(file domain.PhotoFile) domain.PreviewHandle
	Release(handle domain.PreviewHandle)
}

// handleOnlyPreviews hands out unique handles without keeping any preview
// bytes. It stands in when no PreviewProvider is configured.
type handleOnlyPreviews struct{}

func (handleOnlyPreviews) Create(domain.PhotoFile) domain.PreviewHandle {
	return domain.PreviewHandle("preview-" + uuid.NewString())
}

func (handleOnlyPreviews) Release(domain.PreviewHandle) {}

// PendingPhoto is a photo waiting for the upload collaborator.
type PendingPhoto struct {
	ID   uuid.UUID
	File domain.PhotoFile
}

type photoEntry struct {
	attachment domain.PhotoAttachment
	file       domain.PhotoFile
}

// PhotoManager owns the attachment collection of the details stage and the
// preview handle of every attachment in it. An attachment is removed from the
// collection in the same call that releases its handle, so a released handle
// is never reachable through the manager.
type PhotoManager struct {
	previews PreviewProvider
	newID    func() uuid.UUID
	entries  []*photoEntry
	held     map[domain.PreviewHandle]struct{}
}

// NewPhotoManager creates an empty manager. A nil previews provider yields
// handles that serve no bytes.
func NewPhotoManager(previews PreviewProvider, newID func() uuid.UUID) *PhotoManager {
	if previews == nil {
		previews = handleOnlyPreviews{}
	}
	if newID == nil {
		newID = uuid.New
	}
	return &PhotoManager{
		previews: previews,
		newID:    newID,
		held:     make(map[domain.PreviewHandle]struct{}),
	}
}

// Len returns the number of held attachments.
func (m *PhotoManager) Len() int { return len(m.entries) }

// check returns the rejection message for file, or "" when it is acceptable.
func (m *PhotoManager) check(file domain.PhotoFile) string {
	switch {
	case !domain.IsAcceptedPhotoType(file.ContentType):
		return domain.MsgPhotoTypeInvalid
	case file.Size <= 0:
		return domain.MsgPhotoEmpty
	case file.Size > domain.MaxPhotoSize:
		return domain.MsgPhotoTooLarge
	case len(m.entries) >= domain.MaxPhotos:
		return domain.MsgTooManyPhotos
	}
	return ""
}

// Add appends a pending attachment for file. It returns the rejection message
// instead when the file is not acceptable; a rejected file is dropped.
func (m *PhotoManager) Add(file domain.PhotoFile) (domain.PhotoAttachment, string) {
	if msg := m.check(file); msg != "" {
		return domain.PhotoAttachment{}, msg
	}

	handle := m.previews.Create(file)
	m.held[handle] = struct{}{}

	entry := &photoEntry{
		attachment: domain.PhotoAttachment{
			ID:           m.newID(),
			FileName:     file.Name,
			ContentType:  file.ContentType,
			FileSize:     file.Size,
			Preview:      handle,
			UploadStatus: domain.UploadPending,
			CapturedAt:   captureTime(file),
		},
		file: file,
	}
	m.entries = append(m.entries, entry)
	return copyAttachment(entry.attachment), ""
}

// Remove releases the attachment's preview and drops it from the collection.
func (m *PhotoManager) Remove(id uuid.UUID) error {
	i := m.indexOf(id)
	if i < 0 {
		return photoNotFound(id)
	}
	m.release(m.entries[i].attachment.Preview)
	m.entries[i] = nil
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return nil
}

// ClearAll releases every held preview and empties the collection. It returns
// the number of released handles.
func (m *PhotoManager) ClearAll() int {
	released := 0
	for _, e := range m.entries {
		if m.release(e.attachment.Preview) {
			released++
		}
	}
	m.entries = nil
	return released
}

// release is a no-op for handles not currently held, so no path can release
// a handle twice.
func (m *PhotoManager) release(handle domain.PreviewHandle) bool {
	if _, ok := m.held[handle]; !ok {
		return false
	}
	delete(m.held, handle)
	m.previews.Release(handle)
	return true
}

// UpdateDescription sets the description of one attachment.
func (m *PhotoManager) UpdateDescription(id uuid.UUID, text string) error {
	e := m.find(id)
	if e == nil {
		return photoNotFound(id)
	}
	e.attachment.Description = text
	return nil
}

// UpdateStatus moves one attachment along its upload state machine. An error
// status without a message gets a generic one; other statuses clear it.
func (m *PhotoManager) UpdateStatus(id uuid.UUID, status domain.UploadStatus, errorMessage string) error {
	e := m.find(id)
	if e == nil {
		return photoNotFound(id)
	}
	if !status.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid upload status %q", status))
	}
	if !e.attachment.UploadStatus.CanTransition(status) {
		return apperr.Conflict(fmt.Sprintf("cannot move photo from %s to %s", e.attachment.UploadStatus, status))
	}

	e.attachment.UploadStatus = status
	if status == domain.UploadError {
		if errorMessage == "" {
			errorMessage = domain.MsgPhotoUploadFailed
		}
		e.attachment.ErrorMessage = errorMessage
	} else {
		e.attachment.ErrorMessage = ""
	}
	return nil
}

// RecordUpload marks an uploading attachment as uploaded under storageKey.
func (m *PhotoManager) RecordUpload(id uuid.UUID, storageKey string) error {
	if err := m.UpdateStatus(id, domain.UploadUploaded, ""); err != nil {
		return err
	}
	m.find(id).attachment.StorageKey = storageKey
	return nil
}

// Pending returns the attachments still waiting to be uploaded.
func (m *PhotoManager) Pending() []PendingPhoto {
	var out []PendingPhoto
	for _, e := range m.entries {
		if e.attachment.UploadStatus == domain.UploadPending {
			out = append(out, PendingPhoto{ID: e.attachment.ID, File: e.file})
		}
	}
	return out
}

// Source returns the blob of one attachment.
func (m *PhotoManager) Source(id uuid.UUID) (domain.PhotoFile, bool) {
	e := m.find(id)
	if e == nil {
		return domain.PhotoFile{}, false
	}
	return e.file, true
}

// Snapshot returns copies of all attachments in insertion order.
func (m *PhotoManager) Snapshot() []domain.PhotoAttachment {
	out := make([]domain.PhotoAttachment, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, copyAttachment(e.attachment))
	}
	return out
}

// Summary computes upload progress from the current collection.
func (m *PhotoManager) Summary() domain.UploadSummary {
	s := domain.UploadSummary{Total: len(m.entries)}
	for _, e := range m.entries {
		switch e.attachment.UploadStatus {
		case domain.UploadUploaded:
			s.Uploaded++
		case domain.UploadError:
			s.Errors++
		}
	}
	if s.Total > 0 {
		s.ProgressPercent = int(math.Round(float64(s.Uploaded) / float64(s.Total) * 100))
		s.IsComplete = s.Uploaded == s.Total
	}
	return s
}

func (m *PhotoManager) indexOf(id uuid.UUID) int {
	for i, e := range m.entries {
		if e.attachment.ID == id {
			return i
		}
	}
	return -1
}

func (m *PhotoManager) find(id uuid.UUID) *photoEntry {
	if i := m.indexOf(id); i >= 0 {
		return m.entries[i]
	}
	return nil
}

func copyAttachment(a domain.PhotoAttachment) domain.PhotoAttachment {
	if a.CapturedAt != nil {
		t := *a.CapturedAt
		a.CapturedAt = &t
	}
	return a
}

func photoNotFound(id uuid.UUID) error {
	return apperr.NotFound(fmt.Sprintf("photo %s not found", id))
}
