package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/preview"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/internal/offerte/session"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	fail    func(fileName string) bool
	// hook runs before the object is stored.
	hook func()
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) UploadFile(_ context.Context, bucket, folder, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if f.hook != nil {
		f.hook()
	}
	if f.fail != nil && f.fail(fileName) {
		return "", errors.New("connection reset")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	key := folder + "/" + fileName
	f.mu.Lock()
	f.objects[key] = data
	f.mu.Unlock()
	return key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) EnsureBucketExists(context.Context, string) error { return nil }

func (f *fakeStorage) ValidateContentType(string) error { return nil }

func (f *fakeStorage) ValidateFileSize(int64) error { return nil }

func setup(t *testing.T, names ...string) (*session.Store, uuid.UUID, []uuid.UUID) {
	t.Helper()
	store := session.NewStore(session.Options{
		Flow: service.FlowDeps{Previews: preview.NewRegistry()},
		Log:  logger.Discard(),
	})
	sess := store.Create()
	var ids []uuid.UUID
	err := store.With(context.Background(), sess.ID, func(f *service.Flow) error {
		for _, name := range names {
			p, ok := f.Details.AddPhoto(domain.PhotoFile{Name: name, ContentType: "image/jpeg", Size: 3, Data: []byte("img")})
			if !ok {
				return errors.New("rejected")
			}
			ids = append(ids, p.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return store, sess.ID, ids
}

func photos(t *testing.T, store *session.Store, id uuid.UUID) []domain.PhotoAttachment {
	t.Helper()
	var out []domain.PhotoAttachment
	_ = store.With(context.Background(), id, func(f *service.Flow) error {
		out = f.Details.Values().Photos
		return nil
	})
	return out
}

func TestUploadPendingUploadsEveryPhoto(t *testing.T) {
	store, sessionID, _ := setup(t, "a.jpg", "b.jpg", "c.jpg")
	fs := newFakeStorage()
	svc := New(store, fs, "offerte-photos", logger.Discard())

	summary, err := svc.UploadPending(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.IsComplete || summary.Uploaded != 3 || summary.ProgressPercent != 100 {
		t.Errorf("summary = %+v", summary)
	}
	for _, p := range photos(t, store, sessionID) {
		if p.UploadStatus != domain.UploadUploaded || !strings.HasPrefix(p.StorageKey, "offerte/"+sessionID.String()) {
			t.Errorf("photo = %+v", p)
		}
	}
	if len(fs.objects) != 3 {
		t.Errorf("stored %d objects", len(fs.objects))
	}
}

func TestUploadPendingMarksFailures(t *testing.T) {
	store, sessionID, _ := setup(t, "ok.jpg", "bad.jpg")
	fs := newFakeStorage()
	fs.fail = func(name string) bool { return name == "bad.jpg" }
	svc := New(store, fs, "b", logger.Discard())

	summary, err := svc.UploadPending(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Uploaded != 1 || summary.Errors != 1 || summary.IsComplete {
		t.Errorf("summary = %+v", summary)
	}
	for _, p := range photos(t, store, sessionID) {
		if p.FileName == "bad.jpg" && (p.UploadStatus != domain.UploadError || p.ErrorMessage != domain.MsgPhotoUploadFailed) {
			t.Errorf("failed photo = %+v", p)
		}
	}

	// Retry: the visitor moves the failed photo back to pending.
	_ = store.With(context.Background(), sessionID, func(f *service.Flow) error {
		for _, p := range f.Details.Values().Photos {
			if p.UploadStatus == domain.UploadError {
				return f.Details.UpdatePhotoStatus(p.ID, domain.UploadPending, "")
			}
		}
		return nil
	})
	fs.fail = nil
	summary, err = svc.UploadPending(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if !summary.IsComplete {
		t.Errorf("summary after retry = %+v", summary)
	}
}

func TestUploadPendingDeletesObjectOfRemovedPhoto(t *testing.T) {
	store, sessionID, ids := setup(t, "a.jpg")
	fs := newFakeStorage()
	svc := New(store, fs, "b", logger.Discard())
	fs.hook = func() {
		_ = store.With(context.Background(), sessionID, func(f *service.Flow) error {
			return f.Details.RemovePhoto(ids[0])
		})
	}

	summary, err := svc.UploadPending(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if len(fs.deleted) != 1 || len(fs.objects) != 0 {
		t.Errorf("orphan not deleted: deleted=%v objects=%d", fs.deleted, len(fs.objects))
	}
}

func TestUploadPendingDeletesObjectsWhenSessionEnds(t *testing.T) {
	store, sessionID, _ := setup(t, "a.jpg", "b.jpg", "bad.jpg")
	fs := newFakeStorage()
	fs.fail = func(name string) bool { return name == "bad.jpg" }
	svc := New(store, fs, "b", logger.Discard())
	var once sync.Once
	fs.hook = func() {
		once.Do(func() {
			_ = store.Delete(context.Background(), sessionID)
		})
	}

	_, err := svc.UploadPending(context.Background(), sessionID)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err = %v", err)
	}
	if len(fs.objects) != 0 {
		t.Errorf("objects left behind: %d", len(fs.objects))
	}
	if len(fs.deleted) != 2 {
		t.Errorf("deleted = %v, want the two stored objects", fs.deleted)
	}
}

func TestUploadPendingWithoutStorage(t *testing.T) {
	store, sessionID, _ := setup(t, "a.jpg")
	svc := New(store, nil, "b", logger.Discard())
	if svc.Enabled() {
		t.Fatal("service without storage should be disabled")
	}
	if _, err := svc.UploadPending(context.Background(), sessionID); !apperr.Is(err, apperr.KindUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestUploadPendingUnknownSession(t *testing.T) {
	store, _, _ := setup(t)
	svc := New(store, newFakeStorage(), "b", logger.Discard())
	if _, err := svc.UploadPending(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v", err)
	}
}
