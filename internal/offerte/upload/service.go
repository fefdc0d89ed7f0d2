// Package upload moves pending intake photos to object storage and reports
// the outcome back to the details stage through its status updates.
package upload

import (
	"bytes"
	"context"
	"fmt"

	"offerte_backend/internal/adapters/storage"
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 3

// Sessions gives locked access to a session's flow.
type Sessions interface {
	With(ctx context.Context, id uuid.UUID, fn func(*service.Flow) error) error
}

// Service uploads pending photos for one session at a time.
type Service struct {
	sessions    Sessions
	storage     storage.StorageService
	bucket      string
	log         *logger.Logger
	concurrency int
}

// New creates an upload service. A nil storage disables uploads.
func New(sessions Sessions, store storage.StorageService, bucket string, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		sessions:    sessions,
		storage:     store,
		bucket:      bucket,
		log:         log,
		concurrency: defaultConcurrency,
	}
}

// Enabled reports whether a storage backend is configured.
func (s *Service) Enabled() bool { return s != nil && s.storage != nil }

type result struct {
	id  uuid.UUID
	key string
	err error
}

// UploadPending uploads every pending photo of the session. Photos are
// marked uploading under the session lock, transferred without holding it,
// and then marked uploaded or error. A failed photo goes back to pending on
// the next retry by the visitor.
func (s *Service) UploadPending(ctx context.Context, sessionID uuid.UUID) (domain.UploadSummary, error) {
	const op = "upload.UploadPending"
	if !s.Enabled() {
		return domain.UploadSummary{}, apperr.Unavailable("photo storage is not configured").WithOp(op)
	}

	var pending []service.PendingPhoto
	err := s.sessions.With(ctx, sessionID, func(f *service.Flow) error {
		pending = f.Details.PendingPhotos()
		for _, p := range pending {
			if err := f.Details.UpdatePhotoStatus(p.ID, domain.UploadUploading, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.UploadSummary{}, err
	}

	results := s.transfer(ctx, sessionID, pending)

	var summary domain.UploadSummary
	var orphans []string
	err = s.sessions.With(ctx, sessionID, func(f *service.Flow) error {
		for _, r := range results {
			var updateErr error
			if r.err != nil {
				updateErr = f.Details.UpdatePhotoStatus(r.id, domain.UploadError, domain.MsgPhotoUploadFailed)
			} else {
				updateErr = f.Details.RecordPhotoUpload(r.id, r.key)
			}
			// The visitor removed the photo while it was in flight.
			if apperr.Is(updateErr, apperr.KindNotFound) {
				if r.err == nil {
					orphans = append(orphans, r.key)
				}
				continue
			}
			if updateErr != nil {
				return updateErr
			}
		}
		summary = f.Details.UploadStatusSummary()
		return nil
	})
	// The session ended (submitted, abandoned or expired) during the
	// transfer; nothing references the stored objects any more.
	if apperr.Is(err, apperr.KindNotFound) || apperr.Is(err, apperr.KindGone) {
		orphans = orphans[:0]
		for _, r := range results {
			if r.err == nil {
				orphans = append(orphans, r.key)
			}
		}
	}
	s.deleteOrphans(ctx, orphans)
	if err != nil {
		return domain.UploadSummary{}, err
	}
	return summary, nil
}

func (s *Service) transfer(ctx context.Context, sessionID uuid.UUID, pending []service.PendingPhoto) []result {
	results := make([]result, len(pending))
	folder := fmt.Sprintf("offerte/%s", sessionID)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, p := range pending {
		g.Go(func() error {
			key, err := s.storage.UploadFile(gctx, s.bucket, folder, p.File.Name, p.File.ContentType,
				bytes.NewReader(p.File.Data), int64(len(p.File.Data)))
			if err != nil {
				s.log.WithContext(ctx).Warn("photo upload failed", "photo_id", p.ID.String(), "error", err)
			}
			results[i] = result{id: p.ID, key: key, err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (s *Service) deleteOrphans(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.DeleteObject(ctx, s.bucket, key); err != nil {
			s.log.WithContext(ctx).Warn("failed to delete orphaned photo", "key", key, "error", err)
		}
	}
}
