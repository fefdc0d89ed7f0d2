// Package handler exposes the intake flow over HTTP.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"offerte_backend/internal/events"
	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/preview"
	"offerte_backend/internal/offerte/service"
	"offerte_backend/internal/offerte/session"
	"offerte_backend/internal/offerte/transport"
	"offerte_backend/internal/offerte/upload"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/httpkit"
	"offerte_backend/platform/logger"
	"offerte_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
	msgInvalidPhotoID   = "invalid photo id"
)

// Handler handles HTTP requests for intake sessions.
type Handler struct {
	sessions *session.Store
	previews *preview.Registry
	uploads  *upload.Service
	bus      events.Bus
	val      *validator.Validator
	log      *logger.Logger
}

// New creates a new intake handler.
func New(sessions *session.Store, previews *preview.Registry, uploads *upload.Service, bus events.Bus, val *validator.Validator, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		sessions: sessions,
		previews: previews,
		uploads:  uploads,
		bus:      bus,
		val:      val,
		log:      log,
	}
}

// RegisterRoutes adds the intake routes. Expected group: /api/v1/offerte
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)

	rg.POST("/sessions", h.CreateSession)
	rg.GET("/sessions/:id", h.GetSession)
	rg.DELETE("/sessions/:id", h.DeleteSession)

	rg.PUT("/sessions/:id/stages/:stage/fields/:field", h.UpdateField)
	rg.PATCH("/sessions/:id/stages/:stage", h.MergeFields)
	rg.POST("/sessions/:id/stages/:stage/commit", h.CommitStage)
	rg.POST("/sessions/:id/stages/:stage/reset", h.ResetStage)

	rg.GET("/sessions/:id/photos", h.ListPhotos)
	rg.POST("/sessions/:id/photos", h.AddPhoto)
	rg.POST("/sessions/:id/photos/upload", h.UploadPhotos)
	rg.PATCH("/sessions/:id/photos/:photoId", h.UpdatePhoto)
	rg.DELETE("/sessions/:id/photos/:photoId", h.DeletePhoto)

	rg.POST("/sessions/:id/submit", h.Submit)

	rg.GET("/previews/:handle", h.GetPreview)
}

// ListCategories returns the service and work category table.
func (h *Handler) ListCategories(c *gin.Context) {
	items := make([]transport.ServiceCategoryOption, 0, len(domain.ServiceCategories))
	for _, sc := range domain.ServiceCategories {
		items = append(items, transport.ServiceCategoryOption{
			Key:            sc,
			Label:          sc.Label(),
			WorkCategories: workCategoryOptions(domain.AllowedWorkCategories(sc)),
		})
	}
	httpkit.OK(c, transport.CategoriesResponse{Items: items})
}

// CreateSession starts a new intake with every stage at its default.
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	h.log.WithContext(c.Request.Context()).Info("intake session started", "session_id", sess.ID.String())
	httpkit.JSON(c, http.StatusCreated, transport.CreateSessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt})
}

// GetSession returns the full state of all four stages.
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var resp transport.SessionResponse
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		resp = sessionResponse(id, f)
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// DeleteSession abandons an intake and releases its previews.
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.sessions.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateField replaces a single field value.
func (h *Handler) UpdateField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, ok := stageParam(c)
	if !ok {
		return
	}

	var req transport.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var resp transport.StageResponse
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		ctrl, err := f.Stage(st)
		if err != nil {
			return err
		}
		if err := ctrl.UpdateField(c.Param("field"), req.Value); err != nil {
			return err
		}
		resp = stageResponse(f, st)
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// MergeFields applies a partial record to one stage.
func (h *Handler) MergeFields(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, ok := stageParam(c)
	if !ok {
		return
	}

	var req transport.MergeFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	var resp transport.StageResponse
	var mergeErr error
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		ctrl, err := f.Stage(st)
		if err != nil {
			return err
		}
		mergeErr = ctrl.MergeFields(req.Fields)
		resp = stageResponse(f, st)
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	if mergeErr != nil {
		// The valid part of the record was applied; report what was skipped.
		httpkit.Error(c, http.StatusBadRequest, "some fields were not applied", gin.H{
			"skipped": errorMessages(mergeErr),
			"stage":   resp,
		})
		return
	}
	httpkit.OK(c, resp)
}

// CommitStage validates a stage and makes its errors visible.
func (h *Handler) CommitStage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, ok := stageParam(c)
	if !ok {
		return
	}

	var resp transport.CommitResponse
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		valid, errs, err := f.CommitStage(st)
		if err != nil {
			return err
		}
		resp = transport.CommitResponse{Stage: st, Valid: valid, Errors: errs}
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// ResetStage restores a stage to its default.
func (h *Handler) ResetStage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	st, ok := stageParam(c)
	if !ok {
		return
	}

	var resp transport.StageResponse
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		ctrl, err := f.Stage(st)
		if err != nil {
			return err
		}
		ctrl.Reset()
		resp = stageResponse(f, st)
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// ListPhotos returns the photo collection and upload progress.
func (h *Handler) ListPhotos(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var resp transport.PhotoListResponse
	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		resp = transport.PhotoListResponse{
			Items:   f.Details.Values().Photos,
			Uploads: f.Details.UploadStatusSummary(),
		}
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// AddPhoto attaches a multipart "file" to the details stage. A rejected file
// is reported with 200 and accepted=false; the reason is a stage error.
func (h *Handler) AddPhoto(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	file, err := readPhoto(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	description := c.PostForm("description")

	var resp transport.AddPhotoResponse
	err = h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		attachment, accepted := f.Details.AddPhoto(file)
		if accepted && strings.TrimSpace(description) != "" {
			if err := f.Details.UpdatePhotoDescription(attachment.ID, description); err != nil {
				return err
			}
			attachment = findPhoto(f, attachment.ID)
		}
		resp = transport.AddPhotoResponse{Accepted: accepted, Errors: f.Details.Errors()}
		if accepted {
			resp.Photo = &attachment
		}
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	if !resp.Accepted {
		h.log.WithContext(c.Request.Context()).PhotoRejected(file.ContentType, file.Size, resp.Errors[domain.FieldPhotos])
		httpkit.OK(c, resp)
		return
	}
	httpkit.JSON(c, http.StatusCreated, resp)
}

// UpdatePhoto edits a photo's description or retries a failed upload.
func (h *Handler) UpdatePhoto(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPhotoID, nil)
		return
	}

	var req transport.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	var photo domain.PhotoAttachment
	err = h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		if req.Description != nil {
			if err := f.Details.UpdatePhotoDescription(photoID, *req.Description); err != nil {
				return err
			}
		}
		if req.UploadStatus != nil {
			if err := f.Details.UpdatePhotoStatus(photoID, domain.UploadStatus(*req.UploadStatus), req.ErrorMessage); err != nil {
				return err
			}
		}
		photo = findPhoto(f, photoID)
		return nil
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, photo)
}

// DeletePhoto removes a photo and releases its preview.
func (h *Handler) DeletePhoto(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	photoID, err := uuid.Parse(c.Param("photoId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPhotoID, nil)
		return
	}
	err = h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		return f.Details.RemovePhoto(photoID)
	})
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadPhotos pushes pending photos to object storage.
func (h *Handler) UploadPhotos(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	summary, err := h.uploads.UploadPending(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}

// Submit validates all stages and hands the quote request over.
func (h *Handler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var submittedAt time.Time
	submitter := service.SubmitterFunc(func(ctx context.Context, s domain.Submission) error {
		submittedAt = s.SubmittedAt
		return service.EventSubmitter{Bus: h.bus, SessionID: id}.Submit(ctx, s)
	})

	err := h.sessions.With(c.Request.Context(), id, func(f *service.Flow) error {
		return f.Submit(c.Request.Context(), submitter)
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SubmitResponse{Status: domain.SubmissionSubmitted, SubmittedAt: submittedAt})
}

// GetPreview serves the bytes behind a preview handle.
func (h *Handler) GetPreview(c *gin.Context) {
	p, ok := h.previews.Get(domain.PreviewHandle(c.Param("handle")))
	if !ok {
		httpkit.HandleError(c, apperr.NotFound("preview not found"))
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, p.ContentType, p.Data)
}

func stageParam(c *gin.Context) (domain.Stage, bool) {
	st, ok := domain.ParseStage(c.Param("stage"))
	if !ok {
		httpkit.HandleError(c, apperr.NotFound("unknown stage"))
		return "", false
	}
	return st, true
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// readPhoto reads the multipart "file" part. Oversized parts are not read;
// the photo manager rejects them by their declared size.
func readPhoto(c *gin.Context) (domain.PhotoFile, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return domain.PhotoFile{}, err
	}
	file := domain.PhotoFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}
	if header.Size <= 0 || header.Size > domain.MaxPhotoSize {
		return file, nil
	}

	src, err := header.Open()
	if err != nil {
		return domain.PhotoFile{}, err
	}
	defer func() {
		_ = src.Close()
	}()
	data, err := io.ReadAll(io.LimitReader(src, domain.MaxPhotoSize+1))
	if err != nil {
		return domain.PhotoFile{}, err
	}
	file.Data = data
	file.Size = int64(len(data))
	if file.ContentType == "" || file.ContentType == "application/octet-stream" {
		file.ContentType = http.DetectContentType(data)
	}
	return file, nil
}

// errorMessages flattens a joined error into its leaf messages.
func errorMessages(err error) []string {
	var out []string
	var walk func(error)
	walk = func(e error) {
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		var ae *apperr.Error
		if errors.As(e, &ae) {
			out = append(out, ae.Message)
			return
		}
		out = append(out, e.Error())
	}
	walk(err)
	return out
}

func findPhoto(f *service.Flow, id uuid.UUID) domain.PhotoAttachment {
	for _, p := range f.Details.Values().Photos {
		if p.ID == id {
			return p
		}
	}
	return domain.PhotoAttachment{}
}
