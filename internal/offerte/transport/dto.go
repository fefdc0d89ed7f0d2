// Package transport holds the JSON request and response shapes of the
// offerte HTTP API.
package transport

import (
	"time"

	"offerte_backend/internal/offerte/domain"

	"github.com/google/uuid"
)

// CreateSessionResponse is returned when a visitor starts an intake.
type CreateSessionResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// UpdateFieldRequest replaces one field. A null value clears optional fields.
type UpdateFieldRequest struct {
	Value any `json:"value"`
}

// MergeFieldsRequest applies a partial record to one stage.
type MergeFieldsRequest struct {
	Fields map[string]any `json:"fields" validate:"required,min=1"`
}

// StageResponse is the externally visible state of one stage.
type StageResponse struct {
	Stage       domain.Stage    `json:"stage"`
	Values      any             `json:"values"`
	Errors      domain.ErrorMap `json:"errors"`
	Dirty       bool            `json:"dirty"`
	HasFormData bool            `json:"hasFormData"`
	Submitting  bool            `json:"submitting"`
}

// CommitResponse is the outcome of validate-and-commit on one stage.
type CommitResponse struct {
	Stage  domain.Stage    `json:"stage"`
	Valid  bool            `json:"valid"`
	Errors domain.ErrorMap `json:"errors"`
}

// WorkCategoryOption is one selectable work category.
type WorkCategoryOption struct {
	Key   domain.WorkCategory `json:"key"`
	Label string              `json:"label"`
}

// ServiceCategoryOption is one service category with its work categories.
type ServiceCategoryOption struct {
	Key            domain.ServiceCategory `json:"key"`
	Label          string                 `json:"label"`
	WorkCategories []WorkCategoryOption   `json:"workCategories"`
}

// CategoriesResponse lists the full category table.
type CategoriesResponse struct {
	Items []ServiceCategoryOption `json:"items"`
}

// SummaryResponse is the review-screen digest of a session.
type SummaryResponse struct {
	Contact any    `json:"contact"`
	Address string `json:"address"`
	Project any    `json:"project"`
}

// SessionResponse is the full state of an intake session.
type SessionResponse struct {
	ID                    uuid.UUID                `json:"id"`
	Stages                map[string]StageResponse `json:"stages"`
	AllowedWorkCategories []WorkCategoryOption     `json:"allowedWorkCategories"`
	Uploads               domain.UploadSummary     `json:"uploads"`
	SubmissionStatus      domain.SubmissionStatus  `json:"submissionStatus"`
	Valid                 bool                     `json:"valid"`
	HasFormData           bool                     `json:"hasFormData"`
	Summary               SummaryResponse          `json:"summary"`
}

// AddPhotoResponse reports whether a photo was accepted. Rejections are not
// HTTP errors; the reason is in Errors under "photos".
type AddPhotoResponse struct {
	Accepted bool                    `json:"accepted"`
	Photo    *domain.PhotoAttachment `json:"photo,omitempty"`
	Errors   domain.ErrorMap         `json:"errors"`
}

// UpdatePhotoRequest edits a photo's description or retries a failed upload.
type UpdatePhotoRequest struct {
	Description  *string `json:"description" validate:"omitempty,max=500"`
	UploadStatus *string `json:"uploadStatus" validate:"omitempty,oneof=pending uploading uploaded error"`
	ErrorMessage string  `json:"errorMessage" validate:"max=500"`
}

// PhotoListResponse lists the photos of a session.
type PhotoListResponse struct {
	Items   []domain.PhotoAttachment `json:"items"`
	Uploads domain.UploadSummary     `json:"uploads"`
}

// SubmitResponse is returned after a successful submit.
type SubmitResponse struct {
	Status      domain.SubmissionStatus `json:"status"`
	SubmittedAt time.Time               `json:"submittedAt"`
}
