// Package domain holds the data shapes, closed enumerations and invariants of
// the four-stage quote intake ("offerte") flow.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactInfo is stage 1. Phone is stored normalized; "" means not given.
type ContactInfo struct {
	CustomerType CustomerType `json:"customerType"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone,omitempty"`
}

// ProjectLocation is stage 2. PostalCode is stored upper-cased without whitespace.
type ProjectLocation struct {
	Street           string       `json:"street"`
	HouseNumber      string       `json:"houseNumber"`
	PostalCode       string       `json:"postalCode"`
	City             string       `json:"city"`
	Country          string       `json:"country"`
	PropertyType     PropertyType `json:"propertyType,omitempty"`
	ConstructionYear *int         `json:"constructionYear,omitempty"`
	Ownership        Ownership    `json:"ownership,omitempty"`
	Notes            string       `json:"notes,omitempty"`
}

// ProjectDetails is stage 3. ExtraServices has set semantics and is kept sorted.
type ProjectDetails struct {
	Description         string            `json:"description"`
	ServiceCategory     ServiceCategory   `json:"serviceCategory,omitempty"`
	WorkCategory        WorkCategory      `json:"workCategory,omitempty"`
	SurfaceArea         SurfaceArea       `json:"surfaceArea,omitempty"`
	Urgency             Urgency           `json:"urgency"`
	DesiredStartDate    *time.Time        `json:"desiredStartDate,omitempty"`
	EstimatedDuration   string            `json:"estimatedDuration,omitempty"`
	ExtraServices       []ExtraService    `json:"extraServices"`
	ParkingAvailable    *bool             `json:"parkingAvailable,omitempty"`
	KeysAvailable       *bool             `json:"keysAvailable,omitempty"`
	PresentDuringWork   *bool             `json:"presentDuringWork,omitempty"`
	BudgetIndication    string            `json:"budgetIndication,omitempty"`
	MaterialPreferences string            `json:"materialPreferences,omitempty"`
	AdditionalNotes     string            `json:"additionalNotes,omitempty"`
	Photos              []PhotoAttachment `json:"photos"`
}

// ConfirmationData is stage 4.
type ConfirmationData struct {
	TermsAccepted       bool           `json:"termsAccepted"`
	NewsletterOptIn     *bool          `json:"newsletterOptIn,omitempty"`
	MarketingOptIn      *bool          `json:"marketingOptIn,omitempty"`
	PrivacyAcknowledged *bool          `json:"privacyAcknowledged,omitempty"`
	ReferralSource      ReferralSource `json:"referralSource,omitempty"`
	ReferralSourceOther string         `json:"referralSourceOther,omitempty"`
}

// PhotoFile is a raw photo blob as received from the visitor.
type PhotoFile struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// PreviewHandle is an opaque, revocable reference to a displayable preview.
type PreviewHandle string

// PhotoAttachment describes one attached photo. The source blob itself stays
// inside the owning photo manager.
type PhotoAttachment struct {
	ID           uuid.UUID     `json:"id"`
	FileName     string        `json:"fileName"`
	ContentType  string        `json:"contentType"`
	FileSize     int64         `json:"fileSize"`
	Preview      PreviewHandle `json:"previewHandle"`
	Description  string        `json:"description,omitempty"`
	UploadStatus UploadStatus  `json:"uploadStatus"`
	ErrorMessage string        `json:"errorMessage,omitempty"`
	CapturedAt   *time.Time    `json:"capturedAt,omitempty"`
	StorageKey   string        `json:"storageKey,omitempty"`
}

// UploadSummary is the aggregate upload progress of a photo collection.
type UploadSummary struct {
	Total           int  `json:"total"`
	Uploaded        int  `json:"uploaded"`
	Errors          int  `json:"errors"`
	ProgressPercent int  `json:"progressPercent"`
	IsComplete      bool `json:"isComplete"`
}

// Submission is the validated aggregate handed to the submission collaborator.
type Submission struct {
	Contact      ContactInfo      `json:"contact"`
	Location     ProjectLocation  `json:"location"`
	Details      ProjectDetails   `json:"details"`
	Confirmation ConfirmationData `json:"confirmation"`
	SubmittedAt  time.Time        `json:"submittedAt"`
}
