package domain

// Stage identifies one of the four sequential sections of the intake flow.
type Stage string

const (
	StageContact      Stage = "contact"
	StageLocation     Stage = "location"
	StageDetails      Stage = "details"
	StageConfirmation Stage = "confirmation"
)

// Stages lists the intake stages in flow order.
var Stages = []Stage{StageContact, StageLocation, StageDetails, StageConfirmation}

// ParseStage returns the stage for s, or false when s names no stage.
func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type CustomerType string

const (
	CustomerIndividual CustomerType = "individual"
	CustomerBusiness   CustomerType = "business"
)

func (t CustomerType) Valid() bool {
	return t == CustomerIndividual || t == CustomerBusiness
}

type PropertyType string

const (
	PropertyDetached     PropertyType = "detached"
	PropertySemiDetached PropertyType = "semi_detached"
	PropertyTerraced     PropertyType = "terraced"
	PropertyApartment    PropertyType = "apartment"
	PropertyCommercial   PropertyType = "commercial"
	PropertyOther        PropertyType = "other"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyDetached, PropertySemiDetached, PropertyTerraced, PropertyApartment, PropertyCommercial, PropertyOther:
		return true
	}
	return false
}

type Ownership string

const (
	OwnershipOwner    Ownership = "owner"
	OwnershipTenant   Ownership = "tenant"
	OwnershipLandlord Ownership = "landlord"
)

func (o Ownership) Valid() bool {
	return o == OwnershipOwner || o == OwnershipTenant || o == OwnershipLandlord
}

type Urgency string

const (
	UrgencyUrgent            Urgency = "urgent"
	UrgencyWithinTwoWeeks    Urgency = "within_two_weeks"
	UrgencyWithinMonth       Urgency = "within_month"
	UrgencyWithinThreeMonths Urgency = "within_three_months"
	UrgencyFlexible          Urgency = "flexible"
)

var urgencyLabels = map[Urgency]string{
	UrgencyUrgent:            "Spoed",
	UrgencyWithinTwoWeeks:    "Binnen 2 weken",
	UrgencyWithinMonth:       "Binnen een maand",
	UrgencyWithinThreeMonths: "Binnen 3 maanden",
	UrgencyFlexible:          "Flexibel",
}

func (u Urgency) Valid() bool {
	_, ok := urgencyLabels[u]
	return ok
}

func (u Urgency) Label() string { return urgencyLabels[u] }

// SurfaceArea is a coarse bucket of the surface to be worked on, in m².
type SurfaceArea string

const (
	SurfaceUnder25  SurfaceArea = "lt_25"
	Surface25To50   SurfaceArea = "25_50"
	Surface50To100  SurfaceArea = "50_100"
	Surface100To200 SurfaceArea = "100_200"
	SurfaceOver200  SurfaceArea = "gt_200"
	SurfaceUnknown  SurfaceArea = "unknown"
)

var surfaceLabels = map[SurfaceArea]string{
	SurfaceUnder25:  "Minder dan 25 m²",
	Surface25To50:   "25 - 50 m²",
	Surface50To100:  "50 - 100 m²",
	Surface100To200: "100 - 200 m²",
	SurfaceOver200:  "Meer dan 200 m²",
	SurfaceUnknown:  "Weet ik niet",
}

func (s SurfaceArea) Valid() bool {
	_, ok := surfaceLabels[s]
	return ok
}

func (s SurfaceArea) Label() string { return surfaceLabels[s] }

type ExtraService string

const (
	ExtraDesignAdvice      ExtraService = "design_advice"
	ExtraPermitAssistance  ExtraService = "permit_assistance"
	ExtraWasteRemoval      ExtraService = "waste_removal"
	ExtraCleaning          ExtraService = "cleaning"
	ExtraProjectManagement ExtraService = "project_management"
	ExtraEnergyAdvice      ExtraService = "energy_advice"
)

func (e ExtraService) Valid() bool {
	switch e {
	case ExtraDesignAdvice, ExtraPermitAssistance, ExtraWasteRemoval, ExtraCleaning, ExtraProjectManagement, ExtraEnergyAdvice:
		return true
	}
	return false
}

type ReferralSource string

const (
	ReferralGoogle           ReferralSource = "google"
	ReferralSocialMedia      ReferralSource = "social_media"
	ReferralWordOfMouth      ReferralSource = "word_of_mouth"
	ReferralAdvertisement    ReferralSource = "advertisement"
	ReferralExistingCustomer ReferralSource = "existing_customer"
	ReferralOther            ReferralSource = "other"
)

func (r ReferralSource) Valid() bool {
	switch r {
	case ReferralGoogle, ReferralSocialMedia, ReferralWordOfMouth, ReferralAdvertisement, ReferralExistingCustomer, ReferralOther:
		return true
	}
	return false
}

// UploadStatus is the lifecycle state of one photo attachment.
type UploadStatus string

const (
	UploadPending   UploadStatus = "pending"
	UploadUploading UploadStatus = "uploading"
	UploadUploaded  UploadStatus = "uploaded"
	UploadError     UploadStatus = "error"
)

func (s UploadStatus) Valid() bool {
	switch s {
	case UploadPending, UploadUploading, UploadUploaded, UploadError:
		return true
	}
	return false
}

// CanTransition reports whether an attachment may move from s to next.
// pending -> uploading -> uploaded, and pending|uploading -> error.
// A failed attachment may be retried (error -> pending).
func (s UploadStatus) CanTransition(next UploadStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case UploadPending:
		return next == UploadUploading || next == UploadError
	case UploadUploading:
		return next == UploadUploaded || next == UploadError
	case UploadError:
		return next == UploadPending
	}
	return false
}

// SubmissionStatus is the aggregated status of the final submit.
type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "idle"
	SubmissionSubmitting SubmissionStatus = "submitting"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionFailed     SubmissionStatus = "failed"
)
