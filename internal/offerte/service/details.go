package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/stage"
	"offerte_backend/platform/apperr"
	"offerte_backend/platform/sanitize"

	"github.com/google/uuid"
)

const minDescriptionLength = 10

// errWorkCategoryNotAllowed marks a work category outside the allowed set of
// the current service category.
var errWorkCategoryNotAllowed = errors.New("work category not allowed for service category")

// DetailsController drives stage 3 and owns the photo collection.
type DetailsController struct {
	*stage.Controller[domain.ProjectDetails]
	photos *PhotoManager
}

// NewDetailsController creates a details stage at its default value. clock
// supplies "today" for the start date check; clock and newID may be nil.
func NewDetailsController(previews PreviewProvider, clock func() time.Time, newID func() uuid.UUID) *DetailsController {
	if clock == nil {
		clock = time.Now
	}
	photos := NewPhotoManager(previews, newID)
	return &DetailsController{
		photos: photos,
		Controller: stage.New(stage.Schema[domain.ProjectDetails]{
			Stage:   domain.StageDetails,
			Default: domain.DefaultProjectDetails,
			Fields: []stage.Field[domain.ProjectDetails]{
				stage.TextField(domain.FieldDescription, func(d *domain.ProjectDetails) *string { return &d.Description }, sanitize.Text),
				// serviceCategory precedes workCategory so MergeFields checks
				// the work category against the merged service category.
				{Name: domain.FieldServiceCategory, Set: setServiceCategory},
				{Name: domain.FieldWorkCategory, Set: setWorkCategory},
				stage.EnumField(domain.FieldSurfaceArea,
					func(d *domain.ProjectDetails) *domain.SurfaceArea { return &d.SurfaceArea },
					domain.SurfaceArea.Valid, true),
				stage.EnumField(domain.FieldUrgency,
					func(d *domain.ProjectDetails) *domain.Urgency { return &d.Urgency },
					domain.Urgency.Valid, false),
				{Name: domain.FieldDesiredStartDate, Set: setDesiredStartDate},
				stage.TextField(domain.FieldEstimatedDuration, func(d *domain.ProjectDetails) *string { return &d.EstimatedDuration }, sanitize.Text),
				{Name: domain.FieldExtraServices, Set: setExtraServices},
				stage.OptionalBoolField(domain.FieldParkingAvailable, func(d *domain.ProjectDetails) **bool { return &d.ParkingAvailable }),
				stage.OptionalBoolField(domain.FieldKeysAvailable, func(d *domain.ProjectDetails) **bool { return &d.KeysAvailable }),
				stage.OptionalBoolField(domain.FieldPresentDuringWork, func(d *domain.ProjectDetails) **bool { return &d.PresentDuringWork }),
				stage.TextField(domain.FieldBudgetIndication, func(d *domain.ProjectDetails) *string { return &d.BudgetIndication }, sanitize.Text),
				stage.TextField(domain.FieldMaterialPreferences, func(d *domain.ProjectDetails) *string { return &d.MaterialPreferences }, sanitize.Text),
				stage.TextField(domain.FieldAdditionalNotes, func(d *domain.ProjectDetails) *string { return &d.AdditionalNotes }, sanitize.Text),
			},
			Validate: func(d domain.ProjectDetails) domain.ErrorMap {
				return validateDetails(d, clock())
			},
			Dirty: func(d domain.ProjectDetails) bool {
				return detailsDirty(d) || photos.Len() > 0
			},
			HasData: func(d domain.ProjectDetails) bool {
				return detailsHasData(d) || photos.Len() > 0
			},
			Clone: cloneDetails,
		}),
	}
}

func setServiceCategory(d *domain.ProjectDetails, raw any) error {
	s, err := stage.String(domain.FieldServiceCategory, raw)
	if err != nil {
		return err
	}
	sc := domain.ServiceCategory(strings.TrimSpace(s))
	if sc != "" && !sc.Valid() {
		return apperr.Validation(fmt.Sprintf("invalid value %q for field %q", s, domain.FieldServiceCategory)).
			WithDetails(map[string]string{"field": domain.FieldServiceCategory})
	}
	d.ServiceCategory = sc
	if d.WorkCategory != "" && !domain.IsAllowedWorkCategory(sc, d.WorkCategory) {
		d.WorkCategory = ""
	}
	return nil
}

func setWorkCategory(d *domain.ProjectDetails, raw any) error {
	s, err := stage.String(domain.FieldWorkCategory, raw)
	if err != nil {
		return err
	}
	wc := domain.WorkCategory(strings.TrimSpace(s))
	if wc != "" && !domain.IsAllowedWorkCategory(d.ServiceCategory, wc) {
		return errWorkCategoryNotAllowed
	}
	d.WorkCategory = wc
	return nil
}

func setDesiredStartDate(d *domain.ProjectDetails, raw any) error {
	date, err := stage.OptionalDate(domain.FieldDesiredStartDate, raw)
	if err != nil {
		return err
	}
	d.DesiredStartDate = date
	return nil
}

func setExtraServices(d *domain.ProjectDetails, raw any) error {
	items, err := stage.StringSet(domain.FieldExtraServices, raw)
	if err != nil {
		return err
	}
	services := make([]domain.ExtraService, 0, len(items))
	for _, item := range items {
		es := domain.ExtraService(item)
		if !es.Valid() {
			return apperr.Validation(fmt.Sprintf("invalid extra service %q", item)).
				WithDetails(map[string]string{"field": domain.FieldExtraServices})
		}
		services = append(services, es)
	}
	if len(services) == 0 {
		services = nil
	}
	d.ExtraServices = services
	return nil
}

// UpdateField applies the dependent-category rules on top of the generic
// update: a work category outside the current service category's set is
// rejected with a visible error and not stored, and changing the service
// category clears a now-invalid work category together with its error.
func (c *DetailsController) UpdateField(name string, raw any) error {
	switch name {
	case domain.FieldWorkCategory:
		err := c.Controller.UpdateField(name, raw)
		if errors.Is(err, errWorkCategoryNotAllowed) {
			c.SetError(domain.FieldWorkCategory, domain.MsgWorkCategoryInvalid)
			return nil
		}
		return err
	case domain.FieldServiceCategory:
		before := c.Controller.Values().ServiceCategory
		if err := c.Controller.UpdateField(name, raw); err != nil {
			return err
		}
		if c.Controller.Values().ServiceCategory != before {
			c.ClearError(domain.FieldWorkCategory)
		}
		return nil
	}
	return c.Controller.UpdateField(name, raw)
}

// MergeFields applies a partial record. Work categories that do not fit the
// (merged) service category are skipped and reported. A merged service
// category change clears the work category error, as UpdateField does; it is
// the only error a merge touches.
func (c *DetailsController) MergeFields(partial map[string]any) error {
	before := c.Controller.Values().ServiceCategory
	err := c.Controller.MergeFields(partial)
	if c.Controller.Values().ServiceCategory != before {
		c.ClearError(domain.FieldWorkCategory)
	}
	if errors.Is(err, errWorkCategoryNotAllowed) {
		return errors.Join(err, apperr.Validation(domain.MsgWorkCategoryInvalid).
			WithDetails(map[string]string{"field": domain.FieldWorkCategory}))
	}
	return err
}

// Values returns the stage values including a snapshot of the photos.
func (c *DetailsController) Values() domain.ProjectDetails {
	v := c.Controller.Values()
	v.Photos = c.photos.Snapshot()
	return v
}

// AllowedWorkCategories returns the work categories selectable right now.
func (c *DetailsController) AllowedWorkCategories() []domain.WorkCategory {
	return domain.AllowedWorkCategories(c.Controller.Values().ServiceCategory)
}

// Reset restores the defaults and releases every photo preview.
func (c *DetailsController) Reset() {
	c.photos.ClearAll()
	c.Controller.Reset()
}

// Destroy releases every photo preview. It returns the number released.
func (c *DetailsController) Destroy() int {
	return c.photos.ClearAll()
}

// AddPhoto attaches file as a pending photo. A rejected file is dropped and
// the reason is recorded under the collection-level "photos" error.
func (c *DetailsController) AddPhoto(file domain.PhotoFile) (domain.PhotoAttachment, bool) {
	attachment, rejection := c.photos.Add(file)
	if rejection != "" {
		c.SetError(domain.FieldPhotos, rejection)
		return domain.PhotoAttachment{}, false
	}
	c.ClearError(domain.FieldPhotos)
	return attachment, true
}

// RemovePhoto releases the photo's preview and removes it.
func (c *DetailsController) RemovePhoto(id uuid.UUID) error {
	if err := c.photos.Remove(id); err != nil {
		return err
	}
	if c.photos.Len() < domain.MaxPhotos && c.Errors()[domain.FieldPhotos] == domain.MsgTooManyPhotos {
		c.ClearError(domain.FieldPhotos)
	}
	return nil
}

// UpdatePhotoDescription sets one photo's description.
func (c *DetailsController) UpdatePhotoDescription(id uuid.UUID, text string) error {
	return c.photos.UpdateDescription(id, sanitize.Text(text))
}

// UpdatePhotoStatus records an upload status reported by the upload collaborator.
func (c *DetailsController) UpdatePhotoStatus(id uuid.UUID, status domain.UploadStatus, errorMessage string) error {
	return c.photos.UpdateStatus(id, status, errorMessage)
}

// RecordPhotoUpload marks a photo uploaded under storageKey.
func (c *DetailsController) RecordPhotoUpload(id uuid.UUID, storageKey string) error {
	return c.photos.RecordUpload(id, storageKey)
}

// ClearAllPhotos releases every preview and empties the collection.
func (c *DetailsController) ClearAllPhotos() int {
	n := c.photos.ClearAll()
	c.ClearError(domain.FieldPhotos)
	return n
}

// PendingPhotos returns photos waiting for upload.
func (c *DetailsController) PendingPhotos() []PendingPhoto { return c.photos.Pending() }

// PhotoSource returns the blob of one photo.
func (c *DetailsController) PhotoSource(id uuid.UUID) (domain.PhotoFile, bool) {
	return c.photos.Source(id)
}

// UploadStatusSummary computes upload progress from the current photos.
func (c *DetailsController) UploadStatusSummary() domain.UploadSummary {
	return c.photos.Summary()
}

func validateDetails(d domain.ProjectDetails, now time.Time) domain.ErrorMap {
	errs := domain.ErrorMap{}

	desc := strings.TrimSpace(d.Description)
	switch {
	case desc == "":
		errs[domain.FieldDescription] = domain.MsgDescriptionRequired
	case utf8.RuneCountInString(desc) < minDescriptionLength:
		errs[domain.FieldDescription] = domain.MsgDescriptionTooShort
	}

	if d.ServiceCategory == "" {
		errs[domain.FieldServiceCategory] = domain.MsgServiceCategoryRequired
	}

	switch {
	case d.WorkCategory == "":
		errs[domain.FieldWorkCategory] = domain.MsgWorkCategoryRequired
	case !domain.IsAllowedWorkCategory(d.ServiceCategory, d.WorkCategory):
		errs[domain.FieldWorkCategory] = domain.MsgWorkCategoryInvalid
	}

	if d.DesiredStartDate != nil && domain.DateOnlyBefore(*d.DesiredStartDate, now) {
		errs[domain.FieldDesiredStartDate] = domain.MsgStartDateInPast
	}

	return errs
}

func detailsDirty(d domain.ProjectDetails) bool {
	def := domain.DefaultProjectDetails()
	return d.Description != def.Description ||
		d.ServiceCategory != def.ServiceCategory ||
		d.WorkCategory != def.WorkCategory ||
		d.SurfaceArea != def.SurfaceArea ||
		d.Urgency != def.Urgency ||
		d.DesiredStartDate != nil ||
		d.EstimatedDuration != def.EstimatedDuration ||
		len(d.ExtraServices) > 0 ||
		d.ParkingAvailable != nil ||
		d.KeysAvailable != nil ||
		d.PresentDuringWork != nil ||
		d.BudgetIndication != def.BudgetIndication ||
		d.MaterialPreferences != def.MaterialPreferences ||
		d.AdditionalNotes != def.AdditionalNotes
}

func detailsHasData(d domain.ProjectDetails) bool {
	return !stage.IsBlank(d.Description) ||
		!stage.IsBlank(d.EstimatedDuration) ||
		!stage.IsBlank(d.BudgetIndication) ||
		!stage.IsBlank(d.MaterialPreferences) ||
		!stage.IsBlank(d.AdditionalNotes) ||
		d.ServiceCategory != "" ||
		d.WorkCategory != "" ||
		d.SurfaceArea != "" ||
		d.Urgency != domain.DefaultProjectDetails().Urgency ||
		d.DesiredStartDate != nil ||
		len(d.ExtraServices) > 0 ||
		d.ParkingAvailable != nil ||
		d.KeysAvailable != nil ||
		d.PresentDuringWork != nil
}

func cloneDetails(d domain.ProjectDetails) domain.ProjectDetails {
	if d.DesiredStartDate != nil {
		t := *d.DesiredStartDate
		d.DesiredStartDate = &t
	}
	if d.ExtraServices != nil {
		d.ExtraServices = append([]domain.ExtraService(nil), d.ExtraServices...)
	}
	d.ParkingAvailable = cloneBool(d.ParkingAvailable)
	d.KeysAvailable = cloneBool(d.KeysAvailable)
	d.PresentDuringWork = cloneBool(d.PresentDuringWork)
	return d
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
