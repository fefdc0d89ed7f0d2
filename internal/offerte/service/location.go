package service

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"offerte_backend/internal/offerte/domain"
	"offerte_backend/internal/offerte/stage"
	"offerte_backend/platform/postcode"
	"offerte_backend/platform/sanitize"
	"offerte_backend/platform/validator"
)

// houseNumberShape: a digit sequence, optionally followed by a letter or
// addition ("12", "12A", "12-2", "12 bis").
var houseNumberShape = regexp.MustCompile(`^[0-9]+(\s*[-/]?\s*[A-Za-z0-9]{1,6})?$`)

const (
	minStreetLength = 2
	minCityLength   = 2
)

// LocationController drives stage 2.
type LocationController struct {
	*stage.Controller[domain.ProjectLocation]
}

// NewLocationController creates a location stage at its default value. clock
// supplies "now" for the construction year ceiling.
func NewLocationController(val *validator.Validator, clock func() time.Time) *LocationController {
	if clock == nil {
		clock = time.Now
	}
	return &LocationController{
		Controller: stage.New(stage.Schema[domain.ProjectLocation]{
			Stage:   domain.StageLocation,
			Default: domain.DefaultProjectLocation,
			Fields: []stage.Field[domain.ProjectLocation]{
				stage.TextField(domain.FieldStreet, func(l *domain.ProjectLocation) *string { return &l.Street }, nil),
				stage.TextField(domain.FieldHouseNumber, func(l *domain.ProjectLocation) *string { return &l.HouseNumber }, nil),
				stage.TextField(domain.FieldPostalCode, func(l *domain.ProjectLocation) *string { return &l.PostalCode }, postcode.Normalize),
				stage.TextField(domain.FieldCity, func(l *domain.ProjectLocation) *string { return &l.City }, nil),
				stage.TextField(domain.FieldCountry, func(l *domain.ProjectLocation) *string { return &l.Country }, nil),
				stage.EnumField(domain.FieldPropertyType,
					func(l *domain.ProjectLocation) *domain.PropertyType { return &l.PropertyType },
					domain.PropertyType.Valid, true),
				{Name: domain.FieldConstructionYear, Set: setConstructionYear},
				stage.EnumField(domain.FieldOwnership,
					func(l *domain.ProjectLocation) *domain.Ownership { return &l.Ownership },
					domain.Ownership.Valid, true),
				stage.TextField(domain.FieldNotes, func(l *domain.ProjectLocation) *string { return &l.Notes }, sanitize.Text),
			},
			Validate: func(l domain.ProjectLocation) domain.ErrorMap {
				return validateLocation(val, l, clock())
			},
			Dirty:   locationDirty,
			HasData: locationHasData,
			Clone:   cloneLocation,
		}),
	}
}

// setConstructionYear stores any whole number, in range or not; the range is
// checked by Validate so the visitor's input survives for correction.
func setConstructionYear(l *domain.ProjectLocation, raw any) error {
	year, err := stage.OptionalInt(domain.FieldConstructionYear, raw)
	if err != nil {
		return err
	}
	l.ConstructionYear = year
	return nil
}

func validateLocation(val *validator.Validator, l domain.ProjectLocation, now time.Time) domain.ErrorMap {
	errs := domain.ErrorMap{}

	requireMinLength(errs, domain.FieldStreet, l.Street, minStreetLength, domain.MsgStreetRequired, domain.MsgStreetTooShort)
	requireMinLength(errs, domain.FieldCity, l.City, minCityLength, domain.MsgCityRequired, domain.MsgCityTooShort)

	houseNumber := strings.TrimSpace(l.HouseNumber)
	switch {
	case houseNumber == "":
		errs[domain.FieldHouseNumber] = domain.MsgHouseNumberRequired
	case !houseNumberShape.MatchString(houseNumber):
		errs[domain.FieldHouseNumber] = domain.MsgHouseNumberInvalid
	}

	switch {
	case l.PostalCode == "":
		errs[domain.FieldPostalCode] = domain.MsgPostalCodeRequired
	case val.Var(l.PostalCode, validator.TagDutchPostcode) != nil:
		errs[domain.FieldPostalCode] = domain.MsgPostalCodeInvalid
	}

	if y := l.ConstructionYear; y != nil {
		maxYear := now.Year() + domain.ConstructionYearSlack
		if *y < domain.MinConstructionYear || *y > maxYear {
			errs[domain.FieldConstructionYear] = domain.MsgConstructionYear
		}
	}

	return errs
}

func requireMinLength(errs domain.ErrorMap, field, value string, min int, requiredMsg, shortMsg string) {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		errs[field] = requiredMsg
	case utf8.RuneCountInString(trimmed) < min:
		errs[field] = shortMsg
	}
}

func locationDirty(l domain.ProjectLocation) bool {
	def := domain.DefaultProjectLocation()
	return l.Street != def.Street ||
		l.HouseNumber != def.HouseNumber ||
		l.PostalCode != def.PostalCode ||
		l.City != def.City ||
		l.Country != def.Country ||
		l.PropertyType != def.PropertyType ||
		l.ConstructionYear != nil ||
		l.Ownership != def.Ownership ||
		l.Notes != def.Notes
}

func locationHasData(l domain.ProjectLocation) bool {
	return !stage.IsBlank(l.Street) ||
		!stage.IsBlank(l.HouseNumber) ||
		!stage.IsBlank(l.PostalCode) ||
		!stage.IsBlank(l.City) ||
		!stage.IsBlank(l.Notes) ||
		l.PropertyType != "" ||
		l.Ownership != "" ||
		l.ConstructionYear != nil ||
		strings.TrimSpace(l.Country) != domain.DefaultCountry
}

func cloneLocation(l domain.ProjectLocation) domain.ProjectLocation {
	if l.ConstructionYear != nil {
		y := *l.ConstructionYear
		l.ConstructionYear = &y
	}
	return l
}

// FormattedAddress renders "Street 12A, 1234AB City[, Country]", skipping
// empty parts. The country is left out when it is the default.
func (c *LocationController) FormattedAddress() string {
	return FormatAddress(c.Values())
}

// FormatAddress is the pure form of FormattedAddress.
func FormatAddress(l domain.ProjectLocation) string {
	parts := make([]string, 0, 3)
	if line := joinNonEmpty(" ", l.Street, l.HouseNumber); line != "" {
		parts = append(parts, line)
	}
	if line := joinNonEmpty(" ", l.PostalCode, l.City); line != "" {
		parts = append(parts, line)
	}
	if country := strings.TrimSpace(l.Country); country != "" && country != domain.DefaultCountry {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, sep)
}
