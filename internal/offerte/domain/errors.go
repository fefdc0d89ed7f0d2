package domain

// ErrorMap maps a field name to its current validation message. A missing key
// means the field is currently valid.
type ErrorMap map[string]string

// Valid reports whether the map holds no errors.
func (m ErrorMap) Valid() bool { return len(m) == 0 }

// Clone returns an independent copy; nil stays nil-safe (an empty map).
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Field names, shared by controllers, error maps and the JSON transport.
const (
	FieldCustomerType = "customerType"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"

	FieldStreet           = "street"
	FieldHouseNumber      = "houseNumber"
	FieldPostalCode       = "postalCode"
	FieldCity             = "city"
	FieldCountry          = "country"
	FieldPropertyType     = "propertyType"
	FieldConstructionYear = "constructionYear"
	FieldOwnership        = "ownership"
	FieldNotes            = "notes"

	FieldDescription         = "description"
	FieldServiceCategory     = "serviceCategory"
	FieldWorkCategory        = "workCategory"
	FieldSurfaceArea         = "surfaceArea"
	FieldUrgency             = "urgency"
	FieldDesiredStartDate    = "desiredStartDate"
	FieldEstimatedDuration   = "estimatedDuration"
	FieldExtraServices       = "extraServices"
	FieldParkingAvailable    = "parkingAvailable"
	FieldKeysAvailable       = "keysAvailable"
	FieldPresentDuringWork   = "presentDuringWork"
	FieldBudgetIndication    = "budgetIndication"
	FieldMaterialPreferences = "materialPreferences"
	FieldAdditionalNotes     = "additionalNotes"
	// FieldPhotos keys collection-level photo errors (too many, too large, wrong type).
	FieldPhotos = "photos"

	FieldTermsAccepted       = "termsAccepted"
	FieldNewsletterOptIn     = "newsletterOptIn"
	FieldMarketingOptIn      = "marketingOptIn"
	FieldPrivacyAcknowledged = "privacyAcknowledged"
	FieldReferralSource      = "referralSource"
	FieldReferralSourceOther = "referralSourceOther"
)

// Validation messages shown inline next to the offending field.
const (
	MsgNameRequired  = "Naam is verplicht"
	MsgNameTooShort  = "Naam moet minimaal 2 tekens bevatten"
	MsgEmailRequired = "E-mailadres is verplicht"
	MsgEmailInvalid  = "Voer een geldig e-mailadres in"
	MsgPhoneInvalid  = "Voer een geldig Nederlands telefoonnummer in"

	MsgStreetRequired      = "Straatnaam is verplicht"
	MsgStreetTooShort      = "Straatnaam moet minimaal 2 tekens bevatten"
	MsgHouseNumberRequired = "Huisnummer is verplicht"
	MsgHouseNumberInvalid  = "Voer een geldig huisnummer in (bijv. 12 of 12A)"
	MsgPostalCodeRequired  = "Postcode is verplicht"
	MsgPostalCodeInvalid   = "Voer een geldige postcode in (bijv. 1234AB)"
	MsgCityRequired        = "Plaats is verplicht"
	MsgCityTooShort        = "Plaats moet minimaal 2 tekens bevatten"
	MsgConstructionYear    = "Voer een geldig bouwjaar in"

	MsgDescriptionRequired     = "Omschrijving is verplicht"
	MsgDescriptionTooShort     = "Omschrijving moet minimaal 10 tekens bevatten"
	MsgServiceCategoryRequired = "Kies een categorie"
	MsgWorkCategoryRequired    = "Kies het type werkzaamheden"
	MsgWorkCategoryInvalid     = "Dit type werkzaamheden past niet bij de gekozen categorie"
	MsgStartDateInPast         = "De gewenste startdatum kan niet in het verleden liggen"

	MsgTooManyPhotos     = "U kunt maximaal 10 foto's toevoegen"
	MsgPhotoTooLarge     = "Foto is te groot (maximaal 5 MB)"
	MsgPhotoTypeInvalid  = "Alleen JPEG, PNG of WebP foto's zijn toegestaan"
	MsgPhotoEmpty        = "Foto is leeg"
	MsgPhotoUploadFailed = "Uploaden van de foto is mislukt"

	MsgTermsRequired = "U moet akkoord gaan met de algemene voorwaarden"
)
