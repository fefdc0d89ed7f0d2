package domain

// One default per stage, shared by the initial-state and reset paths.
var (
	defaultContact = ContactInfo{
		CustomerType: CustomerIndividual,
	}
	defaultLocation = ProjectLocation{
		Country: DefaultCountry,
	}
	defaultDetails = ProjectDetails{
		Urgency: UrgencyWithinMonth,
	}
	defaultConfirmation = ConfirmationData{}
)

// DefaultContactInfo returns a copy of the stage 1 default.
func DefaultContactInfo() ContactInfo { return defaultContact }

// DefaultProjectLocation returns a copy of the stage 2 default.
func DefaultProjectLocation() ProjectLocation { return defaultLocation }

// DefaultProjectDetails returns a copy of the stage 3 default. Slice fields are
// nil in the shared value so the copy never aliases caller-owned storage.
func DefaultProjectDetails() ProjectDetails { return defaultDetails }

// DefaultConfirmationData returns a copy of the stage 4 default.
func DefaultConfirmationData() ConfirmationData { return defaultConfirmation }
