package maps

// LookupRequest represents the query parameters from the intake form. Either
// a free-text query or a postal code (optionally with house number) is needed.
type LookupRequest struct {
	Query       string `form:"q" validate:"required_without=PostalCode,omitempty,min=3,max=200"`
	PostalCode  string `form:"postalCode" validate:"required_without=Query,omitempty,nl_postcode"`
	HouseNumber string `form:"houseNumber" validate:"omitempty,max=16"`
}

// AddressSuggestion is the normalized data returned to the intake form. Its
// fields match the location stage so a suggestion can be merged as-is.
type AddressSuggestion struct {
	Label       string `json:"label"`
	Street      string `json:"street"`
	HouseNumber string `json:"houseNumber"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type nominatimAddress struct {
	Road         string `json:"road"`
	HouseNumber  string `json:"house_number"`
	Postcode     string `json:"postcode"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
}

// nominatimResponse mirrors the relevant parts of the OSM search payload.
type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	Address     nominatimAddress `json:"address"`
}
