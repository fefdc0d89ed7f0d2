package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"offerte_backend/platform/logger"
	"offerte_backend/platform/postcode"
)

// DefaultNominatimURL is the public OSM search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

type Service struct {
	client  *http.Client
	baseURL string
	log     *logger.Logger
}

func NewService(baseURL string, log *logger.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &Service{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		log:     log,
	}
}

// LookupPostcode resolves a Dutch postal code and house number to address
// suggestions.
func (s *Service) LookupPostcode(ctx context.Context, postalCode, houseNumber string) ([]AddressSuggestion, error) {
	query := strings.TrimSpace(postcode.Normalize(postalCode) + " " + strings.TrimSpace(houseNumber))
	return s.SearchAddress(ctx, query)
}

func (s *Service) SearchAddress(ctx context.Context, query string) ([]AddressSuggestion, error) {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", "5")
	params.Add("countrycodes", "nl")

	reqURL := fmt.Sprintf("%s?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "OfferteIntake/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}

		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

func buildSuggestion(raw nominatimResponse) (AddressSuggestion, bool) {
	if raw.Address.Road == "" {
		return AddressSuggestion{}, false
	}

	city := pickCity(raw.Address)
	if city == "" {
		return AddressSuggestion{}, false
	}

	suggestion := AddressSuggestion{
		Street:      raw.Address.Road,
		HouseNumber: raw.Address.HouseNumber,
		PostalCode:  postcode.Normalize(raw.Address.Postcode),
		City:        city,
		Lat:         raw.Lat,
		Lon:         raw.Lon,
	}

	suggestion.Label = buildLabel(suggestion)

	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	for _, candidate := range []string{address.City, address.Town, address.Village, address.Municipality, address.Hamlet} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func buildLabel(suggestion AddressSuggestion) string {
	parts := []string{suggestion.Street}
	if suggestion.HouseNumber != "" {
		parts = append(parts, suggestion.HouseNumber)
	}
	parts = append(parts, ",")
	if suggestion.PostalCode != "" {
		parts = append(parts, suggestion.PostalCode)
	}
	parts = append(parts, suggestion.City)

	label := strings.Join(parts, " ")
	label = strings.ReplaceAll(label, " ,", ",")
	return strings.TrimSpace(label)
}
