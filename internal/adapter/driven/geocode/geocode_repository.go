package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/domain/repository"
)

const userAgent = "sales-insights-go/1.0"

// nominatimResult is one candidate from the Nominatim search API. The API
// encodes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimRepository implements GeocodeRepository against the public
// Nominatim search endpoint.
type NominatimRepository struct {
	baseURL string
	client  *http.Client
}

// NewNominatimRepository creates a geocoder against the given search
// endpoint, e.g. https://nominatim.openstreetmap.org/search.
func NewNominatimRepository(baseURL string) repository.GeocodeRepository {
	return &NominatimRepository{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Search resolves a free-text address to coordinates. The timeout bounds the
// whole request; the caller decides whether a failure is fatal.
func (r *NominatimRepository) Search(ctx context.Context, address string, timeout time.Duration) (entity.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("geocode request for '%s': %w", address, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.Coordinates{}, fmt.Errorf("geocode request for '%s': status %d", address, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return entity.Coordinates{}, fmt.Errorf("decoding geocode response for '%s': %w", address, err)
	}
	if len(results) == 0 {
		return entity.Coordinates{}, fmt.Errorf("no geocode result for '%s'", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("invalid latitude '%s' for '%s'", results[0].Lat, address)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return entity.Coordinates{}, fmt.Errorf("invalid longitude '%s' for '%s'", results[0].Lon, address)
	}

	return entity.Coordinates{Latitude: &lat, Longitude: &lon}, nil
}
