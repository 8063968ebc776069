package entity

// Coordinates is a resolved latitude/longitude pair. Nil fields mean the
// address could not be resolved; a cache entry with both nil is still a
// deliberate, final answer for that address.
type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Resolved reports whether both coordinates are present.
func (c Coordinates) Resolved() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// GeocodeOutcome is the diagnostic record of one enrichment run, returned
// explicitly to the caller rather than kept in ambient state.
type GeocodeOutcome struct {
	MockModeUsed    bool             `json:"mock_mode_used"`
	ProbedAddresses []string         `json:"probed_addresses"`
	MockCoordinates []MockCoordinate `json:"mock_coordinates,omitempty"`
}

// MockCoordinate records the synthetic coordinate assigned to one probed
// address when mock mode engaged. Lat/Lon are rounded to 4 decimals; they
// are nil when the address matched no known city.
type MockCoordinate struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	City    string   `json:"city,omitempty"`
}
