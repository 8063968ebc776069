// Package geodata holds the static city and state reference coordinates used
// by both the mock-mode coordinate generator and the back-fill resolver.
// Keeping one copy here avoids the two tables drifting apart.
package geodata

// Place is a known location with its base coordinate.
type Place struct {
	Name string
	Lat  float64
	Lon  float64
}

// Cities are the known city names, in match-priority order. Mock mode scans
// only this list; back-fill scans it before States.
var Cities = []Place{
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
	{Name: "Melbourne", Lat: -37.8136, Lon: 144.9631},
	{Name: "Brisbane", Lat: -27.4698, Lon: 153.0251},
	{Name: "Perth", Lat: -31.9505, Lon: 115.8605},
	{Name: "Adelaide", Lat: -34.9285, Lon: 138.6007},
}

// States are the state/region abbreviations back-fill falls back to when no
// city name matched, each mapped to its capital's coordinate.
var States = []Place{
	{Name: "NSW", Lat: -33.8688, Lon: 151.2093},
	{Name: "VIC", Lat: -37.8136, Lon: 144.9631},
	{Name: "QLD", Lat: -27.4698, Lon: 153.0251},
	{Name: "WA", Lat: -31.9505, Lon: 115.8605},
	{Name: "SA", Lat: -34.9285, Lon: 138.6007},
}
