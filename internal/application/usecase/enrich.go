package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/shared/geodata"
)

// UniqueAddresses returns the distinct non-empty addresses of the customer
// set, preserving first-seen order. The position of an address in this
// sequence is the index mock mode derives its coordinate offset from.
func UniqueAddresses(customers []entity.Customer) []string {
	seen := make(map[string]struct{}, len(customers))
	addresses := []string{}
	for _, c := range customers {
		if c.Address == "" {
			continue
		}
		if _, ok := seen[c.Address]; ok {
			continue
		}
		seen[c.Address] = struct{}{}
		addresses = append(addresses, c.Address)
	}
	return addresses
}

// EnrichGeolocation resolves every unique address to coordinates using the
// two-phase protocol: a bounded live probe over the first addresses decides
// whether the geocoding service is reachable. When every probed address
// fails, the whole batch (probed addresses included, their results
// discarded) is recomputed offline from the city reference data. When at
// least one probe succeeds, the remaining addresses go through the live
// service with the longer timeout and delay, and an individual failure there
// yields null coordinates for that address only.
//
// The returned cache has exactly one entry per input address; entries may be
// a null pair. The outcome is returned explicitly so callers never read
// enrichment diagnostics from shared state.
func (uc *PipelineUseCase) EnrichGeolocation(
	ctx context.Context,
	addresses []string,
) (map[string]entity.Coordinates, entity.GeocodeOutcome) {
	cfg := uc.config.Geocoding
	cache := make(map[string]entity.Coordinates, len(addresses))
	outcome := entity.GeocodeOutcome{ProbedAddresses: []string{}}

	probeCount := cfg.ProbeSize
	if len(addresses) < probeCount {
		probeCount = len(addresses)
	}

	progress := uc.console.ProgressWithTotal(len(addresses))
	defer progress.Stop()

	failed := 0
	for _, address := range addresses[:probeCount] {
		outcome.ProbedAddresses = append(outcome.ProbedAddresses, address)
		sleep(ctx, cfg.ProbeDelay.Std())

		coords, err := uc.geocodeRepo.Search(ctx, address, cfg.ProbeTimeout.Std())
		if err != nil {
			cache[address] = entity.Coordinates{}
			failed++
		} else {
			cache[address] = coords
		}
		progress.Increment()
	}

	if probeCount > 0 && failed == probeCount {
		outcome.MockModeUsed = true
		cache = mockCoordinates(addresses)
		outcome.MockCoordinates = mockDiagnostics(outcome.ProbedAddresses)
		for range addresses[probeCount:] {
			progress.Increment()
		}
		return cache, outcome
	}

	for _, address := range addresses[probeCount:] {
		sleep(ctx, cfg.FullDelay.Std())

		coords, err := uc.geocodeRepo.Search(ctx, address, cfg.FullTimeout.Std())
		if err != nil {
			cache[address] = entity.Coordinates{}
		} else {
			cache[address] = coords
		}
		progress.Increment()
	}
	return cache, outcome
}

// mockCoordinates generates deterministic offline coordinates for the whole
// unique-address sequence: the first known city found in the address supplies
// the base coordinate, offset by index*0.01 in both axes. Addresses matching
// no city get a null pair.
func mockCoordinates(addresses []string) map[string]entity.Coordinates {
	cache := make(map[string]entity.Coordinates, len(addresses))
	for i, address := range addresses {
		place, ok := matchCity(address)
		if !ok {
			cache[address] = entity.Coordinates{}
			continue
		}
		lat := place.Lat + float64(i)*0.01
		lon := place.Lon + float64(i)*0.01
		cache[address] = entity.Coordinates{Latitude: &lat, Longitude: &lon}
	}
	return cache
}

// mockDiagnostics recomputes the synthetic coordinates assigned to the probed
// addresses for the upload response. Probed addresses are the head of the
// unique sequence, so their offsets reuse their positions there.
func mockDiagnostics(probed []string) []entity.MockCoordinate {
	diags := make([]entity.MockCoordinate, 0, len(probed))
	for i, address := range probed {
		mc := entity.MockCoordinate{Address: address}
		if place, ok := matchCity(address); ok {
			lat := round4(place.Lat + float64(i)*0.01)
			lon := round4(place.Lon + float64(i)*0.01)
			mc.Lat = &lat
			mc.Lon = &lon
			mc.City = place.Name
		}
		diags = append(diags, mc)
	}
	return diags
}

// ApplyCoordinates copies resolved coordinates from the cache onto the
// customer set. Addresses absent from the cache leave the customer's
// coordinates nil.
func ApplyCoordinates(customers []entity.Customer, cache map[string]entity.Coordinates) {
	for i := range customers {
		coords, ok := cache[customers[i].Address]
		if !ok {
			continue
		}
		customers[i].Latitude = coords.Latitude
		customers[i].Longitude = coords.Longitude
	}
}

// BackFillCoordinates resolves customers still missing a coordinate by
// substring-matching their address against the known city names first, then
// the state abbreviations. The first match supplies the base coordinate (no
// offset); with no match the coordinates stay null permanently. Customers
// already resolved are never touched.
func BackFillCoordinates(customers []entity.Customer) {
	for i := range customers {
		if customers[i].Latitude != nil && customers[i].Longitude != nil {
			continue
		}

		place, ok := matchCity(customers[i].Address)
		if !ok {
			place, ok = matchState(customers[i].Address)
		}
		if !ok {
			continue
		}

		lat, lon := place.Lat, place.Lon
		customers[i].Latitude = &lat
		customers[i].Longitude = &lon
	}
}

func matchCity(address string) (geodata.Place, bool) {
	for _, place := range geodata.Cities {
		if strings.Contains(address, place.Name) {
			return place, true
		}
	}
	return geodata.Place{}, false
}

func matchState(address string) (geodata.Place, bool) {
	for _, place := range geodata.States {
		if strings.Contains(address, place.Name) {
			return place, true
		}
	}
	return geodata.Place{}, false
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// sleep waits for the configured inter-request delay, returning early when
// the context is cancelled.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
