package repository

import (
	"context"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// GeocodeRepository defines the interface for the live geocoding service.
// Search returns the first candidate's coordinates for a free-text address.
// A non-success status, an empty candidate list, a timeout and a network
// error are all reported as an error; the enricher treats every error as a
// null-coordinate outcome, never as a pipeline failure.
type GeocodeRepository interface {
	Search(ctx context.Context, address string, timeout time.Duration) (entity.Coordinates, error)
}
