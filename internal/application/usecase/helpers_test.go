package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/shared/types"
)

// quietConsole satisfies ConsoleInterface without writing anything, so test
// output stays readable.
type quietConsole struct{}

func (quietConsole) Print(a ...interface{})                   {}
func (quietConsole) Printf(format string, a ...interface{})   {}
func (quietConsole) Println(a ...interface{})                 {}
func (quietConsole) LogInfo(format string, a ...interface{})  {}
func (quietConsole) LogWarning(string, ...interface{})        {}
func (quietConsole) LogError(format string, a ...interface{}) {}
func (quietConsole) LogSuccess(string, ...interface{})        {}

func (quietConsole) Status(message string) types.StatusHandle         { return quietHandle{} }
func (quietConsole) ProgressWithTotal(total int) types.ProgressHandle { return quietHandle{} }
func (quietConsole) CreateTable() types.TableInterface                { return &quietTable{} }

type quietHandle struct{}

func (quietHandle) Update(string) {}
func (quietHandle) Increment()    {}
func (quietHandle) Stop()         {}

type quietTable struct{}

func (*quietTable) AddColumn(string, ...interface{}) {}
func (*quietTable) AddRow(...interface{})            {}
func (*quietTable) Render() string                   { return "" }

// fakeGeocoder resolves addresses from a fixed map; anything absent fails.
// It records the order of lookups.
type fakeGeocoder struct {
	results map[string]entity.Coordinates
	calls   []string
}

func (g *fakeGeocoder) Search(_ context.Context, address string, _ time.Duration) (entity.Coordinates, error) {
	g.calls = append(g.calls, address)
	coords, ok := g.results[address]
	if !ok {
		return entity.Coordinates{}, fmt.Errorf("no geocode result for '%s'", address)
	}
	return coords, nil
}

// newTestPipeline wires a use case with zeroed delays so tests do not sleep.
func newTestPipeline(geocoder *fakeGeocoder) *PipelineUseCase {
	cfg := &types.Config{Geocoding: types.GeocodingConfig{
		ProbeSize:    5,
		ProbeTimeout: types.Duration(time.Second),
		FullTimeout:  types.Duration(time.Second),
	}}
	return NewPipelineUseCase(nil, geocoder, nil, nil, nil, quietConsole{}, cfg)
}

func coords(lat, lon float64) entity.Coordinates {
	return entity.Coordinates{Latitude: &lat, Longitude: &lon}
}

func mustDate(t string) time.Time {
	parsed, err := time.Parse("2006-01-02", t)
	if err != nil {
		panic(err)
	}
	return parsed
}
