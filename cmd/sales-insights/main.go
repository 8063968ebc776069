package main

import (
	"fmt"
	"os"

	"github.com/lucasmn/sales-insights-go/internal/adapter/driven/auditlog"
	"github.com/lucasmn/sales-insights-go/internal/adapter/driven/config"
	"github.com/lucasmn/sales-insights-go/internal/adapter/driven/export"
	"github.com/lucasmn/sales-insights-go/internal/adapter/driven/geocode"
	"github.com/lucasmn/sales-insights-go/internal/adapter/driven/workbook"
	"github.com/lucasmn/sales-insights-go/internal/adapter/driving/cli"
	"github.com/lucasmn/sales-insights-go/internal/application/usecase"
	"github.com/lucasmn/sales-insights-go/internal/shared/types"
	"github.com/lucasmn/sales-insights-go/pkg/console"
	"github.com/lucasmn/sales-insights-go/pkg/version"
)

const defaultDatabasePath = "sales_insights.db"

func main() {
	app := cli.NewCLIApp(version.Version)

	workbookRepo := workbook.NewWorkbookRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	app.SetPipelineFactory(func(args *types.CLIArgs) (*usecase.PipelineUseCase, func(), error) {
		cfg := &types.Config{Geocoding: types.DefaultGeocodingConfig()}

		// The geocoder endpoint and database path must be known before the
		// adapters are built; the remaining file settings are merged inside
		// the use case.
		if args.ConfigFile != "" {
			if fileCfg, err := configRepo.LoadConfigFile(args.ConfigFile); err == nil {
				if fileCfg.Geocoding.BaseURL != "" {
					cfg.Geocoding.BaseURL = fileCfg.Geocoding.BaseURL
				}
				if args.DatabasePath == "" && fileCfg.DatabasePath != "" {
					args.DatabasePath = fileCfg.DatabasePath
				}
			}
		}

		dbPath := args.DatabasePath
		if dbPath == "" {
			dbPath = defaultDatabasePath
		}
		auditRepo, err := auditlog.NewSQLiteAuditRepository(dbPath)
		if err != nil {
			return nil, nil, err
		}

		geocodeRepo := geocode.NewNominatimRepository(cfg.Geocoding.BaseURL)

		pipeline := usecase.NewPipelineUseCase(
			workbookRepo,
			geocodeRepo,
			exportRepo,
			auditRepo,
			configRepo,
			consoleImpl,
			cfg,
		)

		cleanup := func() {
			if err := auditRepo.Close(); err != nil {
				consoleImpl.LogWarning("Could not close audit database: %s", err)
			}
		}
		return pipeline, cleanup, nil
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
