package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lucasmn/sales-insights-go/internal/adapter/driving/httpserver"
	"github.com/lucasmn/sales-insights-go/internal/application/usecase"
	"github.com/lucasmn/sales-insights-go/internal/shared/types"
	"github.com/lucasmn/sales-insights-go/pkg/version"
)

// PipelineFactory builds the pipeline use case once the flags are parsed.
// The returned cleanup closes whatever the factory opened (the audit
// database in particular).
type PipelineFactory func(args *types.CLIArgs) (*usecase.PipelineUseCase, func(), error)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	pipelineFactory PipelineFactory
	version         string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "sales-insights [workbook.xlsx]",
		Short:   "Sales Insights pipeline CLI",
		Version: formattedVersion,
		Args:    cobra.MaximumNArgs(1),
		RunE:    app.runUploadCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Sales Insights version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the Excel workbook to process")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"xlsx"}, "Specify report types: xlsx, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().String("db", "", "Path to the upload audit database (default: sales_insights.db)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload HTTP server",
		RunE:  app.runServeCommand,
	}
	serveCmd.Flags().String("listen", "", "Address to listen on (default: :8080)")
	rootCmd.AddCommand(serveCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the upload audit log, newest first",
		RunE:  app.runHistoryCommand,
	}
	historyCmd.Flags().Int("limit", 0, "Maximum number of records to show (0 = all)")
	rootCmd.AddCommand(historyCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	workbookFile, _ := cmd.Flags().GetString("file")
	reportName, _ := cmd.Flags().GetString("report-name")
	reportType, _ := cmd.Flags().GetStringSlice("report-type")
	dir, _ := cmd.Flags().GetString("dir")
	databasePath, _ := cmd.Flags().GetString("db")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:   configFile,
		WorkbookFile: workbookFile,
		ReportName:   reportName,
		ReportType:   reportType,
		Dir:          dir,
		DatabasePath: databasePath,
	}

	return args, nil
}

// runUploadCommand processes one workbook given with --file.
func (app *CLIApp) runUploadCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if cliArgs.WorkbookFile == "" && len(args) > 0 {
		cliArgs.WorkbookFile = args[0]
	}

	pipeline, cleanup, err := app.pipelineFactory(cliArgs)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	_, err = pipeline.RunUpload(ctx, cliArgs)
	return err
}

// runServeCommand starts the upload HTTP server.
func (app *CLIApp) runServeCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cliArgs.ListenAddr = listen
	}

	pipeline, cleanup, err := app.pipelineFactory(cliArgs)
	if err != nil {
		return err
	}
	defer cleanup()

	server := httpserver.NewServer(pipeline, cliArgs)
	return server.Run(context.Background())
}

// runHistoryCommand renders the upload audit log.
func (app *CLIApp) runHistoryCommand(cmd *cobra.Command, args []string) error {
	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	pipeline, cleanup, err := app.pipelineFactory(cliArgs)
	if err != nil {
		return err
	}
	defer cleanup()

	limit, _ := cmd.Flags().GetInt("limit")
	return pipeline.RunHistory(limit)
}

// SetPipelineFactory sets the pipeline builder used by every command.
func (app *CLIApp) SetPipelineFactory(factory PipelineFactory) {
	app.pipelineFactory = factory
}
