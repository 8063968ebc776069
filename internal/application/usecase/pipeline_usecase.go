package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/domain/repository"
	"github.com/lucasmn/sales-insights-go/internal/shared/types"
)

// PipelineUseCase runs the upload pipeline: workbook ingestion, customer
// decoding, dataset reconciliation, geolocation enrichment, analytics and
// artifact export.
type PipelineUseCase struct {
	workbookRepo repository.WorkbookRepository
	geocodeRepo  repository.GeocodeRepository
	exportRepo   repository.ExportRepository
	auditRepo    repository.AuditRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
	config       *types.Config
}

// NewPipelineUseCase creates a new pipeline use case.
func NewPipelineUseCase(
	workbookRepo repository.WorkbookRepository,
	geocodeRepo repository.GeocodeRepository,
	exportRepo repository.ExportRepository,
	auditRepo repository.AuditRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *PipelineUseCase {
	return &PipelineUseCase{
		workbookRepo: workbookRepo,
		geocodeRepo:  geocodeRepo,
		exportRepo:   exportRepo,
		auditRepo:    auditRepo,
		configRepo:   configRepo,
		console:      console,
		config:       config,
	}
}

// UploadResult is what a driving adapter surfaces to the user after one
// upload has been processed.
type UploadResult struct {
	Bundle        *entity.ResultBundle
	ArtifactPaths map[string]string
	Message       string
}

// RunUpload processes one workbook end to end. Input-shape errors (missing
// sheets or columns, a customer row that fails to decode) reject the upload;
// geocoding failures never do.
func (uc *PipelineUseCase) RunUpload(ctx context.Context, args *types.CLIArgs) (*UploadResult, error) {
	if args.ConfigFile != "" {
		fileConfig, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		applyConfigFile(args, uc.config, fileConfig)
	}
	if args.WorkbookFile == "" {
		return nil, types.ErrNoWorkbookFile
	}

	status := uc.console.Status("Validating workbook...")

	data, err := uc.workbookRepo.ReadWorkbook(args.WorkbookFile)
	if err != nil {
		status.Stop()
		return nil, err
	}

	customers, err := ParseCustomerRows(data.RawCustomerRows)
	if err != nil {
		status.Stop()
		return nil, err
	}

	if uc.auditRepo != nil {
		record := entity.UploadRecord{
			UploadTimestamp:  time.Now(),
			FileName:         baseName(data.SourceFilename),
			TransactionsRows: len(data.Transactions),
			CustomersRows:    len(customers),
			ProductsRows:     len(data.Products),
		}
		if err := uc.auditRepo.LogUpload(record); err != nil {
			uc.console.LogWarning("Could not record upload in audit log: %s", err)
		}
	}

	status.Update("Reconciling datasets...")
	bundle := uc.ProcessData(ctx, data, customers)
	status.Stop()

	if bundle.Geocoding.MockModeUsed {
		uc.console.LogWarning("Geocoding service unreachable; mock coordinates were assigned by city name")
	}

	uc.displayResults(bundle)

	result := &UploadResult{
		Bundle:        bundle,
		ArtifactPaths: map[string]string{},
		Message:       mockMessage(bundle.Geocoding),
	}

	reportName := args.ReportName
	if reportName == "" {
		reportName = baseName(data.SourceFilename) + "_processed"
	}

	for _, reportType := range args.ReportType {
		switch reportType {
		case "xlsx":
			path, err := uc.exportRepo.ExportToWorkbook(bundle, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export workbook: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported workbook: %s", path)
				result.ArtifactPaths["xlsx"] = path
			}
		case "json":
			path, err := uc.exportRepo.ExportToJSON(bundle, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", path)
				result.ArtifactPaths["json"] = path
			}
		case "pdf":
			path, err := uc.exportRepo.ExportToPDF(bundle, reportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export summary to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported summary to PDF: %s", path)
				result.ArtifactPaths["pdf"] = path
			}
		default:
			uc.console.LogWarning("Unknown report type '%s' (expected xlsx, json or pdf)", reportType)
		}
	}

	return result, nil
}

// ProcessData runs the reconciliation and analytics pipeline over validated
// workbook data. An empty join short-circuits to a degenerate bundle with
// zeroed aggregates and the original, unenriched customer set.
func (uc *PipelineUseCase) ProcessData(
	ctx context.Context,
	data *entity.WorkbookData,
	customers []entity.Customer,
) *entity.ResultBundle {
	joined := JoinRecords(data.Transactions, customers, data.Products)
	if len(joined) == 0 {
		return &entity.ResultBundle{
			EnrichedCustomers:     customers,
			CategorySpend:         []entity.CategorySpend{},
			TopSpendersByCategory: []entity.TopSpenderPerCategory{},
			CustomerRanking:       []entity.CustomerRanking{},
			Insights: entity.KeyInsights{
				TotalTransactions: len(data.Transactions),
				UniqueCustomers:   uniqueCustomerCount(customers),
			},
			Geocoding: entity.GeocodeOutcome{ProbedAddresses: []string{}},
		}
	}

	AttachAddressHistory(customers, BuildAddressHistory(joined))

	addresses := UniqueAddresses(customers)
	cache, outcome := uc.EnrichGeolocation(ctx, addresses)
	ApplyCoordinates(customers, cache)
	BackFillCoordinates(customers)

	spend := ComputeCategorySpend(joined)
	topSpenders := ComputeTopSpenders(spend)
	ranking := ComputeCustomerRanking(joined)
	insights := ComputeKeyInsights(len(data.Transactions), joined, customers, ranking)

	return &entity.ResultBundle{
		EnrichedCustomers:     customers,
		CategorySpend:         spend,
		TopSpendersByCategory: topSpenders,
		CustomerRanking:       ranking,
		Insights:              insights,
		Geocoding:             outcome,
	}
}

// RunHistory renders the upload audit log, newest first.
func (uc *PipelineUseCase) RunHistory(limit int) error {
	records, err := uc.auditRepo.ListUploads(limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		uc.console.LogInfo("No uploads recorded yet.")
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("ID")
	table.AddColumn("Uploaded At")
	table.AddColumn("File")
	table.AddColumn("Transactions")
	table.AddColumn("Customers")
	table.AddColumn("Products")
	for _, rec := range records {
		table.AddRow(
			fmt.Sprintf("%d", rec.ID),
			rec.UploadTimestamp.Format("2006-01-02 15:04:05"),
			rec.FileName,
			fmt.Sprintf("%d", rec.TransactionsRows),
			fmt.Sprintf("%d", rec.CustomersRows),
			fmt.Sprintf("%d", rec.ProductsRows),
		)
	}
	uc.console.Print(table.Render())
	return nil
}

// displayResults renders the analytics tables on the console.
func (uc *PipelineUseCase) displayResults(bundle *entity.ResultBundle) {
	insights := bundle.Insights

	summary := uc.console.CreateTable()
	summary.AddColumn("Total Transactions")
	summary.AddColumn("Total Revenue")
	summary.AddColumn("Unique Customers")
	summary.AddColumn("Top Spender Overall")
	topLine := "No customer data available for ranking"
	if insights.TopRankedCustomer != nil {
		topLine = fmt.Sprintf("%s ($%.2f)", insights.TopRankedCustomer.Name, insights.TopRankedCustomer.TotalAmount)
	}
	summary.AddRow(
		fmt.Sprintf("%d", insights.TotalTransactions),
		fmt.Sprintf("$%.2f", insights.TotalRevenue),
		fmt.Sprintf("%d", insights.UniqueCustomers),
		topLine,
	)
	uc.console.Print(summary.Render())

	if len(bundle.CustomerRanking) > 0 {
		ranking := uc.console.CreateTable()
		ranking.AddColumn("Rank")
		ranking.AddColumn("Customer")
		ranking.AddColumn("Customer ID")
		ranking.AddColumn("Total Spend")
		for _, row := range bundle.CustomerRanking {
			ranking.AddRow(
				fmt.Sprintf("%d", row.Rank),
				row.Name,
				row.CustomerID,
				fmt.Sprintf("$%.2f", row.TotalAmount),
			)
		}
		uc.console.Print(ranking.Render())
	}

	if len(bundle.TopSpendersByCategory) > 0 {
		top := uc.console.CreateTable()
		top.AddColumn("Category")
		top.AddColumn("Top Spender")
		top.AddColumn("Amount")
		for _, row := range bundle.TopSpendersByCategory {
			top.AddRow(row.Category, row.TopSpender, fmt.Sprintf("$%.2f", row.Amount))
		}
		uc.console.Print(top.Render())
	}
}

// mockMessage builds the upload-response note shown when mock mode engaged,
// listing the probed addresses truncated to 35 characters.
func mockMessage(outcome entity.GeocodeOutcome) string {
	if !outcome.MockModeUsed {
		return ""
	}
	shortened := make([]string, 0, len(outcome.ProbedAddresses))
	for _, address := range outcome.ProbedAddresses {
		if len(address) > 35 {
			address = address[:35] + "..."
		}
		shortened = append(shortened, address)
	}
	return fmt.Sprintf(
		"Mock geolocation employed - coordinates assigned according to city. First %d fake addresses: %s",
		len(shortened), strings.Join(shortened, " | "),
	)
}

// applyConfigFile merges file configuration under CLI flags: a flag that was
// given wins, an absent one takes the file value.
func applyConfigFile(args *types.CLIArgs, runtime *types.Config, file *types.Config) {
	if args.ReportName == "" && file.ReportName != "" {
		args.ReportName = file.ReportName
	}
	if len(args.ReportType) == 0 && len(file.ReportType) > 0 {
		args.ReportType = file.ReportType
	}
	if args.Dir == "" && file.Dir != "" {
		args.Dir = file.Dir
	}
	if args.DatabasePath == "" && file.DatabasePath != "" {
		args.DatabasePath = file.DatabasePath
	}
	if args.ListenAddr == "" && file.ListenAddr != "" {
		args.ListenAddr = file.ListenAddr
	}

	geo := &runtime.Geocoding
	fileGeo := file.Geocoding
	if fileGeo.BaseURL != "" {
		geo.BaseURL = fileGeo.BaseURL
	}
	if fileGeo.ProbeSize > 0 {
		geo.ProbeSize = fileGeo.ProbeSize
	}
	if fileGeo.ProbeTimeout > 0 {
		geo.ProbeTimeout = fileGeo.ProbeTimeout
	}
	if fileGeo.ProbeDelay > 0 {
		geo.ProbeDelay = fileGeo.ProbeDelay
	}
	if fileGeo.FullTimeout > 0 {
		geo.FullTimeout = fileGeo.FullTimeout
	}
	if fileGeo.FullDelay > 0 {
		geo.FullDelay = fileGeo.FullDelay
	}
}

// baseName strips the directory and extension from an uploaded filename.
func baseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
