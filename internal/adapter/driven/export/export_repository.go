package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/domain/repository"
)

// ExportRepositoryImpl implements the ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository creates a new implementation of ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToWorkbook writes the result bundle as a four-sheet Excel workbook.
func (r *ExportRepositoryImpl) ExportToWorkbook(bundle *entity.ResultBundle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeCustomerSheet(f, bundle.EnrichedCustomers); err != nil {
		return "", err
	}
	if err := writeRankingSheet(f, bundle.CustomerRanking); err != nil {
		return "", err
	}
	if err := writeCategorySpendSheet(f, bundle.CategorySpend); err != nil {
		return "", err
	}
	if err := writeTopSpendersSheet(f, bundle.TopSpendersByCategory); err != nil {
		return "", err
	}

	// excelize seeds new files with a default sheet we do not use.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("error removing default sheet: %w", err)
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing Excel file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func writeCustomerSheet(f *excelize.File, customers []entity.Customer) error {
	const sheet = "Enriched Customers"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	header := []interface{}{"customer_id", "name", "email", "dob", "address", "created_date", "latitude", "longitude", "address_history"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing sheet %s: %w", sheet, err)
	}

	for i, c := range customers {
		var history []string
		for _, h := range c.AddressHistory {
			history = append(history, fmt.Sprintf("%s: %s", h.Date.Format("2006-01-02"), h.Address))
		}
		row := []interface{}{
			c.CustomerID, c.Name, c.Email, c.DOB, c.Address, c.CreatedDate,
			coordCell(c.Latitude), coordCell(c.Longitude),
			strings.Join(history, "; "),
		}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("error writing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func writeRankingSheet(f *excelize.File, ranking []entity.CustomerRanking) error {
	const sheet = "Customer Ranking"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	header := []interface{}{"rank", "customer_id", "name", "total_amount"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing sheet %s: %w", sheet, err)
	}

	for i, row := range ranking {
		cells := []interface{}{row.Rank, row.CustomerID, row.Name, row.TotalAmount}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &cells); err != nil {
			return fmt.Errorf("error writing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func writeCategorySpendSheet(f *excelize.File, spend []entity.CategorySpend) error {
	const sheet = "Spend by Category"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	header := []interface{}{"customer_id", "name", "category", "amount"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing sheet %s: %w", sheet, err)
	}

	for i, row := range spend {
		cells := []interface{}{row.CustomerID, row.Name, row.Category, row.TotalAmount}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &cells); err != nil {
			return fmt.Errorf("error writing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func writeTopSpendersSheet(f *excelize.File, top []entity.TopSpenderPerCategory) error {
	const sheet = "Top Spenders by Category"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}

	header := []interface{}{"category", "top_spender", "amount"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing sheet %s: %w", sheet, err)
	}

	for i, row := range top {
		cells := []interface{}{row.Category, row.TopSpender, row.Amount}
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &cells); err != nil {
			return fmt.Errorf("error writing sheet %s: %w", sheet, err)
		}
	}
	return nil
}

// coordCell renders an optional coordinate; unresolved stays an empty cell.
func coordCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func (r *ExportRepositoryImpl) ExportToJSON(bundle *entity.ResultBundle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(bundle *entity.ResultBundle, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	drawSection := func(title string, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)

		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.AddPage()

	// Header
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr("  Sales Insights Report"), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Generated: %s", time.Now().Format("2006-01-02 15:04:05"))), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	// Key Insights
	var insights strings.Builder
	insights.WriteString(fmt.Sprintf("Total Transactions: %d\n", bundle.Insights.TotalTransactions))
	insights.WriteString(fmt.Sprintf("Total Revenue: $%.2f\n", bundle.Insights.TotalRevenue))
	insights.WriteString(fmt.Sprintf("Unique Customers: %d\n", bundle.Insights.UniqueCustomers))
	if top := bundle.Insights.TopRankedCustomer; top != nil {
		insights.WriteString(fmt.Sprintf("Top Customer: %s ($%.2f)\n", top.Name, top.TotalAmount))
	}
	if bundle.Geocoding.MockModeUsed {
		insights.WriteString("Geolocation: mock coordinates (live service unreachable)\n")
	}
	drawSection("Key Insights", insights.String())

	// Customer Ranking
	if len(bundle.CustomerRanking) > 0 {
		var b strings.Builder
		limit := len(bundle.CustomerRanking)
		if limit > 20 {
			limit = 20
		}
		for i := 0; i < limit; i++ {
			row := bundle.CustomerRanking[i]
			b.WriteString(fmt.Sprintf("#%d %s (%s): $%.2f\n", row.Rank, row.Name, row.CustomerID, row.TotalAmount))
		}
		if len(bundle.CustomerRanking) > limit {
			b.WriteString(fmt.Sprintf("... (+%d more)\n", len(bundle.CustomerRanking)-limit))
		}
		drawSection("Customer Ranking", b.String())
	}

	// Top Spenders by Category
	if len(bundle.TopSpendersByCategory) > 0 {
		var b strings.Builder
		for _, row := range bundle.TopSpendersByCategory {
			b.WriteString(fmt.Sprintf("%s: %s ($%.2f)\n", row.Category, row.TopSpender, row.Amount))
		}
		drawSection("Top Spenders by Category", b.String())
	}

	// Spend by Category
	if len(bundle.CategorySpend) > 0 {
		var b strings.Builder
		limit := len(bundle.CategorySpend)
		if limit > 30 {
			limit = 30
		}
		for i := 0; i < limit; i++ {
			row := bundle.CategorySpend[i]
			b.WriteString(fmt.Sprintf("%s | %s | %s: $%.2f\n", row.CustomerID, row.Name, row.Category, row.TotalAmount))
		}
		if len(bundle.CategorySpend) > limit {
			b.WriteString(fmt.Sprintf("... (+%d more)\n", len(bundle.CategorySpend)-limit))
		}
		drawSection("Spend by Category", b.String())
	}

	// Footer
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by Sales Insights (Go) | %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Page 1"), "", 0, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename builds a unique timestamped file name and makes sure the
// output directory exists.
func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
