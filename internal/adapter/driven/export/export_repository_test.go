package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

func testBundle() *entity.ResultBundle {
	lat, lon := -33.8688, 151.2093
	return &entity.ResultBundle{
		EnrichedCustomers: []entity.Customer{
			{CustomerID: "C1", Name: "Alice", Address: "1 Pitt St Sydney", Latitude: &lat, Longitude: &lon},
			{CustomerID: "C2", Name: "Bob", Address: "unknown"},
		},
		CategorySpend: []entity.CategorySpend{
			{CustomerID: "C1", Name: "Alice", Category: "Tools", TotalAmount: 25},
		},
		TopSpendersByCategory: []entity.TopSpenderPerCategory{
			{Category: "Tools", TopSpender: "Alice", Amount: 25},
		},
		CustomerRanking: []entity.CustomerRanking{
			{CustomerID: "C1", Name: "Alice", TotalAmount: 25, Rank: 1},
		},
		Insights: entity.KeyInsights{
			TotalTransactions: 3,
			TotalRevenue:      25,
			UniqueCustomers:   2,
		},
		Geocoding: entity.GeocodeOutcome{ProbedAddresses: []string{}},
	}
}

func TestExportToWorkbook(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportToWorkbook(testBundle(), "report", dir)
	if err != nil {
		t.Fatalf("ExportToWorkbook: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") || !strings.Contains(path, "report_") {
		t.Errorf("timestamped xlsx filename expected, got %q", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Enriched Customers", "Customer Ranking", "Spend by Category", "Top Spenders by Category"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, got)
	}

	rows, err := f.GetRows("Enriched Customers")
	if err != nil {
		t.Fatalf("reading customers sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 customers, got %d rows", len(rows))
	}
	if rows[1][1] != "Alice" {
		t.Errorf("unexpected customer row: %v", rows[1])
	}
	// Bob has no coordinates; the cells stay empty.
	if len(rows[2]) > 6 && rows[2][6] != "" {
		t.Errorf("unresolved coordinates must be empty cells: %v", rows[2])
	}
}

func TestExportToJSON(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportToJSON(testBundle(), "report", dir)
	if err != nil {
		t.Fatalf("ExportToJSON: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading JSON artifact: %v", err)
	}

	var decoded entity.ResultBundle
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("artifact must round-trip: %v", err)
	}
	if decoded.Insights.TotalRevenue != 25 || len(decoded.EnrichedCustomers) != 2 {
		t.Errorf("unexpected decoded bundle: %+v", decoded.Insights)
	}
	if decoded.EnrichedCustomers[1].Latitude != nil {
		t.Error("null coordinates must stay null through JSON")
	}
}

func TestExportToPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.ExportToPDF(testBundle(), "report", dir)
	if err != nil {
		t.Fatalf("ExportToPDF: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF artifact is empty")
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("unexpected artifact name %q", path)
	}
}
