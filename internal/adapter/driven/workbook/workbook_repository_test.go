package workbook

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, mutate func(f *excelize.File)) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheets := map[string][][]interface{}{
		"Transactions": {
			{"transaction_id", "customer_id", "transaction_date", "product_code", "amount", "payment_type"},
			{"T1", "C1", "2023-01-10", "P1", 30.5, "card"},
			{"T2", "C2", "2023-02-20", "P2", 12.0, "cash"},
		},
		"Customers": {
			{"customer_data"},
			{"C1_Alice_a@example.com_1990-01-15_1 Pitt St Sydney_2021-01-01"},
			{"C2_Bob_b@example.com_1985-07-22_2 Collins St Melbourne_2020-01-01"},
		},
		"Products": {
			{"product_code", "product_name", "category", "unit_price"},
			{"P1", "Widget", "Tools", 9.99},
			{"P2", "Trowel", "Garden", 4.5},
		},
	}
	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("creating sheet %s: %v", name, err)
		}
		for i, row := range rows {
			row := row
			if err := f.SetSheetRow(name, "A"+strconv.Itoa(i+1), &row); err != nil {
				t.Fatalf("writing sheet %s: %v", name, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("deleting default sheet: %v", err)
	}

	if mutate != nil {
		mutate(f)
	}

	path := filepath.Join(t.TempDir(), "upload.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeTestWorkbook(t, nil)

	repo := NewWorkbookRepository()
	data, err := repo.ReadWorkbook(path)
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}

	if len(data.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(data.Transactions))
	}
	tx := data.Transactions[0]
	if tx.TransactionID != "T1" || tx.CustomerID != "C1" || tx.PaymentType != "card" {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if tx.Amount != 30.5 {
		t.Errorf("unexpected amount %v", tx.Amount)
	}
	if tx.TransactionDate.Format("2006-01-02") != "2023-01-10" {
		t.Errorf("unexpected date %v", tx.TransactionDate)
	}

	if len(data.RawCustomerRows) != 2 {
		t.Fatalf("expected 2 raw customer rows, got %d", len(data.RawCustomerRows))
	}
	if !strings.HasPrefix(data.RawCustomerRows[0], "C1_Alice") {
		t.Errorf("raw rows must stay undecoded: %q", data.RawCustomerRows[0])
	}

	if len(data.Products) != 2 || data.Products[1].UnitPrice != 4.5 {
		t.Errorf("unexpected products: %+v", data.Products)
	}
	if data.SourceFilename != "upload.xlsx" {
		t.Errorf("unexpected source filename %q", data.SourceFilename)
	}
}

func TestReadWorkbookMissingSheet(t *testing.T) {
	path := writeTestWorkbook(t, func(f *excelize.File) {
		f.DeleteSheet("Products")
	})

	repo := NewWorkbookRepository()
	_, err := repo.ReadWorkbook(path)
	if err == nil {
		t.Fatal("expected error for missing sheet")
	}
	if !strings.Contains(err.Error(), "must contain sheets") || !strings.Contains(err.Error(), "Products") {
		t.Errorf("error should list the required sheets: %v", err)
	}
}

func TestReadWorkbookMissingColumn(t *testing.T) {
	path := writeTestWorkbook(t, func(f *excelize.File) {
		// Rename the amount header so the column check fails.
		f.SetCellValue("Transactions", "E1", "value")
	})

	repo := NewWorkbookRepository()
	_, err := repo.ReadWorkbook(path)
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), "Missing columns in Transactions sheet") || !strings.Contains(err.Error(), "amount") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadWorkbookCustomersShapeEnforced(t *testing.T) {
	path := writeTestWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Customers", "B1", "unexpected")
	})

	repo := NewWorkbookRepository()
	_, err := repo.ReadWorkbook(path)
	if err == nil {
		t.Fatal("expected error for a two-column Customers sheet")
	}
	if !strings.Contains(err.Error(), "exactly 1 column") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadWorkbookBadAmount(t *testing.T) {
	path := writeTestWorkbook(t, func(f *excelize.File) {
		f.SetCellValue("Transactions", "E2", "not-a-number")
	})

	repo := NewWorkbookRepository()
	_, err := repo.ReadWorkbook(path)
	if err == nil {
		t.Fatal("expected error for unparseable amount")
	}
	if !strings.Contains(err.Error(), "not-a-number") {
		t.Errorf("error should carry the offending value: %v", err)
	}
}

func TestReadWorkbookMissingFile(t *testing.T) {
	repo := NewWorkbookRepository()
	_, err := repo.ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
