package workbook

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/domain/repository"
)

const (
	sheetTransactions = "Transactions"
	sheetCustomers    = "Customers"
	sheetProducts     = "Products"
)

var requiredColumns = map[string][]string{
	sheetTransactions: {"transaction_id", "customer_id", "transaction_date", "product_code", "amount", "payment_type"},
	sheetProducts:     {"product_code", "product_name", "category", "unit_price"},
}

// dateLayouts are tried in order when parsing transaction dates. Excel cells
// formatted as dates come back from excelize in the short m-d-y form.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"01-02-06 15:04",
	"2006/01/02",
}

// WorkbookRepositoryImpl implements the WorkbookRepository using excelize.
type WorkbookRepositoryImpl struct{}

// NewWorkbookRepository creates a new implementation of WorkbookRepository.
func NewWorkbookRepository() repository.WorkbookRepository {
	return &WorkbookRepositoryImpl{}
}

// ReadWorkbook opens an uploaded workbook and extracts the three raw tables.
// Any shape violation (missing sheet, missing column, malformed date or
// amount) rejects the whole upload with a descriptive error; no partial data
// is returned.
func (r *WorkbookRepositoryImpl) ReadWorkbook(path string) (*entity.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading Excel file: %w", err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	present := make(map[string]bool, len(sheetNames))
	for _, name := range sheetNames {
		present[name] = true
	}
	for _, required := range []string{sheetTransactions, sheetCustomers, sheetProducts} {
		if !present[required] {
			return nil, fmt.Errorf(
				"Excel file must contain sheets: %s, %s, %s. Found: %s",
				sheetTransactions, sheetCustomers, sheetProducts, strings.Join(sheetNames, ", "))
		}
	}

	rawCustomers, err := readCustomerColumn(f)
	if err != nil {
		return nil, err
	}

	transactions, err := readTransactions(f)
	if err != nil {
		return nil, err
	}

	products, err := readProducts(f)
	if err != nil {
		return nil, err
	}

	return &entity.WorkbookData{
		RawCustomerRows: rawCustomers,
		Transactions:    transactions,
		Products:        products,
		SourceFilename:  filepath.Base(path),
	}, nil
}

// readCustomerColumn extracts the single raw column of the Customers sheet.
// The sheet's one-column shape is part of the upload contract.
func readCustomerColumn(f *excelize.File) ([]string, error) {
	rows, err := f.GetRows(sheetCustomers)
	if err != nil {
		return nil, fmt.Errorf("error reading %s sheet: %w", sheetCustomers, err)
	}
	if len(rows) == 0 {
		return []string{}, nil
	}
	if len(rows[0]) != 1 {
		return nil, fmt.Errorf("%s sheet should have exactly 1 column, found %d", sheetCustomers, len(rows[0]))
	}

	raw := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			raw = append(raw, "")
			continue
		}
		raw = append(raw, row[0])
	}
	return raw, nil
}

func readTransactions(f *excelize.File) ([]entity.Transaction, error) {
	rows, cols, err := readSheet(f, sheetTransactions)
	if err != nil {
		return nil, err
	}

	transactions := make([]entity.Transaction, 0, len(rows))
	for i, row := range rows {
		date, err := parseDate(cell(row, cols["transaction_date"]))
		if err != nil {
			return nil, fmt.Errorf("%s sheet row %d: %w", sheetTransactions, i+2, err)
		}
		amount, err := parseAmount(cell(row, cols["amount"]))
		if err != nil {
			return nil, fmt.Errorf("%s sheet row %d: %w", sheetTransactions, i+2, err)
		}
		transactions = append(transactions, entity.Transaction{
			TransactionID:   cell(row, cols["transaction_id"]),
			CustomerID:      cell(row, cols["customer_id"]),
			TransactionDate: date,
			ProductCode:     cell(row, cols["product_code"]),
			Amount:          amount,
			PaymentType:     cell(row, cols["payment_type"]),
		})
	}
	return transactions, nil
}

func readProducts(f *excelize.File) ([]entity.Product, error) {
	rows, cols, err := readSheet(f, sheetProducts)
	if err != nil {
		return nil, err
	}

	products := make([]entity.Product, 0, len(rows))
	for i, row := range rows {
		price, err := parseAmount(cell(row, cols["unit_price"]))
		if err != nil {
			return nil, fmt.Errorf("%s sheet row %d: %w", sheetProducts, i+2, err)
		}
		products = append(products, entity.Product{
			ProductCode: cell(row, cols["product_code"]),
			ProductName: cell(row, cols["product_name"]),
			Category:    cell(row, cols["category"]),
			UnitPrice:   price,
		})
	}
	return products, nil
}

// readSheet returns the data rows of a sheet plus a header-name → column
// index map, after checking that every required column is present. Column
// order does not matter.
func readSheet(f *excelize.File, sheet string) ([][]string, map[string]int, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s sheet: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s sheet is empty", sheet)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}

	missing := []string{}
	for _, name := range requiredColumns[sheet] {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf(
			"Missing columns in %s sheet. Required: %s, Missing: %s",
			sheet, strings.Join(requiredColumns[sheet], ", "), strings.Join(missing, ", "))
	}

	return rows[1:], cols, nil
}

// cell reads a column from a possibly ragged row.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable transaction_date '%s'", value)
}

func parseAmount(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable numeric value '%s'", value)
	}
	return v, nil
}
