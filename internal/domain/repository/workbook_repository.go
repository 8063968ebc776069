package repository

import (
	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// WorkbookRepository defines the interface for reading and validating an
// uploaded Excel workbook. Implementations reject workbooks that miss a
// required sheet or column with a descriptive input-shape error.
type WorkbookRepository interface {
	ReadWorkbook(path string) (*entity.WorkbookData, error)
}
