package repository

import (
	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// ExportRepository defines the interface for producing output artifacts from
// a result bundle. Each method returns the absolute path of the written file.
type ExportRepository interface {
	ExportToWorkbook(bundle *entity.ResultBundle, filename string, outputDir string) (string, error)
	ExportToPDF(bundle *entity.ResultBundle, filename string, outputDir string) (string, error)
	ExportToJSON(bundle *entity.ResultBundle, filename string, outputDir string) (string, error)
}
