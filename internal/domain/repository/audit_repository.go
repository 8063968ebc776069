package repository

import (
	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// AuditRepository defines the interface for the append-only upload log.
type AuditRepository interface {
	LogUpload(record entity.UploadRecord) error
	ListUploads(limit int) ([]entity.UploadRecord, error)
	Close() error
}
