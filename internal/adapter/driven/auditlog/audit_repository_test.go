package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

func TestLogAndListUploads(t *testing.T) {
	repo, err := NewSQLiteAuditRepository(":memory:")
	if err != nil {
		t.Fatalf("opening audit repo: %v", err)
	}
	defer repo.Close()

	first := entity.UploadRecord{
		UploadTimestamp:  time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		FileName:         "sales_q1",
		TransactionsRows: 100,
		CustomersRows:    20,
		ProductsRows:     10,
	}
	second := entity.UploadRecord{
		UploadTimestamp:  time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC),
		FileName:         "sales_q2",
		TransactionsRows: 200,
		CustomersRows:    30,
		ProductsRows:     12,
	}

	if err := repo.LogUpload(first); err != nil {
		t.Fatalf("LogUpload: %v", err)
	}
	if err := repo.LogUpload(second); err != nil {
		t.Fatalf("LogUpload: %v", err)
	}

	records, err := repo.ListUploads(0)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest first.
	if records[0].FileName != "sales_q2" || records[1].FileName != "sales_q1" {
		t.Errorf("unexpected order: %s, %s", records[0].FileName, records[1].FileName)
	}
	if records[0].TransactionsRows != 200 || records[0].CustomersRows != 30 || records[0].ProductsRows != 12 {
		t.Errorf("counts must round-trip: %+v", records[0])
	}
	if !records[1].UploadTimestamp.Equal(first.UploadTimestamp) {
		t.Errorf("timestamp must round-trip, got %v", records[1].UploadTimestamp)
	}
	if records[0].ID <= records[1].ID {
		t.Errorf("ids must be monotonic: %d, %d", records[0].ID, records[1].ID)
	}
}

func TestListUploadsLimit(t *testing.T) {
	repo, err := NewSQLiteAuditRepository(":memory:")
	if err != nil {
		t.Fatalf("opening audit repo: %v", err)
	}
	defer repo.Close()

	for i := 0; i < 5; i++ {
		if err := repo.LogUpload(entity.UploadRecord{FileName: "f"}); err != nil {
			t.Fatalf("LogUpload: %v", err)
		}
	}

	records, err := repo.ListUploads(3)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("limit should cap the result, got %d", len(records))
	}
}

func TestAuditLogPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	repo, err := NewSQLiteAuditRepository(path)
	if err != nil {
		t.Fatalf("opening audit repo: %v", err)
	}
	if err := repo.LogUpload(entity.UploadRecord{FileName: "persisted"}); err != nil {
		t.Fatalf("LogUpload: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := NewSQLiteAuditRepository(path)
	if err != nil {
		t.Fatalf("reopening audit repo: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.ListUploads(0)
	if err != nil {
		t.Fatalf("ListUploads: %v", err)
	}
	if len(records) != 1 || records[0].FileName != "persisted" {
		t.Errorf("records must survive reopen: %+v", records)
	}
}
