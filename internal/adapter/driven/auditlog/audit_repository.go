package auditlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
	"github.com/lucasmn/sales-insights-go/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	upload_timestamp TEXT NOT NULL,
	file_name TEXT NOT NULL,
	transactions_rows INTEGER NOT NULL,
	customers_rows INTEGER NOT NULL,
	products_rows INTEGER NOT NULL
);`

// SQLiteAuditRepository is the append-only upload log backed by a local
// SQLite database.
type SQLiteAuditRepository struct {
	db *sql.DB
}

// NewSQLiteAuditRepository opens (creating if needed) the audit database at
// path. Use ":memory:" for an ephemeral log.
func NewSQLiteAuditRepository(path string) (repository.AuditRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database '%s': %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing audit schema: %w", err)
	}
	return &SQLiteAuditRepository{db: db}, nil
}

// LogUpload appends one upload record. The stored timestamp is UTC.
func (r *SQLiteAuditRepository) LogUpload(record entity.UploadRecord) error {
	ts := record.UploadTimestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.Exec(
		`INSERT INTO uploads (upload_timestamp, file_name, transactions_rows, customers_rows, products_rows)
		 VALUES (?, ?, ?, ?, ?)`,
		ts.UTC().Format(time.RFC3339),
		record.FileName,
		record.TransactionsRows,
		record.CustomersRows,
		record.ProductsRows,
	)
	if err != nil {
		return fmt.Errorf("inserting upload record: %w", err)
	}
	return nil
}

// ListUploads returns the newest records first. A limit <= 0 returns all.
func (r *SQLiteAuditRepository) ListUploads(limit int) ([]entity.UploadRecord, error) {
	query := `SELECT id, upload_timestamp, file_name, transactions_rows, customers_rows, products_rows
		FROM uploads ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying upload records: %w", err)
	}
	defer rows.Close()

	var records []entity.UploadRecord
	for rows.Next() {
		var rec entity.UploadRecord
		var ts string
		if err := rows.Scan(&rec.ID, &ts, &rec.FileName, &rec.TransactionsRows, &rec.CustomersRows, &rec.ProductsRows); err != nil {
			return nil, fmt.Errorf("scanning upload record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp '%s' in audit log: %w", ts, err)
		}
		rec.UploadTimestamp = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading upload records: %w", err)
	}
	return records, nil
}

func (r *SQLiteAuditRepository) Close() error {
	return r.db.Close()
}
