package entity

import "time"

// WorkbookData holds the three raw tables extracted from a validated upload.
// Customer rows stay undecoded here; turning them into Customer records is
// the parser's job, not the reader's.
type WorkbookData struct {
	RawCustomerRows []string
	Transactions    []Transaction
	Products        []Product
	SourceFilename  string
}

// UploadRecord is one append-only audit log entry.
type UploadRecord struct {
	ID               int64     `json:"id"`
	UploadTimestamp  time.Time `json:"upload_timestamp"`
	FileName         string    `json:"file_name"`
	TransactionsRows int       `json:"transactions_rows"`
	CustomersRows    int       `json:"customers_rows"`
	ProductsRows     int       `json:"products_rows"`
}
