package entity

import "time"

// Product is one row of the Products sheet.
type Product struct {
	ProductCode string  `json:"product_code"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unit_price"`
}

// Transaction is one row of the Transactions sheet.
type Transaction struct {
	TransactionID   string    `json:"transaction_id"`
	CustomerID      string    `json:"customer_id"`
	TransactionDate time.Time `json:"transaction_date"`
	ProductCode     string    `json:"product_code"`
	Amount          float64   `json:"amount"`
	PaymentType     string    `json:"payment_type"`
}

// JoinedRecord is the flattened inner join of a transaction with its matched
// customer and product. It exists only for transactions whose customer_id AND
// product_code both matched.
type JoinedRecord struct {
	TransactionID   string    `json:"transaction_id"`
	CustomerID      string    `json:"customer_id"`
	TransactionDate time.Time `json:"transaction_date"`
	ProductCode     string    `json:"product_code"`
	Amount          float64   `json:"amount"`
	PaymentType     string    `json:"payment_type"`

	Name        string `json:"name"`
	Email       string `json:"email"`
	DOB         string `json:"dob"`
	Address     string `json:"address"`
	CreatedDate string `json:"created_date"`

	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unit_price"`
}
