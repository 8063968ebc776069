package usecase

import (
	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// JoinRecords inner-joins transactions with customers on customer_id, then
// the result with products on product_code. Transactions referencing an
// unknown customer or product are excluded, not reported. Duplicate keys on
// either side yield one output row per match pair, like a relational inner
// join; in practice keys are expected to be unique.
func JoinRecords(
	transactions []entity.Transaction,
	customers []entity.Customer,
	products []entity.Product,
) []entity.JoinedRecord {
	customersByID := make(map[string][]entity.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.CustomerID] = append(customersByID[c.CustomerID], c)
	}

	productsByCode := make(map[string][]entity.Product, len(products))
	for _, p := range products {
		productsByCode[p.ProductCode] = append(productsByCode[p.ProductCode], p)
	}

	joined := []entity.JoinedRecord{}
	for _, tx := range transactions {
		for _, c := range customersByID[tx.CustomerID] {
			for _, p := range productsByCode[tx.ProductCode] {
				joined = append(joined, entity.JoinedRecord{
					TransactionID:   tx.TransactionID,
					CustomerID:      tx.CustomerID,
					TransactionDate: tx.TransactionDate,
					ProductCode:     tx.ProductCode,
					Amount:          tx.Amount,
					PaymentType:     tx.PaymentType,
					Name:            c.Name,
					Email:           c.Email,
					DOB:             c.DOB,
					Address:         c.Address,
					CreatedDate:     c.CreatedDate,
					ProductName:     p.ProductName,
					Category:        p.Category,
					UnitPrice:       p.UnitPrice,
				})
			}
		}
	}
	return joined
}
