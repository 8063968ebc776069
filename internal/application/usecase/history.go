package usecase

import (
	"sort"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// BuildAddressHistory derives, for each customer present in the joined set,
// the chronological sequence of distinct addresses observed in their
// transactions: records sorted by transaction_date ascending, keeping the
// first row for each distinct address value.
func BuildAddressHistory(joined []entity.JoinedRecord) map[string][]entity.AddressChange {
	byCustomer := make(map[string][]entity.JoinedRecord)
	for _, rec := range joined {
		byCustomer[rec.CustomerID] = append(byCustomer[rec.CustomerID], rec)
	}

	history := make(map[string][]entity.AddressChange, len(byCustomer))
	for customerID, recs := range byCustomer {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].TransactionDate.Before(recs[j].TransactionDate)
		})

		seen := make(map[string]struct{}, len(recs))
		changes := []entity.AddressChange{}
		for _, rec := range recs {
			if _, ok := seen[rec.Address]; ok {
				continue
			}
			seen[rec.Address] = struct{}{}
			changes = append(changes, entity.AddressChange{
				Date:    rec.TransactionDate,
				Address: rec.Address,
			})
		}
		history[customerID] = changes
	}
	return history
}

// AttachAddressHistory left-merges the built history onto the customer set.
// Customers with no joined transactions keep an empty history; that is never
// an error.
func AttachAddressHistory(customers []entity.Customer, history map[string][]entity.AddressChange) {
	for i := range customers {
		customers[i].AddressHistory = history[customers[i].CustomerID]
	}
}
