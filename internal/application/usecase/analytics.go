package usecase

import (
	"sort"

	"github.com/lucasmn/sales-insights-go/internal/domain/entity"
)

// ComputeCategorySpend groups the joined records by (customer_id, name,
// category) and sums the amounts, sorted by customer ascending then amount
// descending.
func ComputeCategorySpend(joined []entity.JoinedRecord) []entity.CategorySpend {
	type groupKey struct {
		customerID string
		name       string
		category   string
	}

	index := make(map[groupKey]int)
	spend := []entity.CategorySpend{}
	for _, rec := range joined {
		key := groupKey{rec.CustomerID, rec.Name, rec.Category}
		if i, ok := index[key]; ok {
			spend[i].TotalAmount += rec.Amount
			continue
		}
		index[key] = len(spend)
		spend = append(spend, entity.CategorySpend{
			CustomerID:  rec.CustomerID,
			Name:        rec.Name,
			Category:    rec.Category,
			TotalAmount: rec.Amount,
		})
	}

	sort.SliceStable(spend, func(i, j int) bool {
		if spend[i].CustomerID != spend[j].CustomerID {
			return spend[i].CustomerID < spend[j].CustomerID
		}
		return spend[i].TotalAmount > spend[j].TotalAmount
	})
	return spend
}

// ComputeTopSpenders selects, per distinct category, the category-spend row
// with the maximum amount. Ties keep the first-encountered row in input
// order. The result is sorted by amount descending.
func ComputeTopSpenders(spend []entity.CategorySpend) []entity.TopSpenderPerCategory {
	index := make(map[string]int)
	top := []entity.TopSpenderPerCategory{}
	for _, row := range spend {
		if i, ok := index[row.Category]; ok {
			if row.TotalAmount > top[i].Amount {
				top[i].TopSpender = row.Name
				top[i].Amount = row.TotalAmount
			}
			continue
		}
		index[row.Category] = len(top)
		top = append(top, entity.TopSpenderPerCategory{
			Category:   row.Category,
			TopSpender: row.Name,
			Amount:     row.TotalAmount,
		})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount > top[j].Amount
	})
	return top
}

// ComputeCustomerRanking groups the joined records by (customer_id, name),
// sums the amounts, and assigns a dense rank by total descending: equal
// totals share a rank, the next distinct total gets the previous rank + 1.
// Rows come back sorted by rank ascending.
func ComputeCustomerRanking(joined []entity.JoinedRecord) []entity.CustomerRanking {
	type groupKey struct {
		customerID string
		name       string
	}

	index := make(map[groupKey]int)
	ranking := []entity.CustomerRanking{}
	for _, rec := range joined {
		key := groupKey{rec.CustomerID, rec.Name}
		if i, ok := index[key]; ok {
			ranking[i].TotalAmount += rec.Amount
			continue
		}
		index[key] = len(ranking)
		ranking = append(ranking, entity.CustomerRanking{
			CustomerID:  rec.CustomerID,
			Name:        rec.Name,
			TotalAmount: rec.Amount,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalAmount > ranking[j].TotalAmount
	})

	rank := 0
	for i := range ranking {
		if i == 0 || ranking[i].TotalAmount != ranking[i-1].TotalAmount {
			rank++
		}
		ranking[i].Rank = rank
	}
	return ranking
}

// ComputeKeyInsights assembles the headline figures: total transaction count
// (pre-join, i.e. unfiltered), total revenue over the joined records, the
// distinct customer count of the post-enrichment set, and the top-ranked
// customer (nil when no rankings exist).
func ComputeKeyInsights(
	totalTransactions int,
	joined []entity.JoinedRecord,
	customers []entity.Customer,
	ranking []entity.CustomerRanking,
) entity.KeyInsights {
	revenue := 0.0
	for _, rec := range joined {
		revenue += rec.Amount
	}

	insights := entity.KeyInsights{
		TotalTransactions: totalTransactions,
		TotalRevenue:      revenue,
		UniqueCustomers:   uniqueCustomerCount(customers),
	}
	if len(ranking) > 0 {
		top := ranking[0]
		insights.TopRankedCustomer = &top
	}
	return insights
}

func uniqueCustomerCount(customers []entity.Customer) int {
	seen := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		seen[c.CustomerID] = struct{}{}
	}
	return len(seen)
}
