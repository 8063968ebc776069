package entity

// CategorySpend is the amount one customer spent in one product category.
type CategorySpend struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	TotalAmount float64 `json:"amount"`
}

// TopSpenderPerCategory names the customer with the highest spend in a
// category, one row per distinct category.
type TopSpenderPerCategory struct {
	Category   string  `json:"category"`
	TopSpender string  `json:"top_spender"`
	Amount     float64 `json:"amount"`
}

// CustomerRanking is one row of the dense-ranked customer leaderboard.
// Equal totals share a rank; the next distinct total gets rank+1.
type CustomerRanking struct {
	CustomerID  string  `json:"customer_id"`
	Name        string  `json:"name"`
	TotalAmount float64 `json:"total_amount"`
	Rank        int     `json:"rank"`
}

// KeyInsights holds the headline figures for the summary report.
type KeyInsights struct {
	TotalTransactions int              `json:"total_transactions"`
	TotalRevenue      float64          `json:"total_revenue"`
	UniqueCustomers   int              `json:"unique_customers"`
	TopRankedCustomer *CustomerRanking `json:"top_ranked_customer"`
}

// ResultBundle is everything one upload produces, handed to the exporters
// and to the HTTP response builder.
type ResultBundle struct {
	EnrichedCustomers     []Customer              `json:"enriched_customers"`
	CategorySpend         []CategorySpend         `json:"customer_category_spend"`
	TopSpendersByCategory []TopSpenderPerCategory `json:"top_spenders_per_category"`
	CustomerRanking       []CustomerRanking       `json:"customer_ranking"`
	Insights              KeyInsights             `json:"key_insights"`
	Geocoding             GeocodeOutcome          `json:"geocoding"`
}
