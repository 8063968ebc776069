package entity

import "time"

// Customer is one structured record decoded from the Customers sheet.
// Latitude/Longitude stay nil until the geolocation enricher resolves them;
// they may remain nil permanently when every resolution strategy fails.
type Customer struct {
	CustomerID     string          `json:"customer_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	DOB            string          `json:"dob"`
	Address        string          `json:"address"`
	CreatedDate    string          `json:"created_date"`
	AddressHistory []AddressChange `json:"address_history,omitempty"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
}

// AddressChange is one entry of a customer's address-change history: the
// first transaction date on which a distinct address was observed.
type AddressChange struct {
	Date    time.Time `json:"transaction_date"`
	Address string    `json:"address"`
}
