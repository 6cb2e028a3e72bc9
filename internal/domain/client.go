package domain

import "time"

// DefaultClientType is applied when a client is created without a type.
const DefaultClientType = "Mayorista"

// Client is a business customer buying wholesale.
type Client struct {
	ID           int64
	CompanyName  string
	BusinessType string
	ContactName  string
	Email        string
	Phone        *string
	Address      *string
	TaxID        *string
	ClientType   string
	CreditLimit  float64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// ClientStats summarizes active clients.
type ClientStats struct {
	Total          int64
	NewLast30Days  int64
	ByBusinessType []BusinessTypeCount
}

// BusinessTypeCount is one row of the per-type breakdown.
type BusinessTypeCount struct {
	BusinessType string
	Count        int64
}
