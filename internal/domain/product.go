package domain

import "time"

// ProductCategory groups eggs by line.
type ProductCategory string

const (
	CategoryStandard ProductCategory = "standard"
	CategoryPremium  ProductCategory = "premium"
	CategorySpecial  ProductCategory = "especial"
	CategoryGourmet  ProductCategory = "gourmet"
)

// Product is an item of the catalogue.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    ProductCategory
	Image       *string
	Stock       int
	Status      Status
	Features    []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
