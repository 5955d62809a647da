package domain

// Brand represents a product brand. A brand owns zero or more products
// through the products.brand_id foreign key.
type Brand struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
}
