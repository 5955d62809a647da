package domain

// Category represents a product category. Categories relate to products
// many-to-many through the product_categories association table.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Bounds on the number of categories a product may reference.
const (
	MinCategories = 1
	MaxCategories = 5
)
