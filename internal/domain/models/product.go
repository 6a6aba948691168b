package models

type ProductSource string

const (
	SourcePrimary  ProductSource = "primary"
	SourceFallback ProductSource = "fallback"
)

type Product struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Price       float64 `json:"price" db:"price"`
	Image       string  `json:"image" db:"image"`
	Description string  `json:"description" db:"description"`
}

var fallbackProducts = [...]Product{
	{ID: "1", Name: "Whole Pineapple", Price: 19.99, Image: "whole-pineapple.jpg"},
	{ID: "2", Name: "Canned Pineapple", Price: 29.99, Image: "canned-pineapple.jpg"},
	{ID: "3", Name: "Pineapple Juice", Price: 39.99, Image: "pineapple-juice.jpg"},
	{ID: "4", Name: "Pineapple Sauce", Price: 49.99, Image: "pineapple-sauce.jpg"},
	{ID: "5", Name: "Sliced Pineapple", Price: 59.99, Image: "sliced-pineapple.jpg"},
	{ID: "6", Name: "Pineapple Bar Soap", Price: 69.99, Image: "pineapple-bar-soap.jpg"},
	{ID: "7", Name: "Pineapple State Flag", Price: 79.99, Image: "pineapple-state-flag.jpg"},
	{ID: "8", Name: "Pineapple Hat", Price: 89.99, Image: "pineapple-hat.jpg"},
}

// FallbackProducts returns a fresh copy of the fixed catalog served when the primary one is unreachable.
func FallbackProducts() []Product {
	products := make([]Product, len(fallbackProducts))
	copy(products, fallbackProducts[:])

	return products
}
