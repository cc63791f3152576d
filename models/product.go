package models

// Money is an amount as returned by the storefront API (decimal string)
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Image describes a product or variant image
type Image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SelectedOption is one name/value pair identifying a variant
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProductOption lists the values a product offers for one option name
type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// Variant is a purchasable option combination of a product
type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	AvailableForSale bool             `json:"availableForSale"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compareAtPrice"`
	Image            *Image           `json:"image"`
}

// PriceRange is the min/max variant price of a product
type PriceRange struct {
	MinVariantPrice Money `json:"minVariantPrice"`
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// Product is the full product detail used by the product page
type Product struct {
	ID              string          `json:"id"`
	Handle          string          `json:"handle"`
	Title           string          `json:"title"`
	Vendor          string          `json:"vendor"`
	DescriptionHTML string          `json:"descriptionHtml"`
	Options         []ProductOption `json:"options"`
	Variants        []Variant       `json:"variants"`
	Images          []Image         `json:"images"`
	PriceRange      PriceRange      `json:"priceRange"`
}

// ProductCard is the reduced product shape listed on collection and search pages
type ProductCard struct {
	ID            string     `json:"id"`
	Handle        string     `json:"handle"`
	Title         string     `json:"title"`
	FeaturedImage *Image     `json:"featuredImage"`
	PriceRange    PriceRange `json:"priceRange"`
}
