package models

// CollectionSummary is a collection suggestion in search results
type CollectionSummary struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// SearchResult holds predictive search suggestions for a query
type SearchResult struct {
	Query       string              `json:"query"`
	Products    []ProductCard       `json:"products"`
	Collections []CollectionSummary `json:"collections"`
	Suggestions []string            `json:"suggestions"`
}
