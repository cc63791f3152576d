package models

// Collection is a merchandising collection with one chunk of its products
type Collection struct {
	ID          string                  `json:"id"`
	Handle      string                  `json:"handle"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Products    Connection[ProductCard] `json:"products"`
}
