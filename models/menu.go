package models

// Menu is a navigation menu as configured in the commerce backend
type Menu struct {
	ID     string     `json:"id"`
	Handle string     `json:"handle"`
	Items  []MenuItem `json:"items"`
}

// MenuItem is one node of the menu tree
type MenuItem struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	Type       string     `json:"type"`       // COLLECTION, PRODUCT, PAGE, HTTP, ...
	ResourceID string     `json:"resourceId"` // empty for plain links
	Available  bool       `json:"available"`  // resource is published and purchasable
	Items      []MenuItem `json:"items"`
}
