package models

// Banner is a home page hero image
type Banner struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}
