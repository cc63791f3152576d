package models

import "time"

// RecentlyViewedEntry is one product in a visitor's recently viewed list
type RecentlyViewedEntry struct {
	Handle   string    `json:"handle" msgpack:"h"`
	Title    string    `json:"title" msgpack:"t"`
	ImageURL string    `json:"imageUrl" msgpack:"i"`
	ViewedAt time.Time `json:"viewedAt" msgpack:"v"`
}
