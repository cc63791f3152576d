package menu

import (
	"net/url"

	"vitrina/models"
)

// storeTypes are menu item types pointing at pages this server renders.
var storeTypes = map[string]bool{
	"FRONTPAGE":   true,
	"COLLECTION":  true,
	"COLLECTIONS": true,
	"CATALOG":     true,
	"PRODUCT":     true,
	"SEARCH":      true,
}

// Localize rewrites the absolute shop URLs of store resources to local
// paths so navigation stays on this server. External links are kept.
func Localize(items []models.MenuItem) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		if storeTypes[item.Type] {
			item.URL = localPath(item.URL)
		}
		item.Items = Localize(item.Items)
		out[i] = item
	}
	return out
}

func localPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}
