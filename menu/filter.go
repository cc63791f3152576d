// Package menu trims navigation trees down to what a shopper can reach.
package menu

import "vitrina/models"

// Filter returns a copy of items keeping only those for which available
// returns true, applied recursively to every level. A grouping item with
// no URL of its own is dropped once all of its children are gone.
// The input tree is not modified.
func Filter(items []models.MenuItem, available func(models.MenuItem) bool) []models.MenuItem {
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if !available(item) {
			continue
		}
		hadChildren := len(item.Items) > 0
		item.Items = Filter(item.Items, available)
		if hadChildren && len(item.Items) == 0 && item.URL == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ResourceAvailable keeps plain links and items whose resource is available.
func ResourceAvailable(item models.MenuItem) bool {
	return item.ResourceID == "" || item.Available
}

// Count returns the number of items in the tree.
func Count(items []models.MenuItem) int {
	n := len(items)
	for _, item := range items {
		n += Count(item.Items)
	}
	return n
}
