// Package pricing derives the price presentation shown next to variants.
package pricing

import (
	"math"
	"strconv"
	"strings"

	"vitrina/models"
)

// Discount returns the whole percentage saved when a variant sells below
// its compare-at price. It is 0 when there is no markdown, the currencies
// differ or an amount cannot be parsed.
func Discount(price models.Money, compareAt *models.Money) int {
	if compareAt == nil || !strings.EqualFold(price.CurrencyCode, compareAt.CurrencyCode) {
		return 0
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(price.Amount), 64)
	if err != nil {
		return 0
	}
	c, err := strconv.ParseFloat(strings.TrimSpace(compareAt.Amount), 64)
	if err != nil || c <= 0 || p >= c {
		return 0
	}
	return int(math.Floor((c - p) / c * 100))
}

// OnSale reports whether the variant is marked down
func OnSale(v *models.Variant) bool {
	return v != nil && Discount(v.Price, v.CompareAtPrice) > 0
}

// HasRange reports whether a product's variants are priced differently
func HasRange(r models.PriceRange) bool {
	return r.MinVariantPrice.Amount != r.MaxVariantPrice.Amount ||
		r.MinVariantPrice.CurrencyCode != r.MaxVariantPrice.CurrencyCode
}
