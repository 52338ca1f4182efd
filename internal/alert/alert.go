// Package alert provides read-only filters over a catalog snapshot.
package alert

import (
	"time"

	"github.com/medistock/medistock/internal/store"
)

// NearExpiry returns the products whose expiry date falls within the horizon,
// boundary inclusive: a product expiring exactly at asOf+horizonDays is included.
func NearExpiry(products []store.Product, asOf time.Time, horizonDays int) []store.Product {
	cutoff := asOf.AddDate(0, 0, horizonDays)
	matched := make([]store.Product, 0)
	for _, p := range products {
		if !p.ExpiryDate.After(cutoff) {
			matched = append(matched, p)
		}
	}
	return matched
}

// LowStock returns the products whose stock is at or below the threshold,
// boundary inclusive.
func LowStock(products []store.Product, threshold int32) []store.Product {
	matched := make([]store.Product, 0)
	for _, p := range products {
		if p.StockQuantity <= threshold {
			matched = append(matched, p)
		}
	}
	return matched
}
