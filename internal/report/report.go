// Package report provides read-only aggregations over a ledger snapshot.
package report

import (
	"sort"
	"time"

	"github.com/medistock/medistock/internal/store"
)

// DayRevenue is the summed revenue of a single calendar day.
type DayRevenue struct {
	Date    time.Time
	Revenue int64
}

// Summary aggregates the whole ledger plus the catalog size.
type Summary struct {
	TotalRevenue int64
	ItemsSold    int64
	ProductCount int
}

// DailyRevenue groups sales by calendar day and sums their total price,
// returning the days in ascending order.
func DailyRevenue(sales []store.Sale) []DayRevenue {
	byDay := make(map[time.Time]int64)
	for _, s := range sales {
		day := truncateToDay(s.SaleDate)
		byDay[day] += s.TotalPrice
	}

	days := make([]DayRevenue, 0, len(byDay))
	for day, revenue := range byDay {
		days = append(days, DayRevenue{Date: day, Revenue: revenue})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// Totals sums revenue and quantity over the ledger snapshot.
func Totals(sales []store.Sale, productCount int) Summary {
	s := Summary{ProductCount: productCount}
	for _, sale := range sales {
		s.TotalRevenue += sale.TotalPrice
		s.ItemsSold += int64(sale.Quantity)
	}
	return s
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
