package forecast

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Month is the aggregation key of a transaction: its year and month.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) compare(other Month) int {
	switch {
	case m.Before(other):
		return -1
	case other.Before(m):
		return 1
	default:
		return 0
	}
}

type MonthTotal struct {
	Month Month
	Total decimal.Decimal
}

// MonthlyTotals holds one entry per month that had transactions, in
// chronological order. Months without transactions are absent.
type MonthlyTotals []MonthTotal

// Total returns the sum for month and whether the month is present.
func (m MonthlyTotals) Total(month Month) (decimal.Decimal, bool) {
	idx, found := slices.BinarySearchFunc(m, month, func(mt MonthTotal, target Month) int {
		return mt.Month.compare(target)
	})
	if !found {
		return decimal.Decimal{}, false
	}
	return m[idx].Total, true
}

func (m MonthlyTotals) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, mt := range m {
		sum = sum.Add(mt.Total)
	}
	return sum
}

// AggregateByMonth sums amounts per calendar month of the transaction date.
// Sums are exact.
func AggregateByMonth(transactions []Transaction) MonthlyTotals {
	sums := make(map[Month]decimal.Decimal)
	for _, t := range transactions {
		key := MonthOf(t.Date)
		sums[key] = sums[key].Add(t.Amount)
	}

	totals := make(MonthlyTotals, 0, len(sums))
	for month, total := range sums {
		totals = append(totals, MonthTotal{Month: month, Total: total})
	}
	slices.SortFunc(totals, func(a, b MonthTotal) int {
		return a.Month.compare(b.Month)
	})
	return totals
}
