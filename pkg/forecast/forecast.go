package forecast

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrForecastOutOfRange = errors.New("suggested budget out of range")

// marginMultiplier is the flat 10% headroom added on top of the monthly mean.
// Changing it changes every suggestion the service has ever given.
var marginMultiplier = decimal.RequireFromString("1.10")

// ForecastNextMonth suggests next month's budget as the unweighted mean of the
// monthly totals plus a 10% margin, truncated toward zero. It returns 0 when
// there are no totals. Negative totals give negative suggestions. A suggestion
// that does not fit in int64 fails with ErrForecastOutOfRange.
func ForecastNextMonth(totals MonthlyTotals) (int64, error) {
	if len(totals) == 0 {
		return 0, nil
	}
	months := decimal.NewFromInt(int64(len(totals)))
	// mean*1.10 == sum*1.10/n; dividing last keeps the truncation exact.
	suggestion, _ := totals.Sum().Mul(marginMultiplier).QuoRem(months, 0)
	if !suggestion.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %s", ErrForecastOutOfRange, suggestion.String())
	}
	return suggestion.IntPart(), nil
}

// MonthlyAverage is the unweighted mean of the totals rounded to cents, or
// zero when there are none.
func MonthlyAverage(totals MonthlyTotals) decimal.Decimal {
	if len(totals) == 0 {
		return decimal.Zero
	}
	return totals.Sum().DivRound(decimal.NewFromInt(int64(len(totals))), 2)
}
