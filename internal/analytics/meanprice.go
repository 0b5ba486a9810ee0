package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

// MeanPriceByMinute averages the prices of all matching orders per "HH:MM"
// minute bucket, scanning the whole store directly rather than the timestamp
// timeline. Averages are rounded to 6 decimal places (half away from zero).
// Output is ascending by minute label, which is chronological within a day.
func (e *Engine) MeanPriceByMinute(side types.Side, product string) []types.MeanPricePoint {
	buckets := make(map[string][]decimal.Decimal)
	for _, o := range e.store.All() {
		if o.Side != side || o.Product != product {
			continue
		}
		minute := o.Minute()
		buckets[minute] = append(buckets[minute], o.Price)
	}

	minutes := make([]string, 0, len(buckets))
	for minute := range buckets {
		minutes = append(minutes, minute)
	}
	sort.Strings(minutes)

	points := make([]types.MeanPricePoint, 0, len(minutes))
	for _, minute := range minutes {
		prices := buckets[minute]
		sum := decimal.Zero
		for _, p := range prices {
			sum = sum.Add(p)
		}
		avg := sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(6)
		points = append(points, types.MeanPricePoint{Minute: minute, Price: avg})
	}
	return points
}
