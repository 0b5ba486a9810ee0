package analytics

import (
	"github.com/shopspring/decimal"

	"exchangesim/types"
)

// VolumeSeries reports the total matching amount per global timestamp,
// ascending. Unlike Candlesticks the series is dense: timestamps where the
// side/product has no orders appear with a zero amount.
func (e *Engine) VolumeSeries(side types.Side, product string) []types.VolumePoint {
	timestamps := e.store.Timestamps()
	series := make([]types.VolumePoint, 0, len(timestamps))

	for _, ts := range timestamps {
		total := decimal.Zero
		for _, o := range e.store.Orders(side, product, ts) {
			total = total.Add(o.Amount)
		}
		series = append(series, types.VolumePoint{Timestamp: ts, Amount: total})
	}
	return series
}
