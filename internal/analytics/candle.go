package analytics

import (
	"github.com/shopspring/decimal"

	"exchangesim/types"
)

// Candlesticks builds the OHLC series for one side and product over the
// global timeline. Timestamps with no matching orders, or whose orders carry
// no volume, contribute no candle, so the output is a sparse subsequence of
// the timeline. Close is the VWAP of the bucket; Open is the previous emitted
// candle's Close, or the candle's own Close for the first one.
func (e *Engine) Candlesticks(side types.Side, product string) []types.Candlestick {
	var candles []types.Candlestick
	var prevClose decimal.Decimal

	for _, ts := range e.store.Timestamps() {
		entries := e.store.Orders(side, product, ts)
		if len(entries) == 0 {
			continue
		}

		closePrice, ok := vwap(entries)
		if !ok {
			continue
		}
		openPrice := closePrice
		if len(candles) > 0 {
			openPrice = prevClose
		}

		candles = append(candles, types.Candlestick{
			Timestamp: ts,
			Open:      openPrice,
			High:      highPrice(entries),
			Low:       lowPrice(entries),
			Close:     closePrice,
		})
		prevClose = closePrice
	}
	return candles
}
