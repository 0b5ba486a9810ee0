package types

import (
	"github.com/shopspring/decimal"
)

// Candlestick is an OHLC summary for one timestamp bucket. Close is the
// volume-weighted average price over the bucket; Open carries the previous
// candle's Close.
type Candlestick struct {
	Timestamp string
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
}

// VolumePoint is one entry of the volume time series: total matching amount
// at one timestamp. The series is dense over the global timeline, so Amount
// may be zero.
type VolumePoint struct {
	Timestamp string
	Amount    decimal.Decimal
}

// MeanPricePoint is the arithmetic mean price over one "HH:MM" minute bucket.
type MeanPricePoint struct {
	Minute string
	Price  decimal.Decimal
}
