package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

const (
	chartRows  = 20
	barWidth   = 50
	labelWidth = 12
)

// DrawCandlesticks renders an ASCII candlestick grid, one column per candle:
// '*' for the open-close body, '|' for the low-high wick. Price labels run
// down the left edge.
func DrawCandlesticks(w io.Writer, candles []types.Candlestick) {
	if len(candles) == 0 {
		fmt.Fprintln(w, "no data to plot")
		return
	}

	high := candles[0].High
	low := candles[0].Low
	for _, c := range candles[1:] {
		if c.High.GreaterThan(high) {
			high = c.High
		}
		if c.Low.LessThan(low) {
			low = c.Low
		}
	}

	span := high.Sub(low)
	if span.IsZero() {
		span = decimal.NewFromInt(1)
	}
	step := span.Div(decimal.NewFromInt(chartRows))

	for r := chartRows; r >= 0; r-- {
		level := low.Add(step.Mul(decimal.NewFromInt(int64(r))))
		fmt.Fprintf(w, "%*s |", labelWidth, level.StringFixed(6))
		for _, c := range candles {
			switch {
			case inBody(c, level):
				fmt.Fprint(w, "*")
			case inWick(c, level):
				fmt.Fprint(w, "|")
			default:
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%*s +%s\n", labelWidth, "", strings.Repeat("-", len(candles)))
	fmt.Fprintf(w, "%*s  %s .. %s\n", labelWidth, "", candles[0].Timestamp, candles[len(candles)-1].Timestamp)
}

func inBody(c types.Candlestick, level decimal.Decimal) bool {
	lo, hi := c.Open, c.Close
	if lo.GreaterThan(hi) {
		lo, hi = hi, lo
	}
	return level.GreaterThanOrEqual(lo) && level.LessThanOrEqual(hi)
}

func inWick(c types.Candlestick, level decimal.Decimal) bool {
	return level.GreaterThanOrEqual(c.Low) && level.LessThanOrEqual(c.High)
}

// DrawVolume renders one horizontal bar per timestamp, scaled to the largest
// amount in the series.
func DrawVolume(w io.Writer, series []types.VolumePoint) {
	if len(series) == 0 {
		fmt.Fprintln(w, "no data to plot")
		return
	}

	max := series[0].Amount
	for _, p := range series[1:] {
		if p.Amount.GreaterThan(max) {
			max = p.Amount
		}
	}
	if max.IsZero() {
		max = decimal.NewFromInt(1)
	}

	for _, p := range series {
		n := int(p.Amount.Mul(decimal.NewFromInt(barWidth)).Div(max).IntPart())
		fmt.Fprintf(w, "%s | %-*s %s\n", timeLabel(p.Timestamp), barWidth, strings.Repeat("#", n), p.Amount)
	}
}

// DrawMeanPrices renders one bar per minute bucket, scaled to the highest
// average price.
func DrawMeanPrices(w io.Writer, points []types.MeanPricePoint) {
	if len(points) == 0 {
		fmt.Fprintln(w, "no data to plot")
		return
	}

	max := points[0].Price
	for _, p := range points[1:] {
		if p.Price.GreaterThan(max) {
			max = p.Price
		}
	}
	if max.IsZero() {
		max = decimal.NewFromInt(1)
	}

	for _, p := range points {
		n := int(p.Price.Mul(decimal.NewFromInt(barWidth)).Div(max).IntPart())
		fmt.Fprintf(w, "%s | %-*s %s\n", p.Minute, barWidth, strings.Repeat("#", n), p.Price)
	}
}

// timeLabel shows the "HH:MM:SS" part of a full timestamp when present.
func timeLabel(timestamp string) string {
	if len(timestamp) >= 19 {
		return timestamp[11:19]
	}
	return timestamp
}
