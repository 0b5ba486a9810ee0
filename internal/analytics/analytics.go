package analytics

import (
	"github.com/shopspring/decimal"

	"exchangesim/types"
)

// orderSource is the slice of the order store the analytics engine consumes.
type orderSource interface {
	Orders(side types.Side, product, timestamp string) []types.Order
	Timestamps() []string
	All() []types.Order
}

// Engine derives time series from the order store's current snapshot. Every
// method is a pure read; the store is never mutated.
type Engine struct {
	store orderSource
}

func New(store orderSource) *Engine {
	return &Engine{store: store}
}

func highPrice(orders []types.Order) decimal.Decimal {
	high := orders[0].Price
	for _, o := range orders[1:] {
		if o.Price.GreaterThan(high) {
			high = o.Price
		}
	}
	return high
}

func lowPrice(orders []types.Order) decimal.Decimal {
	low := orders[0].Price
	for _, o := range orders[1:] {
		if o.Price.LessThan(low) {
			low = o.Price
		}
	}
	return low
}

// vwap is sum(price*amount)/sum(amount). The bool is false when the total
// amount is zero; no meaningful price exists for such a bucket.
func vwap(orders []types.Order) (decimal.Decimal, bool) {
	value := decimal.Zero
	amount := decimal.Zero
	for _, o := range orders {
		value = value.Add(o.Price.Mul(o.Amount))
		amount = amount.Add(o.Amount)
	}
	if amount.IsZero() {
		return decimal.Decimal{}, false
	}
	return value.Div(amount), true
}
