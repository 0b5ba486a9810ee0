package types

import (
	"github.com/shopspring/decimal"
)

// Owner markers distinguishing dataset-sourced orders from user-submitted ones.
const (
	OwnerDataset = "dataset"
	OwnerUser    = "simuser"
)

// Order is a single order book record. Identity fields are fixed once built;
// Amount is the unfilled remainder and is only ever decremented on the working
// copies the matcher takes, never on stored records.
type Order struct {
	Price     decimal.Decimal
	Amount    decimal.Decimal
	Timestamp string // "YYYY/MM/DD HH:MM:SS.ffffff", sorts lexicographically
	Product   string // "BASE/QUOTE", e.g. "ETH/USDT"
	Side      Side
	Owner     string
}

func NewOrder(
	price decimal.Decimal,
	amount decimal.Decimal,
	timestamp string,
	product string,
	side Side,
	owner string,
) Order {
	return Order{
		Price:     price,
		Amount:    amount,
		Timestamp: timestamp,
		Product:   product,
		Side:      side,
		Owner:     owner,
	}
}

// Minute returns the "HH:MM" bucket of the order's timestamp.
func (o Order) Minute() string {
	if len(o.Timestamp) < 16 {
		return o.Timestamp
	}
	return o.Timestamp[11:16]
}
