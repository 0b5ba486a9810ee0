package book

import (
	"sort"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

// MatchAsksToBids pairs asks against bids for one product at one timestamp
// and returns the sale records generated, in generation order. The scan works
// on value snapshots of the stored records; live entries keep their amounts,
// modeling a point-in-time book. An empty result means no liquidity, never
// failure.
func (b *Book) MatchAsksToBids(product, timestamp string) []types.Order {
	asks := b.Orders(types.SideAsk, product, timestamp)
	bids := b.Orders(types.SideBid, product, timestamp)

	if len(asks) == 0 || len(bids) == 0 {
		return nil
	}

	// Price priority: cheapest ask first, highest bid first. Stable sort
	// keeps arrival order on equal prices.
	sort.SliceStable(asks, func(i, j int) bool {
		return asks[i].Price.LessThan(asks[j].Price)
	})
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Price.GreaterThan(bids[j].Price)
	})

	var sales []types.Order
	for a := range asks {
		ask := &asks[a]
		if ask.Amount.IsZero() {
			continue
		}
		for i := range bids {
			bid := &bids[i]
			if bid.Amount.IsZero() || bid.Price.LessThan(ask.Price) {
				continue
			}

			// A trade always executes at the resting ask's price.
			qty := decimal.Min(ask.Amount, bid.Amount)
			sale := types.Order{
				Price:     ask.Price,
				Amount:    qty,
				Timestamp: timestamp,
				Product:   product,
				Side:      types.SideAskSale,
				Owner:     types.OwnerDataset,
			}
			// A user leg marks the sale for settlement. The ask check runs
			// last, so when both legs are the user's the sale tags asksale.
			if bid.Owner == types.OwnerUser {
				sale.Owner = types.OwnerUser
				sale.Side = types.SideBidSale
			}
			if ask.Owner == types.OwnerUser {
				sale.Owner = types.OwnerUser
				sale.Side = types.SideAskSale
			}
			sales = append(sales, sale)

			ask.Amount = ask.Amount.Sub(qty)
			bid.Amount = bid.Amount.Sub(qty)
			if ask.Amount.IsZero() {
				break
			}
		}
	}
	return sales
}
