package book

import (
	"errors"
	"sort"

	"exchangesim/types"
)

// ErrEmptyBook is returned by time-cursor queries on a store with no records.
var ErrEmptyBook = errors.New("order book has no entries")

// Book holds every order record of the simulation, ascending by timestamp.
// Records are never removed: matching appends new sale-typed records instead
// of rewriting the originals, so the history only grows.
type Book struct {
	orders []types.Order
}

// New builds a Book from one or more pre-loaded order batches and sorts the
// combined collection by timestamp. Batches are assumed caller-validated.
func New(batches ...[]types.Order) *Book {
	total := 0
	for _, batch := range batches {
		total += len(batch)
	}
	orders := make([]types.Order, 0, total)
	for _, batch := range batches {
		orders = append(orders, batch...)
	}
	b := &Book{orders: orders}
	b.sortByTimestamp()
	return b
}

// Stable keeps insertion order on equal timestamps.
func (b *Book) sortByTimestamp() {
	sort.SliceStable(b.orders, func(i, j int) bool {
		return b.orders[i].Timestamp < b.orders[j].Timestamp
	})
}

// Orders returns copies of every record matching side, product and timestamp
// exactly, in storage order. No match yields an empty result, not an error.
func (b *Book) Orders(side types.Side, product, timestamp string) []types.Order {
	var sub []types.Order
	for _, o := range b.orders {
		if o.Side == side && o.Product == product && o.Timestamp == timestamp {
			sub = append(sub, o)
		}
	}
	return sub
}

// Insert appends a record and restores timestamp order. Price and amount are
// not validated here; callers validate before inserting.
func (b *Book) Insert(order types.Order) {
	b.orders = append(b.orders, order)
	b.sortByTimestamp()
}

// EarliestTime returns the minimum timestamp present.
func (b *Book) EarliestTime() (string, error) {
	if len(b.orders) == 0 {
		return "", ErrEmptyBook
	}
	return b.orders[0].Timestamp, nil
}

// NextTime returns the smallest stored timestamp strictly greater than
// current. When current is at the end of history it wraps around to the
// earliest timestamp, so the simulation loops.
func (b *Book) NextTime(current string) (string, error) {
	if len(b.orders) == 0 {
		return "", ErrEmptyBook
	}
	for _, o := range b.orders {
		if o.Timestamp > current {
			return o.Timestamp, nil
		}
	}
	return b.orders[0].Timestamp, nil
}

// KnownProducts returns every distinct product present, sorted for stable
// iteration.
func (b *Book) KnownProducts() []string {
	seen := make(map[string]struct{})
	var products []string
	for _, o := range b.orders {
		if _, ok := seen[o.Product]; !ok {
			seen[o.Product] = struct{}{}
			products = append(products, o.Product)
		}
	}
	sort.Strings(products)
	return products
}

// Timestamps returns every distinct timestamp across the full collection,
// ascending and deduplicated. Analytics iterate this shared timeline
// regardless of which product or side they aggregate.
func (b *Book) Timestamps() []string {
	var out []string
	for i, o := range b.orders {
		if i == 0 || o.Timestamp != b.orders[i-1].Timestamp {
			out = append(out, o.Timestamp)
		}
	}
	return out
}

// All returns a copy of the full collection in storage order.
func (b *Book) All() []types.Order {
	return append([]types.Order(nil), b.orders...)
}

// Len reports the number of stored records.
func (b *Book) Len() int {
	return len(b.orders)
}
