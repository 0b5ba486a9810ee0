package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

const ordersQuery = `
SELECT ts, product, side, price, amount
FROM orders
ORDER BY ts`

const productsQuery = `
SELECT DISTINCT product
FROM orders
ORDER BY product`

// FilterValid drops archive rows the simulator cannot model: sides other
// than "ask" or "bid", non-positive prices, and non-positive amounts. It
// returns the surviving orders and the number skipped, mirroring the checks
// the CSV feed applies at parse time.
func FilterValid(orders []types.Order) ([]types.Order, int) {
	valid := make([]types.Order, 0, len(orders))
	for _, o := range orders {
		if o.Side != types.SideAsk && o.Side != types.SideBid {
			continue
		}
		if o.Price.LessThanOrEqual(decimal.Zero) || o.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		valid = append(valid, o)
	}
	return valid, len(orders) - len(valid)
}

// GetOrders pulls the full historical order archive, already ascending by
// timestamp. Rows come back exactly as stored; callers run them through
// FilterValid before handing them to the book.
func (db *Database) GetOrders(ctx context.Context) ([]types.Order, error) {
	rows, err := db.conn.Query(ctx, ordersQuery)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []types.Order
	for rows.Next() {
		var (
			ts      string
			product string
			side    string
			price   decimal.Decimal
			amount  decimal.Decimal
		)
		if err := rows.Scan(&ts, &product, &side, &price, &amount); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, types.NewOrder(price, amount, ts, product, types.ParseSide(side), types.OwnerDataset))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	return orders, nil
}

// GetProducts returns every distinct product in the archive.
func (db *Database) GetProducts(ctx context.Context) ([]string, error) {
	rows, err := db.conn.Query(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
