package wallet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("negative currency amount")
	ErrUnsettlableSale   = errors.New("sale record cannot be settled")
)

// Wallet tracks the user's currency balances. It sits outside the order book
// core: the book hands it user-owned sale records and the wallet adjusts
// balances, nothing more.
type Wallet struct {
	balances map[string]decimal.Decimal
}

func New() *Wallet {
	return &Wallet{balances: make(map[string]decimal.Decimal)}
}

// InsertCurrency credits amount of a currency.
func (w *Wallet) InsertCurrency(currency string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	w.balances[currency] = w.balances[currency].Add(amount)
	return nil
}

// Balance returns the held amount of a currency, zero when unknown.
func (w *Wallet) Balance(currency string) decimal.Decimal {
	return w.balances[currency]
}

// ContainsCurrency reports whether at least amount of a currency is held.
func (w *Wallet) ContainsCurrency(currency string, amount decimal.Decimal) bool {
	return w.balances[currency].GreaterThanOrEqual(amount)
}

// CanFulfill reports whether the wallet covers a prospective order: an ask
// spends the base currency amount, a bid spends price*amount of the quote.
// Validation happens here, before the order reaches the book.
func (w *Wallet) CanFulfill(order types.Order) bool {
	base, quote, ok := splitProduct(order.Product)
	if !ok {
		return false
	}
	switch order.Side {
	case types.SideAsk:
		return w.ContainsCurrency(base, order.Amount)
	case types.SideBid:
		return w.ContainsCurrency(quote, order.Price.Mul(order.Amount))
	}
	return false
}

// ProcessSale settles one user-owned sale record: an asksale sells base for
// quote, a bidsale buys base with quote. Sales not owned by the user are
// ignored.
func (w *Wallet) ProcessSale(sale types.Order) error {
	if sale.Owner != types.OwnerUser {
		return nil
	}
	base, quote, ok := splitProduct(sale.Product)
	if !ok {
		return fmt.Errorf("%w: bad product %q", ErrUnsettlableSale, sale.Product)
	}
	cost := sale.Price.Mul(sale.Amount)

	switch sale.Side {
	case types.SideAskSale:
		if w.balances[base].LessThan(sale.Amount) {
			return fmt.Errorf("%w: %s", ErrInsufficientFunds, base)
		}
		w.balances[base] = w.balances[base].Sub(sale.Amount)
		w.balances[quote] = w.balances[quote].Add(cost)
	case types.SideBidSale:
		if w.balances[quote].LessThan(cost) {
			return fmt.Errorf("%w: %s", ErrInsufficientFunds, quote)
		}
		w.balances[quote] = w.balances[quote].Sub(cost)
		w.balances[base] = w.balances[base].Add(sale.Amount)
	default:
		return fmt.Errorf("%w: side %q", ErrUnsettlableSale, sale.Side)
	}
	return nil
}

// String renders balances one per line, sorted by currency.
func (w *Wallet) String() string {
	currencies := make([]string, 0, len(w.balances))
	for c := range w.balances {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	var sb strings.Builder
	for _, c := range currencies {
		fmt.Fprintf(&sb, "%s : %s\n", c, w.balances[c])
	}
	return sb.String()
}

func splitProduct(product string) (base, quote string, ok bool) {
	parts := strings.SplitN(product, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
