package wallet

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func userOrder(price, amount, product string, side types.Side) types.Order {
	return types.NewOrder(d(price), d(amount), "2020/03/17 10:00:00.000000", product, side, types.OwnerUser)
}

func funded(t *testing.T, balances map[string]string) *Wallet {
	t.Helper()
	w := New()
	for currency, amount := range balances {
		if err := w.InsertCurrency(currency, d(amount)); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

func TestWallet_InsertCurrency(t *testing.T) {
	w := New()
	if err := w.InsertCurrency("BTC", d("1.5")); err != nil {
		t.Fatal(err)
	}
	if err := w.InsertCurrency("BTC", d("0.5")); err != nil {
		t.Fatal(err)
	}
	if !w.Balance("BTC").Equal(d("2")) {
		t.Errorf("balance = %s, want 2", w.Balance("BTC"))
	}
	if err := w.InsertCurrency("BTC", d("-1")); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("error = %v, want ErrNegativeAmount", err)
	}
}

func TestWallet_CanFulfill(t *testing.T) {
	w := funded(t, map[string]string{"ETH": "2", "USDT": "500"})

	tests := []struct {
		name  string
		order types.Order
		want  bool
	}{
		{"ask covered by base", userOrder("300", "2", "ETH/USDT", types.SideAsk), true},
		{"ask exceeds base", userOrder("300", "2.1", "ETH/USDT", types.SideAsk), false},
		{"bid covered by quote", userOrder("250", "2", "ETH/USDT", types.SideBid), true},
		{"bid exceeds quote", userOrder("251", "2", "ETH/USDT", types.SideBid), false},
		{"bad product", userOrder("250", "1", "ETHUSDT", types.SideBid), false},
		{"sale side not an open order", userOrder("250", "1", "ETH/USDT", types.SideAskSale), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.CanFulfill(tt.order); got != tt.want {
				t.Errorf("CanFulfill() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWallet_ProcessSale_AskSale(t *testing.T) {
	w := funded(t, map[string]string{"ETH": "2"})
	sale := userOrder("200", "1.5", "ETH/USDT", types.SideAskSale)

	if err := w.ProcessSale(sale); err != nil {
		t.Fatal(err)
	}
	if !w.Balance("ETH").Equal(d("0.5")) {
		t.Errorf("ETH = %s, want 0.5", w.Balance("ETH"))
	}
	if !w.Balance("USDT").Equal(d("300")) {
		t.Errorf("USDT = %s, want 300", w.Balance("USDT"))
	}
}

func TestWallet_ProcessSale_BidSale(t *testing.T) {
	w := funded(t, map[string]string{"USDT": "500"})
	sale := userOrder("200", "2", "ETH/USDT", types.SideBidSale)

	if err := w.ProcessSale(sale); err != nil {
		t.Fatal(err)
	}
	if !w.Balance("USDT").Equal(d("100")) {
		t.Errorf("USDT = %s, want 100", w.Balance("USDT"))
	}
	if !w.Balance("ETH").Equal(d("2")) {
		t.Errorf("ETH = %s, want 2", w.Balance("ETH"))
	}
}

func TestWallet_ProcessSale_InsufficientFunds(t *testing.T) {
	w := funded(t, map[string]string{"USDT": "100"})
	sale := userOrder("200", "2", "ETH/USDT", types.SideBidSale)

	if err := w.ProcessSale(sale); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("error = %v, want ErrInsufficientFunds", err)
	}
	// Failed settlement leaves balances alone.
	if !w.Balance("USDT").Equal(d("100")) {
		t.Errorf("USDT = %s, want 100", w.Balance("USDT"))
	}
}

func TestWallet_ProcessSale_IgnoresDatasetSales(t *testing.T) {
	w := funded(t, map[string]string{"ETH": "1"})
	sale := types.NewOrder(d("200"), d("1"), "2020/03/17 10:00:00.000000", "ETH/USDT", types.SideAskSale, types.OwnerDataset)

	if err := w.ProcessSale(sale); err != nil {
		t.Fatal(err)
	}
	if !w.Balance("ETH").Equal(d("1")) {
		t.Errorf("ETH = %s, dataset sale should not settle", w.Balance("ETH"))
	}
}

func TestWallet_ProcessSale_OpenOrderSide(t *testing.T) {
	w := funded(t, map[string]string{"ETH": "1"})
	open := userOrder("200", "1", "ETH/USDT", types.SideAsk)

	if err := w.ProcessSale(open); !errors.Is(err, ErrUnsettlableSale) {
		t.Errorf("error = %v, want ErrUnsettlableSale", err)
	}
}

func TestWallet_String(t *testing.T) {
	w := funded(t, map[string]string{"USDT": "10", "BTC": "1"})
	want := "BTC : 1\nUSDT : 10\n"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
