package book

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"exchangesim/types"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func order(price, amount, ts, product string, side types.Side, owner string) types.Order {
	return types.NewOrder(d(price), d(amount), ts, product, side, owner)
}

func datasetOrder(price, amount, ts, product string, side types.Side) types.Order {
	return order(price, amount, ts, product, side, types.OwnerDataset)
}

const (
	t1 = "2020/03/17 10:00:00.000000"
	t2 = "2020/03/17 10:00:05.000000"
	t3 = "2020/03/17 10:01:00.000000"
)

func testBook() *Book {
	return New([]types.Order{
		datasetOrder("100", "1", t2, "ETH/USDT", types.SideAsk),
		datasetOrder("101", "2", t1, "ETH/USDT", types.SideAsk),
		datasetOrder("99", "0.5", t1, "ETH/USDT", types.SideBid),
		datasetOrder("0.02", "3", t3, "ETH/BTC", types.SideAsk),
	})
}

func TestBook_NewSortsByTimestamp(t *testing.T) {
	b := testBook()
	got := b.Timestamps()
	want := []string{t1, t2, t3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Timestamps() = %v, want %v", got, want)
	}
}

func TestBook_Orders(t *testing.T) {
	b := testBook()
	tests := []struct {
		name      string
		side      types.Side
		product   string
		timestamp string
		want      int
	}{
		{"asks at t1", types.SideAsk, "ETH/USDT", t1, 1},
		{"bids at t1", types.SideBid, "ETH/USDT", t1, 1},
		{"no bids at t2", types.SideBid, "ETH/USDT", t2, 0},
		{"unknown product", types.SideAsk, "DOGE/USDT", t1, 0},
		{"other product at t3", types.SideAsk, "ETH/BTC", t3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Orders(tt.side, tt.product, tt.timestamp)
			if len(got) != tt.want {
				t.Errorf("Orders() returned %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestBook_InsertPreservesOrderAndStability(t *testing.T) {
	b := New(nil)
	b.Insert(datasetOrder("2", "1", t2, "ETH/USDT", types.SideAsk))
	b.Insert(datasetOrder("1", "1", t1, "ETH/USDT", types.SideAsk))
	b.Insert(datasetOrder("3", "1", t1, "ETH/USDT", types.SideAsk))

	all := b.All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Timestamp > all[i].Timestamp {
			t.Fatalf("store out of order at %d: %s > %s", i, all[i-1].Timestamp, all[i].Timestamp)
		}
	}

	// Equal timestamps keep insertion order.
	atT1 := b.Orders(types.SideAsk, "ETH/USDT", t1)
	if len(atT1) != 2 {
		t.Fatalf("expected 2 asks at t1, got %d", len(atT1))
	}
	if !atT1[0].Price.Equal(d("1")) || !atT1[1].Price.Equal(d("3")) {
		t.Errorf("insertion order not preserved: %s, %s", atT1[0].Price, atT1[1].Price)
	}
}

func TestBook_EarliestTime(t *testing.T) {
	b := testBook()
	got, err := b.EarliestTime()
	if err != nil {
		t.Fatalf("EarliestTime() error = %v", err)
	}
	if got != t1 {
		t.Errorf("EarliestTime() = %s, want %s", got, t1)
	}
}

func TestBook_EarliestTime_Empty(t *testing.T) {
	b := New(nil)
	if _, err := b.EarliestTime(); !errors.Is(err, ErrEmptyBook) {
		t.Errorf("EarliestTime() error = %v, want ErrEmptyBook", err)
	}
	if _, err := b.NextTime(t1); !errors.Is(err, ErrEmptyBook) {
		t.Errorf("NextTime() error = %v, want ErrEmptyBook", err)
	}
}

func TestBook_NextTime_CycleVisitsEveryTimestampOnce(t *testing.T) {
	b := testBook()
	distinct := b.Timestamps()

	cur, err := b.EarliestTime()
	if err != nil {
		t.Fatal(err)
	}
	visited := []string{cur}
	for i := 1; i < len(distinct); i++ {
		cur, err = b.NextTime(cur)
		if err != nil {
			t.Fatal(err)
		}
		visited = append(visited, cur)
	}
	if !reflect.DeepEqual(visited, distinct) {
		t.Errorf("cycle visited %v, want %v", visited, distinct)
	}

	// One more step wraps back to the start.
	cur, err = b.NextTime(cur)
	if err != nil {
		t.Fatal(err)
	}
	if cur != distinct[0] {
		t.Errorf("cursor did not wrap: got %s, want %s", cur, distinct[0])
	}
}

func TestBook_KnownProducts(t *testing.T) {
	b := testBook()
	got := b.KnownProducts()
	want := []string{"ETH/BTC", "ETH/USDT"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KnownProducts() = %v, want %v", got, want)
	}
}

func TestBook_TimestampsDeduplicated(t *testing.T) {
	b := testBook()
	b.Insert(datasetOrder("50", "1", t1, "ETH/USDT", types.SideBid))
	got := b.Timestamps()
	want := []string{t1, t2, t3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Timestamps() = %v, want %v", got, want)
	}
}
