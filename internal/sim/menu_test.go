package sim

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"exchangesim/internal/book"
	"exchangesim/internal/wallet"
	"exchangesim/types"
)

func runMenu(t *testing.T, input string, orders []types.Order) string {
	t.Helper()
	var out strings.Builder
	s, err := New(book.New(orders), wallet.New(), zap.NewNop(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func menuOrders() []types.Order {
	return []types.Order{
		ord("100", "1", t1, "ETH/USDT", types.SideAsk, types.OwnerDataset),
		ord("105", "2", t1, "ETH/USDT", types.SideBid, types.OwnerDataset),
		ord("101", "1", t2, "ETH/USDT", types.SideAsk, types.OwnerDataset),
	}
}

func TestRun_QuitAndEOF(t *testing.T) {
	out := runMenu(t, "0\n", menuOrders())
	if !strings.Contains(out, "Enter option") {
		t.Errorf("menu not printed: %q", out)
	}
	// EOF without a quit command also terminates cleanly.
	runMenu(t, "", menuOrders())
}

func TestRun_HelpAndStats(t *testing.T) {
	out := runMenu(t, "1\n2\n0\n", menuOrders())
	if !strings.Contains(out, "make money") {
		t.Error("help text missing")
	}
	if !strings.Contains(out, "Product: ETH/USDT") {
		t.Error("market stats missing")
	}
}

func TestRun_ContinuePrintsSales(t *testing.T) {
	out := runMenu(t, "6\n0\n", menuOrders())
	if !strings.Contains(out, "Sale ETH/USDT price: 100 amount: 1") {
		t.Errorf("sale line missing from output: %q", out)
	}
}

func TestRun_TradeCountsIncludeSales(t *testing.T) {
	// Step once so the sale record is counted alongside the 3 orders.
	out := runMenu(t, "6\n10\n0\n", menuOrders())
	if !strings.Contains(out, "ETH/USDT: 4") {
		t.Errorf("trade counts wrong: %q", out)
	}
}

func TestRun_InvalidChoice(t *testing.T) {
	out := runMenu(t, "banana\n0\n", menuOrders())
	if !strings.Contains(out, "Invalid choice") {
		t.Error("invalid choice not reported")
	}
}
