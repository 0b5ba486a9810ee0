package sim

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"exchangesim/internal/plot"
	"exchangesim/types"
)

// Charts cap the number of candles so the grid fits a terminal.
const maxChartCandles = 50

// Run executes the interactive command loop until quit or EOF on input.
func (s *Simulation) Run() error {
	for {
		s.printMenu()
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		switch strings.TrimSpace(line) {
		case "1":
			fmt.Fprintln(s.out, "Help - your aim is to make money. Analyse the market and make bids and offers.")
		case "2":
			s.printMarketStats()
		case "3":
			s.enterOrder(types.SideAsk)
		case "4":
			s.enterOrder(types.SideBid)
		case "5":
			fmt.Fprint(s.out, s.wallet)
		case "6":
			s.advance()
		case "7":
			s.printCandlestickChart()
		case "8":
			s.printVolumeChart()
		case "9":
			s.printMeanPriceChart()
		case "10":
			s.printTradeCounts()
		case "11":
			s.replayPrompt()
		case "0":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice, enter 0-11")
		}
	}
}

func (s *Simulation) printMenu() {
	fmt.Fprintf(s.out, `
Current time: %s
1: Print help
2: Print exchange stats
3: Make an ask
4: Make a bid
5: Print wallet
6: Continue to next time frame
7: Print candlestick chart
8: Print volume chart
9: Print average price chart
10: Print trades per product
11: Replay n time frames
0: Quit
Enter option: `, s.currentTime)
}

func (s *Simulation) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Simulation) prompt(msg string) (string, bool) {
	fmt.Fprint(s.out, msg)
	return s.readLine()
}

func (s *Simulation) printMarketStats() {
	for _, product := range s.book.KnownProducts() {
		asks := s.book.Orders(types.SideAsk, product, s.currentTime)
		bids := s.book.Orders(types.SideBid, product, s.currentTime)
		fmt.Fprintf(s.out, "Product: %s\n", product)
		fmt.Fprintf(s.out, "  asks: %d  bids: %d\n", len(asks), len(bids))
		if len(asks) > 0 {
			lo, hi := priceRange(asks)
			fmt.Fprintf(s.out, "  min ask: %s  max ask: %s\n", lo, hi)
		}
	}
}

func priceRange(orders []types.Order) (lo, hi string) {
	min := orders[0].Price
	max := orders[0].Price
	for _, o := range orders[1:] {
		if o.Price.LessThan(min) {
			min = o.Price
		}
		if o.Price.GreaterThan(max) {
			max = o.Price
		}
	}
	return min.String(), max.String()
}

func (s *Simulation) enterOrder(side types.Side) {
	line, ok := s.prompt(fmt.Sprintf("Make a %s - enter product,price,amount (e.g. ETH/BTC,200,0.5): ", side))
	if !ok {
		return
	}
	order, err := s.PlaceOrder(line, side)
	if err != nil {
		fmt.Fprintf(s.out, "Order rejected: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s placed: %s %s @ %s\n", side, order.Product, order.Amount, order.Price)
}

func (s *Simulation) advance() {
	fmt.Fprintln(s.out, "Going to next time frame...")
	sales, err := s.Step()
	if err != nil {
		fmt.Fprintf(s.out, "Step failed: %v\n", err)
		return
	}
	for _, sale := range sales {
		fmt.Fprintf(s.out, "Sale %s price: %s amount: %s\n", sale.Product, sale.Price, sale.Amount)
	}
}

func (s *Simulation) printCandlestickChart() {
	product, ok := s.prompt("Enter product for candlestick (e.g. ETH/USDT): ")
	if !ok {
		return
	}
	candles := s.analytics.Candlesticks(types.SideAsk, strings.TrimSpace(product))
	if len(candles) > maxChartCandles {
		candles = candles[len(candles)-maxChartCandles:]
	}
	plot.DrawCandlesticks(s.out, candles)
}

func (s *Simulation) printVolumeChart() {
	product, ok := s.prompt("Enter product for volume chart (e.g. ETH/USDT): ")
	if !ok {
		return
	}
	plot.DrawVolume(s.out, s.analytics.VolumeSeries(types.SideAsk, strings.TrimSpace(product)))
}

func (s *Simulation) printMeanPriceChart() {
	product, ok := s.prompt("Enter product (e.g. ETH/USDT): ")
	if !ok {
		return
	}
	choice, ok := s.prompt("Mean price for (1) ask or (2) bid? ")
	if !ok {
		return
	}
	side := types.SideBid
	if strings.TrimSpace(choice) == "1" {
		side = types.SideAsk
	}
	points := s.analytics.MeanPriceByMinute(side, strings.TrimSpace(product))
	if len(points) == 0 {
		fmt.Fprintln(s.out, "No mean price data for that product and side.")
		return
	}
	plot.DrawMeanPrices(s.out, points)
}

func (s *Simulation) printTradeCounts() {
	counts := s.analytics.TradeCountsByProduct()
	products := make([]string, 0, len(counts))
	for p := range counts {
		products = append(products, p)
	}
	sort.Strings(products)

	fmt.Fprintln(s.out, "Total orders per product:")
	for _, p := range products {
		fmt.Fprintf(s.out, "%s: %d\n", p, counts[p])
	}
}

func (s *Simulation) replayPrompt() {
	line, ok := s.prompt("How many time frames to replay? ")
	if !ok {
		return
	}
	steps, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || steps <= 0 {
		fmt.Fprintln(s.out, "Enter a positive number.")
		return
	}
	if err := s.Replay(steps); err != nil {
		fmt.Fprintf(s.out, "Replay failed: %v\n", err)
	}
	fmt.Fprintln(s.out)
}
