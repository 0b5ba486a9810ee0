package sim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"exchangesim/internal/analytics"
	"exchangesim/internal/book"
	"exchangesim/internal/wallet"
	"exchangesim/types"
)

var ErrBadOrderInput = errors.New("bad order input")

// Simulation drives the exchange: a time cursor over the order book, user
// order entry, per-step matching, and settlement of the user's trades through
// the wallet. All calls are sequential; nothing here is safe for concurrent
// use.
type Simulation struct {
	book      *book.Book
	analytics *analytics.Engine
	wallet    *wallet.Wallet
	log       *zap.Logger

	currentTime string

	in  *bufio.Scanner
	out io.Writer
}

// New positions the cursor at the earliest stored timestamp. An empty book is
// fatal here rather than silently defaulted.
func New(bk *book.Book, w *wallet.Wallet, log *zap.Logger, in io.Reader, out io.Writer) (*Simulation, error) {
	start, err := bk.EarliestTime()
	if err != nil {
		return nil, err
	}
	return &Simulation{
		book:        bk,
		analytics:   analytics.New(bk),
		wallet:      w,
		log:         log,
		currentTime: start,
		in:          bufio.NewScanner(in),
		out:         out,
	}, nil
}

// CurrentTime returns the cursor's timestamp.
func (s *Simulation) CurrentTime() string {
	return s.currentTime
}

// Step matches every known product at the current time, settles the user's
// trades, records all sales in the book and advances the cursor (wrapping at
// the end of history). It returns the sales generated this step.
func (s *Simulation) Step() ([]types.Order, error) {
	var all []types.Order
	for _, product := range s.book.KnownProducts() {
		sales := s.book.MatchAsksToBids(product, s.currentTime)
		for _, sale := range sales {
			if sale.Owner == types.OwnerUser {
				if err := s.wallet.ProcessSale(sale); err != nil {
					s.log.Warn("settlement failed",
						zap.String("product", product),
						zap.Error(err))
				}
			}
			s.book.Insert(sale)
		}
		if len(sales) > 0 {
			s.log.Info("matched",
				zap.String("product", product),
				zap.String("time", s.currentTime),
				zap.Int("sales", len(sales)))
		}
		all = append(all, sales...)
	}

	next, err := s.book.NextTime(s.currentTime)
	if err != nil {
		return nil, err
	}
	s.currentTime = next
	return all, nil
}

// Replay advances the given number of steps, showing progress.
func (s *Simulation) Replay(steps int) error {
	bar := initProgressBar(steps)
	for i := 0; i < steps; i++ {
		if _, err := s.Step(); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	return nil
}

// PlaceOrder validates a "product,price,amount" line, checks the wallet can
// cover it and inserts it at the current time under the user's ownership.
func (s *Simulation) PlaceOrder(line string, side types.Side) (types.Order, error) {
	order, err := parseOrderLine(line, s.currentTime, side)
	if err != nil {
		return types.Order{}, err
	}
	if !s.wallet.CanFulfill(order) {
		return types.Order{}, wallet.ErrInsufficientFunds
	}
	s.book.Insert(order)
	return order, nil
}

// parseOrderLine turns user input "product,price,amount" into an order. The
// price must be positive and the amount strictly positive; the book itself
// does not re-validate.
func parseOrderLine(line, timestamp string, side types.Side) (types.Order, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 3 {
		return types.Order{}, fmt.Errorf("%w: want product,price,amount", ErrBadOrderInput)
	}
	product := strings.TrimSpace(fields[0])
	if !strings.Contains(product, "/") {
		return types.Order{}, fmt.Errorf("%w: product %q", ErrBadOrderInput, product)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil || price.LessThanOrEqual(decimal.Zero) {
		return types.Order{}, fmt.Errorf("%w: price %q", ErrBadOrderInput, fields[1])
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return types.Order{}, fmt.Errorf("%w: amount %q", ErrBadOrderInput, fields[2])
	}
	if side != types.SideAsk && side != types.SideBid {
		return types.Order{}, fmt.Errorf("%w: side %q", ErrBadOrderInput, side)
	}
	return types.NewOrder(price, amount, timestamp, product, side, types.OwnerUser), nil
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Replaying order history..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
