package feed

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"exchangesim/types"
)

// ErrMalformedRecord marks a CSV line failing field-count or value checks.
var ErrMalformedRecord = errors.New("malformed order record")

const fieldCount = 5

// ParseLine converts one "timestamp,product,side,price,amount" line into a
// dataset-owned order. Side must be exactly "ask" or "bid"; price and amount
// must both be positive.
func ParseLine(line string) (types.Order, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return types.Order{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedRecord, fieldCount, len(fields))
	}
	side := types.ParseSide(fields[2])
	if side == types.SideUnknown {
		return types.Order{}, fmt.Errorf("%w: bad side %q", ErrMalformedRecord, fields[2])
	}
	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return types.Order{}, fmt.Errorf("%w: bad price %q", ErrMalformedRecord, fields[3])
	}
	amount, err := decimal.NewFromString(fields[4])
	if err != nil {
		return types.Order{}, fmt.Errorf("%w: bad amount %q", ErrMalformedRecord, fields[4])
	}
	if price.LessThanOrEqual(decimal.Zero) || amount.LessThanOrEqual(decimal.Zero) {
		return types.Order{}, fmt.Errorf("%w: price %s, amount %s", ErrMalformedRecord, price, amount)
	}
	return types.NewOrder(price, amount, fields[0], fields[1], side, types.OwnerDataset), nil
}

// Loader reads historical order CSVs into memory before the simulation
// starts. It is the only component touching the filesystem.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	return &Loader{log: log}
}

// ReadFile loads every well-formed record from one CSV file. Malformed lines
// are skipped and counted; a single bad line never aborts the batch.
func (l *Loader) ReadFile(path string) ([]types.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var orders []types.Order
	skipped := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		order, err := ParseLine(line)
		if err != nil {
			skipped++
			continue
		}
		orders = append(orders, order)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	l.log.Info("loaded order file",
		zap.String("path", path),
		zap.Int("orders", len(orders)),
		zap.Int("skipped", skipped))
	return orders, nil
}

// Load merges the records of every listed file, in argument order.
func (l *Loader) Load(paths ...string) ([]types.Order, error) {
	var all []types.Order
	for _, p := range paths {
		orders, err := l.ReadFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
	}
	return all, nil
}
