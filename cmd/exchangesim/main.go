package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"exchangesim/internal/book"
	"exchangesim/internal/feed"
	"exchangesim/internal/repository"
	"exchangesim/internal/sim"
	"exchangesim/internal/wallet"
	"exchangesim/types"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := sim.LoadConfig("")

	loader := feed.NewLoader(logger)
	orders, err := loader.Load(cfg.DataFiles...)
	if err != nil {
		logger.Fatal("loading order files", zap.Error(err))
	}

	if cfg.DatabaseURL != "" {
		archived, err := loadArchive(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("loading order archive", zap.Error(err))
		}
		orders = append(orders, archived...)
	}

	w := wallet.New()
	for currency, amount := range cfg.Balances {
		if err := w.InsertCurrency(currency, amount); err != nil {
			logger.Fatal("seeding wallet", zap.String("currency", currency), zap.Error(err))
		}
	}

	simulation, err := sim.New(book.New(orders), w, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("starting simulation", zap.Error(err))
	}
	if err := simulation.Run(); err != nil {
		logger.Fatal("simulation", zap.Error(err))
	}
}

func loadArchive(dbURL string, logger *zap.Logger) ([]types.Order, error) {
	db, err := repository.NewDatabase(dbURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := context.Background()
	orders, err := db.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	valid, skipped := repository.FilterValid(orders)
	logger.Info("loaded order archive",
		zap.Int("orders", len(valid)),
		zap.Int("skipped", skipped))
	return valid, nil
}

func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
