package sim

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config carries everything the driver needs to wire a simulation. Data
// sources are explicit parameters here; nothing in the core keeps a global
// file list.
type Config struct {
	// DataFiles are the CSV order histories to load, in order.
	DataFiles []string
	// DatabaseURL enables the Postgres order archive when non-empty.
	DatabaseURL string
	// Balances seed the user's wallet, currency -> amount.
	Balances map[string]decimal.Decimal
}

func Default() Config {
	return Config{
		DataFiles: []string{"20200317.csv", "20200601.csv"},
		Balances: map[string]decimal.Decimal{
			"BTC":  decimal.NewFromInt(10),
			"USDT": decimal.NewFromInt(10000),
		},
	}
}

// LoadConfig loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env file > defaults.
func LoadConfig(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if files := os.Getenv("SIM_DATA_FILES"); files != "" {
		cfg.DataFiles = strings.Split(files, ",")
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if balances := parseBalances(os.Getenv("SIM_WALLET")); len(balances) > 0 {
		cfg.Balances = balances
	}
	return cfg
}

// parseBalances reads "BTC=10,USDT=10000"; malformed pairs are dropped.
func parseBalances(s string) map[string]decimal.Decimal {
	if s == "" {
		return nil
	}
	balances := make(map[string]decimal.Decimal)
	for _, pair := range strings.Split(s, ",") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 || kv[0] == "" {
			continue
		}
		amount, err := decimal.NewFromString(kv[1])
		if err != nil || amount.IsNegative() {
			continue
		}
		balances[kv[0]] = amount
	}
	return balances
}
