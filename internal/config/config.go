package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/clearing"
)

// Config holds all configuration for the simulator
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	Log             LogConfig
	Ledger          LedgerConfig
	Clearing        ClearingConfig
	Kafka           KafkaConfig
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

type LedgerConfig struct {
	DefaultOpeningBalance decimal.Decimal
	DebtorAgentBIC        string
}

type ClearingConfig struct {
	Networks clearing.Networks
	Delays   clearing.Delays
}

// KafkaConfig leaves event publishing to the log when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Load reads an optional .env file, then the environment, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	balance, err := decimal.NewFromString(getEnv("DEFAULT_OPENING_BALANCE", "10000.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_OPENING_BALANCE: %w", err)
	}
	if balance.IsNegative() {
		return nil, fmt.Errorf("invalid DEFAULT_OPENING_BALANCE: must not be negative")
	}

	d := delayReader{}
	delays := clearing.Delays{
		Validation:   d.read("DELAY_VALIDATION", clearing.DefaultDelays.Validation),
		FundCheck:    d.read("DELAY_FUND_CHECK", clearing.DefaultDelays.FundCheck),
		Routing:      d.read("DELAY_ROUTING", clearing.DefaultDelays.Routing),
		Settlement:   d.read("DELAY_SETTLEMENT", clearing.DefaultDelays.Settlement),
		Credit:       d.read("DELAY_CREDIT", clearing.DefaultDelays.Credit),
		Confirmation: d.read("DELAY_CONFIRMATION", clearing.DefaultDelays.Confirmation),
	}
	shutdown := d.read("SHUTDOWN_TIMEOUT", 10*time.Second)
	if d.err != nil {
		return nil, d.err
	}

	format := strings.ToLower(getEnv("LOG_FORMAT", "json"))
	if format != "json" && format != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or console", format)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		ShutdownTimeout: shutdown,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: format,
		},
		Ledger: LedgerConfig{
			DefaultOpeningBalance: balance,
			DebtorAgentBIC:        getEnv("DEBTOR_AGENT_BIC", "LYNXCA22XXX"),
		},
		Clearing: ClearingConfig{
			Networks: clearing.Networks{
				LocalCurrency: getEnv("LOCAL_CURRENCY", clearing.DefaultNetworks.LocalCurrency),
				Domestic:      getEnv("DOMESTIC_NETWORK", clearing.DefaultNetworks.Domestic),
				International: getEnv("INTERNATIONAL_NETWORK", clearing.DefaultNetworks.International),
			},
			Delays: delays,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "wire_transfer_events"),
		},
	}, nil
}

// delayReader parses durations and keeps the first error.
type delayReader struct {
	err error
}

func (r *delayReader) read(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" || r.err != nil {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
		return def
	}
	if d < 0 {
		r.err = fmt.Errorf("invalid %s: must not be negative", key)
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
