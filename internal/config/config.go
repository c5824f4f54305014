package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level corebank.yaml configuration.
type Config struct {
	Bank   BankConfig   `yaml:"bank"`
	Policy PolicyConfig `yaml:"policy"`
	Fraud  FraudConfig  `yaml:"fraud"`
	Store  StoreConfig  `yaml:"store"`
}

// BankConfig identifies the bank.
type BankConfig struct {
	Name string `yaml:"name"`
}

// PolicyConfig holds the policy defaults applied when the account
// factory constructs checking accounts. Amounts are decimal strings.
type PolicyConfig struct {
	CheckingMinimumBalance string `yaml:"checking_minimum_balance"`
	CheckingPenaltyFee     string `yaml:"checking_penalty_fee"`
}

// FraudConfig tunes the fraud detector.
type FraudConfig struct {
	// HighestDailyTotalTransactions is the observed daily-volume
	// baseline; a rolling day with more than 1.5x this count trips
	// the volume check.
	HighestDailyTotalTransactions int `yaml:"highest_daily_total_transactions"`
	// VelocityWindowMillis rejects a transaction whose timestamp is
	// within this many milliseconds of the third-from-last one on the
	// same account.
	VelocityWindowMillis int64 `yaml:"velocity_window_millis"`
}

// StoreConfig locates the durable store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Load reads a corebank.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new bank.
func Default(bankName string) *Config {
	return &Config{
		Bank: BankConfig{Name: bankName},
		Policy: PolicyConfig{
			CheckingMinimumBalance: "250",
			CheckingPenaltyFee:     "40",
		},
		Fraud: FraudConfig{
			HighestDailyTotalTransactions: 10,
			VelocityWindowMillis:          1000,
		},
		Store: StoreConfig{Path: "corebank.db"},
	}
}
