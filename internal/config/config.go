package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"NAME" default:"Finman"`
		Host string `envconfig:"HOST" default:"127.0.0.1"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Data struct {
		Dir              string `envconfig:"DIR" default:"./data"`
		AccountsFile     string `envconfig:"ACCOUNTS_FILE" default:"accounts.csv"`
		TransactionsFile string `envconfig:"TRANSACTIONS_FILE" default:"transactions.csv"`
		LoansFile        string `envconfig:"LOANS_FILE" default:"loans.csv"`
		SavingsFile      string `envconfig:"SAVINGS_FILE" default:"savings.csv"`
		RulesFile        string `envconfig:"RULES_FILE" default:"category_rules.csv"`
	}

	Export struct {
		Dir string `envconfig:"DIR" default:"./exports"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:*,http://127.0.0.1:*"`
	}

	Log struct {
		Level slog.Level `envconfig:"LEVEL" default:"INFO"`
		File  string     `envconfig:"FILE" default:"finman.log"`
	}
}

// DataPath resolves a file name relative to the data directory.
// Absolute names are returned unchanged.
func (c *Config) DataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(c.Data.Dir, name)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
