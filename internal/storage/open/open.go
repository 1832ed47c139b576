// Package open selects and constructs the configured storage driver.
package open

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/penwright/blog/internal/storage"
	"github.com/penwright/blog/internal/storage/postgres"
	"github.com/penwright/blog/internal/storage/postgrest"
	"github.com/penwright/blog/internal/storage/sqlite"
)

// Driver names accepted by Config.Driver.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// Config carries the settings of every driver; only the selected driver's
// fields are read. Commands embed it to share the store environment.
type Config struct {
	Driver      string        `env:"BLOG_STORE_DRIVER" envDefault:"postgrest"`
	SupabaseURL string        `env:"SUPABASE_URL"`
	SupabaseKey string        `env:"SUPABASE_KEY"`
	DatabaseURL string        `env:"BLOG_DATABASE_URL"`
	SQLitePath  string        `env:"BLOG_SQLITE_PATH" envDefault:"data/blog.db"`
	Timeout     time.Duration `env:"BLOG_STORE_TIMEOUT" envDefault:"10s"`
}

// BindFlags registers the store flags on fs, defaulting to the current values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Driver, "store-driver", c.Driver, "post store driver (postgrest, postgres, sqlite)")
	fs.StringVar(&c.SQLitePath, "sqlite-path", c.SQLitePath, "SQLite database file for the sqlite driver")
}

// Validate reports missing settings for the selected driver.
func (c Config) Validate() error {
	switch c.driver() {
	case DriverPostgREST:
		if strings.TrimSpace(c.SupabaseURL) == "" {
			return fmt.Errorf("SUPABASE_URL is required for the %s store", DriverPostgREST)
		}
		if strings.TrimSpace(c.SupabaseKey) == "" {
			return fmt.Errorf("SUPABASE_KEY is required for the %s store", DriverPostgREST)
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("BLOG_DATABASE_URL is required for the %s store", DriverPostgres)
		}
	case DriverSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("BLOG_SQLITE_PATH is required for the %s store", DriverSQLite)
		}
	default:
		return fmt.Errorf("unknown store driver %q (want %s, %s or %s)", c.Driver, DriverPostgREST, DriverPostgres, DriverSQLite)
	}
	return nil
}

func (c Config) driver() string {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	if driver == "" {
		return DriverPostgREST
	}
	return driver
}

// Open validates cfg and constructs its driver.
func Open(ctx context.Context, cfg Config) (storage.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.driver() {
	case DriverPostgres:
		client, err := postgres.New(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, err
		}
		return client, nil
	case DriverSQLite:
		client, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := postgrest.New(postgrest.Config{
			URL:     cfg.SupabaseURL,
			Key:     cfg.SupabaseKey,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
