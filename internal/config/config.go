package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"strconv"

	"MiniStock/internal/inventory"
)

type Config struct {
	DataFile   string
	ExportFile string
	Threshold  int
	Seed       bool

	DashboardAddr string
	MetricsToken  string

	LogLevel string
	LogFile  string

	AdminUser     string
	AdminPassword string
}

var ErrBadThreshold = errors.New("threshold must be positive")

// Load parses command-line flags. Every flag defaults to an environment
// variable, then to a built-in value.
func Load(args []string, output io.Writer) (Config, error) {
	var c Config

	fs := flag.NewFlagSet("ministock", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&c.DataFile, "data", getenv("MINISTOCK_DATA", "inventory.txt"), "flat-text inventory file")
	fs.StringVar(&c.ExportFile, "export", getenv("MINISTOCK_EXPORT", "inventory.json"), "JSON export written on save (empty disables)")
	fs.IntVar(&c.Threshold, "threshold", getenvInt("MINISTOCK_THRESHOLD", inventory.DefaultThreshold), "quantity below which a product is low stock")
	fs.BoolVar(&c.Seed, "seed", getenvBool("MINISTOCK_SEED", true), "add sample products when the inventory file is empty")
	fs.StringVar(&c.DashboardAddr, "dashboard", getenv("MINISTOCK_DASHBOARD", ""), "listen address of the read-only dashboard (empty disables)")
	fs.StringVar(&c.MetricsToken, "metrics-token", getenv("METRICS_TOKEN", ""), "bearer token for /metrics")
	fs.StringVar(&c.LogLevel, "log-level", getenv("LOG_LEVEL", "warn"), "log level")
	fs.StringVar(&c.LogFile, "log-file", getenv("LOG_FILE", "stderr"), "log output path")
	fs.StringVar(&c.AdminUser, "admin-user", getenv("ADMIN_USER", "admin"), "administrator username")
	fs.StringVar(&c.AdminPassword, "admin-password", getenv("ADMIN_PASSWORD", "admin123"), "administrator password")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if c.Threshold <= 0 {
		return Config{}, ErrBadThreshold
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return v
	}
	return def
}

func getenvBool(k string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(k)); err == nil {
		return v
	}
	return def
}
