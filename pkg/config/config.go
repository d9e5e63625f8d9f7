package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
)

type Config struct {
	ListenAddr       string
	LogLevel         string
	OrderSource      string
	DatabaseURL      string
	OrdersAPIURL     string
	OrdersAPIToken   string
	OrdersAPITimeout time.Duration
	PageSize         int
	MaxPages         int
	FetchTimeout     time.Duration
	Timezone         string
	Location         *time.Location
	ReadMaxRangeDays int
	RefreshEvery     time.Duration
	SessionShards    int
	SessionIdleTTL   time.Duration
	MaxCPU           int
	ShutdownWait     time.Duration
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.ListenAddr = getenv("LISTEN_ADDR", ":3000")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.OrderSource = strings.ToLower(getenv("ORDER_SOURCE", SourcePostgres))
	c.DatabaseURL = getenv("DATABASE_URL", "")
	c.OrdersAPIURL = getenv("ORDERS_API_URL", "")
	c.OrdersAPIToken = getenv("ORDERS_API_TOKEN", "")
	c.OrdersAPITimeout = mustDuration(getenv("ORDERS_API_TIMEOUT", "10s"), 10*time.Second)
	c.PageSize = mustInt(getenv("PAGE_SIZE", "1000"))
	c.MaxPages = mustInt(getenv("MAX_PAGES", "50"))
	c.FetchTimeout = mustDuration(getenv("FETCH_TIMEOUT", "30s"), 30*time.Second)
	c.Timezone = getenv("TIMEZONE", "Local")
	c.ReadMaxRangeDays = mustInt(getenv("READ_MAX_RANGE_DAYS", "366"))
	c.RefreshEvery = optionalDuration(getenv("REFRESH_EVERY", "0"))
	c.SessionShards = mustInt(getenv("SESSION_SHARDS", "16"))
	c.SessionIdleTTL = optionalDuration(getenv("SESSION_IDLE_TTL", "30m"))
	c.MaxCPU = mustInt(getenv("MAX_CPU", "0"))
	c.ShutdownWait = mustDuration(getenv("SHUTDOWN_WAIT", "5s"), 5*time.Second)

	switch c.OrderSource {
	case SourcePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for ORDER_SOURCE=postgres"))
		}
	case SourceHTTP:
		if c.OrdersAPIURL == "" {
			errs = append(errs, fmt.Errorf("ORDERS_API_URL is required for ORDER_SOURCE=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("ORDER_SOURCE must be %q or %q", SourcePostgres, SourceHTTP))
	}
	if c.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("PAGE_SIZE must be > 0"))
	}
	if c.MaxPages <= 0 {
		errs = append(errs, fmt.Errorf("MAX_PAGES must be > 0"))
	}
	if c.SessionShards <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_SHARDS must be > 0"))
	}
	if c.ReadMaxRangeDays < 0 {
		errs = append(errs, fmt.Errorf("READ_MAX_RANGE_DAYS must be >= 0"))
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}
	c.Location = loc
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func mustInt(s string) int { n, _ := strconv.Atoi(s); return n }

func mustDuration(s string, def time.Duration) time.Duration {
	d, _ := time.ParseDuration(s)
	if d <= 0 {
		return def
	}
	return d
}

// optionalDuration treats "0", negative and malformed values as disabled.
func optionalDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
