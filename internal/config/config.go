package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/buku/internal/category"
	"github.com/MrJamesThe3rd/buku/internal/dashboard"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Buku"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Lang     string `envconfig:"APP_LANG" default:"ms"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
		RateLimitRPS   float64       `envconfig:"RATE_LIMIT_RPS" default:"10"`
		RateLimitBurst int           `envconfig:"RATE_LIMIT_BURST" default:"20"`
	}

	Backend struct {
		URL      string        `envconfig:"BACKEND_URL"`
		Token    string        `envconfig:"BACKEND_TOKEN"`
		Email    string        `envconfig:"BACKEND_EMAIL"`
		Password string        `envconfig:"BACKEND_PASSWORD"`
		Timeout  time.Duration `envconfig:"BACKEND_TIMEOUT" default:"15s"`
		RPS      float64       `envconfig:"BACKEND_RPS" default:"5"`
	}

	Chart struct {
		CashFlowThreshold int `envconfig:"CHART_CASHFLOW_THRESHOLD" default:"50"`
		CashFlowPoints    int `envconfig:"CHART_CASHFLOW_POINTS" default:"12"`
		NetProfitBars     int `envconfig:"CHART_NETPROFIT_BARS" default:"5"`
	}
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Backend.URL) == "" {
		errs = append(errs, errors.New("BACKEND_URL is required"))
	}

	if c.Chart.CashFlowThreshold <= 0 {
		errs = append(errs, fmt.Errorf("CHART_CASHFLOW_THRESHOLD must be positive, got %d", c.Chart.CashFlowThreshold))
	}

	if c.Chart.CashFlowPoints <= 0 {
		errs = append(errs, fmt.Errorf("CHART_CASHFLOW_POINTS must be positive, got %d", c.Chart.CashFlowPoints))
	}

	if c.Chart.NetProfitBars <= 0 {
		errs = append(errs, fmt.Errorf("CHART_NETPROFIT_BARS must be positive, got %d", c.Chart.NetProfitBars))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// DashboardOptions maps the chart settings onto the dashboard service.
func (c *Config) DashboardOptions() dashboard.Options {
	lang := category.LangMalay
	if strings.EqualFold(c.App.Lang, string(category.LangEnglish)) {
		lang = category.LangEnglish
	}

	return dashboard.Options{
		CashFlowThreshold: c.Chart.CashFlowThreshold,
		CashFlowPoints:    c.Chart.CashFlowPoints,
		NetProfitBars:     c.Chart.NetProfitBars,
		Lang:              lang,
	}
}
