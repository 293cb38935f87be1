package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Feed struct {
		BaseURL     string `yaml:"base_url"`     // Fyers API base; empty disables the primary source
		AccessToken string `yaml:"access_token"` // static bearer token
		Symbol      string `yaml:"symbol"`
		Days        int    `yaml:"days"` // trailing window fetched each cycle
	} `yaml:"feed"`
	Webhooks struct {
		WhatsAppURL  string `yaml:"whatsapp_url"`
		EmailWebhook string `yaml:"email_webhook"`
	} `yaml:"webhooks"`
	Signal struct {
		RSIPeriod      int `yaml:"rsi_period"`
		EMAFast        int `yaml:"ema_fast"`
		EMASlow        int `yaml:"ema_slow"`
		Lookback       int `yaml:"lookback"`
		MinBars        int `yaml:"min_bars"`
		SummaryMinBars int `yaml:"summary_min_bars"`
	} `yaml:"signal"`
	Schedule struct {
		CycleCron string `yaml:"cycle_cron"`
		DailyCron string `yaml:"daily_cron"`
		Timezone  string `yaml:"timezone"`
	} `yaml:"schedule"`
	Calendar struct {
		HolidayURL  string `yaml:"holiday_url"`
		RefreshDays int    `yaml:"refresh_days"`
	} `yaml:"calendar"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DebugMode bool   `yaml:"debug_mode"`
	Proxy     string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FYERS_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("FYERS_ACCESS_TOKEN"); v != "" {
		cfg.Feed.AccessToken = v
	}
	if v := os.Getenv("FEED_SYMBOL"); v != "" {
		cfg.Feed.Symbol = v
	}
	if v := os.Getenv("WHATSAPP_URL"); v != "" {
		cfg.Webhooks.WhatsAppURL = v
	}
	if v := os.Getenv("EMAIL_WEBHOOK"); v != "" {
		cfg.Webhooks.EmailWebhook = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_CYCLE"); v != "" {
		cfg.Schedule.CycleCron = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DEBUG_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DebugMode = b
		}
	}

	// Defaults
	if cfg.Feed.Symbol == "" {
		cfg.Feed.Symbol = "NSE:NIFTY50-INDEX"
	}
	if cfg.Feed.Days == 0 {
		cfg.Feed.Days = 5
	}
	if cfg.Signal.RSIPeriod == 0 {
		cfg.Signal.RSIPeriod = 14
	}
	if cfg.Signal.EMAFast == 0 {
		cfg.Signal.EMAFast = 5
	}
	if cfg.Signal.EMASlow == 0 {
		cfg.Signal.EMASlow = 21
	}
	if cfg.Signal.Lookback == 0 {
		cfg.Signal.Lookback = 90
	}
	if cfg.Signal.MinBars == 0 {
		cfg.Signal.MinBars = 50
	}
	if cfg.Signal.SummaryMinBars == 0 {
		cfg.Signal.SummaryMinBars = 21
	}
	if cfg.Schedule.CycleCron == "" {
		cfg.Schedule.CycleCron = "0 */15 * * * *"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 10 * * *"
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "Asia/Kolkata"
	}
	if cfg.Calendar.HolidayURL == "" {
		cfg.Calendar.HolidayURL = "https://www.nseindia.com/api/holiday-master?type=trading"
	}
	if cfg.Calendar.RefreshDays == 0 {
		cfg.Calendar.RefreshDays = 7
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/nifty_pulse.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Webhooks.WhatsAppURL == "" && c.Webhooks.EmailWebhook == "" {
		return fmt.Errorf("at least one webhook (webhooks.whatsapp_url or webhooks.email_webhook) is required")
	}
	if c.Feed.BaseURL != "" && c.Feed.AccessToken == "" {
		return fmt.Errorf("feed.access_token is required when feed.base_url is set")
	}
	if c.Signal.EMAFast >= c.Signal.EMASlow {
		return fmt.Errorf("signal.ema_fast must be smaller than signal.ema_slow")
	}
	if c.Signal.MinBars < c.Signal.EMASlow+1 {
		return fmt.Errorf("signal.min_bars must cover the slow EMA span")
	}
	return nil
}
