package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Feed.Symbol != "NSE:NIFTY50-INDEX" {
		t.Errorf("unexpected default symbol: %q", cfg.Feed.Symbol)
	}
	if cfg.Signal.RSIPeriod != 14 || cfg.Signal.EMAFast != 5 || cfg.Signal.EMASlow != 21 {
		t.Errorf("unexpected indicator defaults: %+v", cfg.Signal)
	}
	if cfg.Signal.Lookback != 90 || cfg.Signal.MinBars != 50 || cfg.Signal.SummaryMinBars != 21 {
		t.Errorf("unexpected threshold defaults: %+v", cfg.Signal)
	}
	if cfg.Schedule.CycleCron != "0 */15 * * * *" || cfg.Schedule.Timezone != "Asia/Kolkata" {
		t.Errorf("unexpected schedule defaults: %+v", cfg.Schedule)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
feed:
  base_url: https://api.fyers.in
  access_token: file-token
  symbol: NSE:BANKNIFTY-INDEX
webhooks:
  whatsapp_url: https://gw.example/send?apikey=k
signal:
  lookback: 48
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FYERS_ACCESS_TOKEN", "env-token")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Feed.AccessToken != "env-token" {
		t.Errorf("env must override file, got %q", cfg.Feed.AccessToken)
	}
	if cfg.Feed.Symbol != "NSE:BANKNIFTY-INDEX" {
		t.Errorf("file value lost: %q", cfg.Feed.Symbol)
	}
	if cfg.Signal.Lookback != 48 {
		t.Errorf("file lookback lost: %d", cfg.Signal.Lookback)
	}
	if cfg.Signal.RSIPeriod != 14 {
		t.Errorf("defaults must still fill unset fields, got %d", cfg.Signal.RSIPeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.Validate(); err == nil {
		t.Error("expected error with no webhook configured")
	}

	cfg.Webhooks.EmailWebhook = "https://hooks.example/catch"
	if err := cfg.Validate(); err != nil {
		t.Errorf("one webhook should suffice: %v", err)
	}

	cfg.Feed.BaseURL = "https://api.fyers.in"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for base_url without access_token")
	}
	cfg.Feed.AccessToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}

	cfg.Signal.EMAFast = 21
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when fast span is not below slow span")
	}
}
