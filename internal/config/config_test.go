package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Roster.CSVPath != "data/nikkei225.csv" {
		t.Errorf("unexpected roster default: %s", cfg.Roster.CSVPath)
	}
	if cfg.Roster.CodeSuffix != ".T" {
		t.Errorf("unexpected suffix default: %s", cfg.Roster.CodeSuffix)
	}
	if cfg.Output.HTMLPath != "heatmap/index.html" {
		t.Errorf("unexpected output default: %s", cfg.Output.HTMLPath)
	}
	if cfg.DataSource.WindowDays != 5 {
		t.Errorf("unexpected window default: %d", cfg.DataSource.WindowDays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "roster:\n  csv_path: data/topix.csv\noutput:\n  title: TOPIX ヒートマップ\ndata_source:\n  window_days: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OUTPUT_HTML_PATH", "/tmp/out.html")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Roster.CSVPath != "data/topix.csv" {
		t.Errorf("yaml value not applied: %s", cfg.Roster.CSVPath)
	}
	if cfg.Output.Title != "TOPIX ヒートマップ" {
		t.Errorf("yaml title not applied: %s", cfg.Output.Title)
	}
	if cfg.DataSource.WindowDays != 7 {
		t.Errorf("yaml window not applied: %d", cfg.DataSource.WindowDays)
	}
	if cfg.Output.HTMLPath != "/tmp/out.html" {
		t.Errorf("env override not applied: %s", cfg.Output.HTMLPath)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	cfg.DataSource.WindowDays = 1
	if err := cfg.Validate(); err == nil {
		t.Error("window_days below 2 must fail validation")
	}
	cfg.DataSource.WindowDays = 5

	cfg.Alpaca.APIKey = "key"
	if err := cfg.Validate(); err == nil {
		t.Error("alpaca key without secret must fail validation")
	}
	cfg.Alpaca.APISecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("complete alpaca credentials must validate: %v", err)
	}

	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("telegram token without chat id must fail validation")
	}
}
