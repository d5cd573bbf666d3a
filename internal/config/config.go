package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Roster struct {
		CSVPath    string `yaml:"csv_path"`
		CodeSuffix string `yaml:"code_suffix"`
	} `yaml:"roster"`
	Output struct {
		HTMLPath string `yaml:"html_path"`
		Title    string `yaml:"title"`
	} `yaml:"output"`
	DataSource struct {
		WindowDays int `yaml:"window_days"`
	} `yaml:"data_source"`
	Alpaca struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		DataURL   string `yaml:"data_url"`
	} `yaml:"alpaca"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty = single pass
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty = no run history
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
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
	if v := os.Getenv("ROSTER_CSV_PATH"); v != "" {
		cfg.Roster.CSVPath = v
	}
	if v := os.Getenv("OUTPUT_HTML_PATH"); v != "" {
		cfg.Output.HTMLPath = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WINDOW_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.WindowDays = days
		}
	}

	// Defaults
	if cfg.Roster.CSVPath == "" {
		cfg.Roster.CSVPath = "data/nikkei225.csv"
	}
	if cfg.Roster.CodeSuffix == "" {
		cfg.Roster.CodeSuffix = ".T"
	}
	if cfg.Output.HTMLPath == "" {
		cfg.Output.HTMLPath = "heatmap/index.html"
	}
	if cfg.Output.Title == "" {
		cfg.Output.Title = "日経225 ヒートマップ"
	}
	if cfg.DataSource.WindowDays == 0 {
		// 5 calendar days guarantees at least two closes across weekends.
		cfg.DataSource.WindowDays = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Roster.CSVPath == "" {
		return fmt.Errorf("roster.csv_path is required")
	}
	if c.Output.HTMLPath == "" {
		return fmt.Errorf("output.html_path is required")
	}
	if c.DataSource.WindowDays < 2 {
		return fmt.Errorf("data_source.window_days must be at least 2, got %d", c.DataSource.WindowDays)
	}
	if c.Alpaca.APIKey != "" && c.Alpaca.APISecret == "" {
		return fmt.Errorf("alpaca.api_secret is required when alpaca.api_key is set")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	return nil
}
