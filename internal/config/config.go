package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Bot struct {
		Prefix          string `yaml:"prefix"`
		IntervalSeconds int    `yaml:"interval_seconds"`
	} `yaml:"bot"`
	DataSource struct {
		BaseURL string   `yaml:"base_url"`
		Symbols []string `yaml:"symbols"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	// Absence of a .env file is not an error.
	_ = godotenv.Load()

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("BOT_PREFIX"); v != "" {
		cfg.Bot.Prefix = v
	}
	if v := os.Getenv("POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Bot.IntervalSeconds = n
		}
	}
	if v := os.Getenv("WATCH_SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
		if len(symbols) > 0 {
			cfg.DataSource.Symbols = symbols
		}
	}
	if v := os.Getenv("BITMEX_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Bot.Prefix == "" {
		cfg.Bot.Prefix = "!"
	}
	if cfg.Bot.IntervalSeconds == 0 {
		cfg.Bot.IntervalSeconds = 60
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"XBTUSD", "ETHUSD"}
	}
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://www.bitmex.com/api/v1"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Bot.IntervalSeconds <= 0 {
		return fmt.Errorf("bot.interval_seconds must be positive")
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols must not be empty")
	}
	return nil
}
