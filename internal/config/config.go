package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Index is one market index shown on the indices tab.
type Index struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Market struct {
		Timezone       string  `yaml:"timezone"`
		RefreshSeconds int     `yaml:"refresh_seconds"`
		Indices        []Index `yaml:"indices"`
		DefaultSymbol  string  `yaml:"default_symbol"`
	} `yaml:"market"`
	DataSource struct {
		Provider  string `yaml:"provider"` // "yahoo" or "alpaca"
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		DataURL   string `yaml:"data_url"`
	} `yaml:"data_source"`
	News struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"news"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// DefaultIndices are shown when the config lists none.
var DefaultIndices = []Index{
	{Name: "S&P 500", Symbol: "^GSPC"},
	{Name: "NASDAQ", Symbol: "^IXIC"},
	{Name: "Dow Jones", Symbol: "^DJI"},
	{Name: "FTSE 100", Symbol: "^FTSE"},
}

// Load reads an optional .env, then the YAML file, then applies environment
// variable overrides and defaults.
func Load(path string) (*Config, error) {
	// .env is optional; secrets usually live there in development.
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

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MARKET_TIMEZONE"); v != "" {
		cfg.Market.Timezone = v
	}
	if v := os.Getenv("REFRESH_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Market.RefreshSeconds = n
		} else {
			log.Printf("[WARN] ignoring REFRESH_SECONDS=%q: %v", v, err)
		}
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.DataSource.APISecret = v
	}
	if v := os.Getenv("NEWSAPI_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("NEWSAPI_BASE_URL"); v != "" {
		cfg.News.BaseURL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8501"
	}
	if cfg.Market.Timezone == "" {
		cfg.Market.Timezone = "America/New_York"
	}
	if cfg.Market.RefreshSeconds == 0 {
		cfg.Market.RefreshSeconds = 30
	}
	if len(cfg.Market.Indices) == 0 {
		cfg.Market.Indices = append([]Index(nil), DefaultIndices...)
	}
	if cfg.Market.DefaultSymbol == "" {
		cfg.Market.DefaultSymbol = "AAPL"
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
}

// RefreshInterval returns the auto-refresh period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Market.RefreshSeconds) * time.Second
}

// TelegramEnabled reports whether both bot token and chat are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Market.Timezone); err != nil || c.Market.Timezone == "" {
		return fmt.Errorf("market.timezone %q is not a valid IANA zone", c.Market.Timezone)
	}
	if c.Market.RefreshSeconds <= 0 {
		return fmt.Errorf("market.refresh_seconds must be positive")
	}
	for i, idx := range c.Market.Indices {
		if idx.Symbol == "" {
			return fmt.Errorf("market.indices[%d].symbol is required", i)
		}
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "alpaca":
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			return fmt.Errorf("data_source.api_key and api_secret are required for alpaca")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.News.APIKey == "" {
		log.Println("[WARN] news.api_key is not set, the news tab will show no headlines")
	}
	return nil
}
