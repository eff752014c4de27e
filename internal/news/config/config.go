package config

import (
	"time"

	"stock-news-aggregator/pkg/common"
	"stock-news-aggregator/pkg/config"

	"github.com/spf13/viper"
)

// Feed describes one RSS source.
type Feed struct {
	ID              string            `mapstructure:"id"`
	Name            string            `mapstructure:"name"`
	URL             string            `mapstructure:"url"`
	StripHTML       bool              `mapstructure:"strip_html"`
	CategoryMapping map[string]string `mapstructure:"category_mapping"`
}

// Provider holds the configuration for the optional news provider API.
type Provider struct {
	Enabled             bool   `mapstructure:"enabled"`
	ID                  string `mapstructure:"id"`
	Name                string `mapstructure:"name"`
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Available reports whether the provider can be called at all.
func (p Provider) Available() bool {
	return p.Enabled && p.BaseURL != ""
}

// Cache configures the optional TTL cache in front of each source.
type Cache struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// Content configures full-text extraction of article pages.
type Content struct {
	Enabled     bool `mapstructure:"enabled"`
	MaxArticles int  `mapstructure:"max_articles"`
}

// DigestSchedule sends a Telegram digest whenever Cron fires. An empty Symbol sends the latest headlines.
type DigestSchedule struct {
	Cron   string `mapstructure:"cron"`
	Symbol string `mapstructure:"symbol"`
	Limit  int    `mapstructure:"limit"`
}

// Digest configures the scheduled Telegram digests run alongside the HTTP API.
type Digest struct {
	Enabled         bool             `mapstructure:"enabled"`
	PollingInterval time.Duration    `mapstructure:"polling_interval"`
	Schedules       []DigestSchedule `mapstructure:"schedules"`
}

// News holds the aggregation pipeline configuration.
type News struct {
	Feeds              []Feed        `mapstructure:"feeds"`
	Provider           Provider      `mapstructure:"provider"`
	FetchTimeout       time.Duration `mapstructure:"fetch_timeout"`
	SourceLimit        int           `mapstructure:"source_limit"`
	DefaultPageSize    int           `mapstructure:"default_page_size"`
	MaxPageSize        int           `mapstructure:"max_page_size"`
	SymbolDefaultLimit int           `mapstructure:"symbol_default_limit"`
	Cache              Cache         `mapstructure:"cache"`
	Content            Content       `mapstructure:"content"`
}

// Config holds the full configuration for the news service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	API      config.API      `mapstructure:"api"`
	Redis    config.Redis    `mapstructure:"redis"`
	Telegram config.Telegram `mapstructure:"telegram"`
	News     News            `mapstructure:"news"`
	Digest   Digest          `mapstructure:"digest"`
}

// DefaultFeeds are the two RSS sources queried when the config file lists none.
func DefaultFeeds() []Feed {
	return []Feed{
		{
			ID:   "cafef",
			Name: "CafeF",
			URL:  "https://cafef.vn/thi-truong-chung-khoan.rss",
			CategoryMapping: map[string]string{
				"chung-khoan":  "market",
				"doanh-nghiep": "corporate",
				"kinh-te":      "economy",
				"quoc-te":      "international",
				"bat-dong-san": "economy",
				"ngan-hang":    "stocks",
			},
		},
		{
			ID:        "vnexpress",
			Name:      "VnExpress",
			URL:       "https://vnexpress.net/rss/kinh-doanh.rss",
			StripHTML: true,
			CategoryMapping: map[string]string{
				"chung-khoan-bond": "market",
				"doanh-nghiep":     "corporate",
				"kinh-te-viet-nam": "economy",
				"kinh-te-the-gioi": "international",
				"ebank":            "stocks",
				"bat-dong-san":     "economy",
			},
		},
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		App:    config.App{Name: "news-service", Env: "development"},
		Logger: config.Logger{Level: "info", Encoding: "json"},
		API:    config.API{Port: 8080},
		Redis:  config.Redis{Host: "localhost", Port: 6379, PoolSize: 10},
		News: News{
			Feeds: DefaultFeeds(),
			Provider: Provider{
				ID:                  "vnstock",
				Name:                "VNStock",
				MaxRequestPerMinute: 60,
			},
			FetchTimeout:       10 * time.Second,
			SourceLimit:        30,
			DefaultPageSize:    20,
			MaxPageSize:        100,
			SymbolDefaultLimit: 10,
			Cache:              Cache{Driver: common.CacheDriverNone, TTL: time.Hour},
			Content:            Content{MaxArticles: 20},
		},
		Digest: Digest{PollingInterval: time.Minute},
	}
}

// Normalize replaces zero values with defaults so downstream code never sees them.
func (c *Config) Normalize() {
	def := Default()
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = def.News.Feeds
	}
	if c.News.Provider.ID == "" {
		c.News.Provider.ID = def.News.Provider.ID
	}
	if c.News.Provider.Name == "" {
		c.News.Provider.Name = def.News.Provider.Name
	}
	if c.News.Provider.MaxRequestPerMinute <= 0 {
		c.News.Provider.MaxRequestPerMinute = def.News.Provider.MaxRequestPerMinute
	}
	if c.News.FetchTimeout <= 0 {
		c.News.FetchTimeout = def.News.FetchTimeout
	}
	if c.News.SourceLimit <= 0 {
		c.News.SourceLimit = def.News.SourceLimit
	}
	if c.News.DefaultPageSize <= 0 {
		c.News.DefaultPageSize = def.News.DefaultPageSize
	}
	if c.News.MaxPageSize < c.News.DefaultPageSize {
		c.News.MaxPageSize = def.News.MaxPageSize
		if c.News.MaxPageSize < c.News.DefaultPageSize {
			c.News.MaxPageSize = c.News.DefaultPageSize
		}
	}
	if c.News.SymbolDefaultLimit <= 0 {
		c.News.SymbolDefaultLimit = def.News.SymbolDefaultLimit
	}
	if c.News.Cache.Driver == "" {
		c.News.Cache.Driver = common.CacheDriverNone
	}
	if c.News.Cache.TTL <= 0 {
		c.News.Cache.TTL = def.News.Cache.TTL
	}
	if c.News.Content.MaxArticles <= 0 {
		c.News.Content.MaxArticles = def.News.Content.MaxArticles
	}
	if c.Digest.PollingInterval <= 0 {
		c.Digest.PollingInterval = def.Digest.PollingInterval
	}
	if c.Logger.Level == "" {
		c.Logger = def.Logger
	}
	if c.API.Port == 0 {
		c.API.Port = def.API.Port
	}
}

// Load loads the news service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.LoadWith(viper.New(), path, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}
