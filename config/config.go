// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"vitrina/logger"
)

// Config is the storefront configuration.
type Config struct {
	Env                string
	Port               string
	BaseURL            string
	StorefrontAPIURL   string
	StorefrontAPIToken string
	MenuHandle         string
	PageSize           int
	PagesPerChunk      int
	DatabaseURL        string
	RedisURL           string
	RecentlyViewedMax  int
	ImageCacheDir      string
	CredentialsPath    string
	BannerFolderID     string
	ChromePath         string
	LogLevel           string
}

// LoadDotEnv loads .env, overriding the process environment, unless
// ENV=production. A missing file is not an error.
func LoadDotEnv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		logger.L().Debugf("Warning: %s not loaded, using system environment variables: %v", path, err)
		return
	}
	logger.L().Infof("✓ Loaded environment variables from %s", path)
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                os.Getenv("ENV"),
		Port:               strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		BaseURL:            strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		StorefrontAPIURL:   os.Getenv("STOREFRONT_API_URL"),
		StorefrontAPIToken: os.Getenv("STOREFRONT_API_TOKEN"),
		MenuHandle:         getEnv("MENU_HANDLE", "main-menu"),
		DatabaseURL:        databaseURL(),
		RedisURL:           os.Getenv("REDIS_URL"),
		ImageCacheDir:      getEnv("IMAGE_CACHE_DIR", "cache/images"),
		CredentialsPath:    os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		BannerFolderID:     os.Getenv("BANNER_DRIVE_FOLDER_ID"),
		ChromePath:         os.Getenv("CHROME_PATH"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.PageSize, err = getPositiveInt("PAGE_SIZE", 8); err != nil {
		return nil, err
	}
	if cfg.PagesPerChunk, err = getPositiveInt("PAGES_PER_CHUNK", 4); err != nil {
		return nil, err
	}
	if cfg.RecentlyViewedMax, err = getPositiveInt("RECENTLY_VIEWED_MAX", 12); err != nil {
		return nil, err
	}

	if cfg.StorefrontAPIURL == "" {
		return nil, fmt.Errorf("STOREFRONT_API_URL environment variable is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	return cfg, nil
}

// Addr is the listen address. 0.0.0.0 accepts connections on every
// interface, as container platforms require.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

// AnalyticsEnabled reports whether a database is configured.
func (c *Config) AnalyticsEnabled() bool { return c.DatabaseURL != "" }

// BannersEnabled reports whether the Drive banner source is configured.
func (c *Config) BannersEnabled() bool {
	return c.CredentialsPath != "" && c.BannerFolderID != ""
}

// databaseURL returns DATABASE_URL or builds a DSN from the DB_* variables.
// It is empty when neither is set.
func databaseURL() string {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return u
	}
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if host == "" || user == "" || name == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getEnv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), name, getEnv("DB_SSLMODE", "disable"))
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getPositiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, raw)
	}
	return n, nil
}
