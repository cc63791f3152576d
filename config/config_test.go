package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"ENV", "PORT", "BASE_URL", "STOREFRONT_API_URL", "STOREFRONT_API_TOKEN",
	"PAGE_SIZE", "PAGES_PER_CHUNK", "DATABASE_URL", "DB_HOST", "DB_PORT",
	"DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "REDIS_URL",
	"RECENTLY_VIEWED_MAX", "IMAGE_CACHE_DIR", "GOOGLE_APPLICATION_CREDENTIALS",
	"BANNER_DRIVE_FOLDER_ID", "CHROME_PATH", "LOG_LEVEL", "MENU_HANDLE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_API_URL", "https://shop.example/api/graphql")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 8, cfg.PageSize)
	assert.Equal(t, 4, cfg.PagesPerChunk)
	assert.Equal(t, 12, cfg.RecentlyViewedMax)
	assert.Equal(t, "cache/images", cfg.ImageCacheDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "main-menu", cfg.MenuHandle)
	assert.False(t, cfg.AnalyticsEnabled())
	assert.False(t, cfg.BannersEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_API_URL", "https://shop.example/api/graphql")
	t.Setenv("PORT", ":9000")
	t.Setenv("BASE_URL", "https://shop.example/")
	t.Setenv("PAGE_SIZE", "12")
	t.Setenv("PAGES_PER_CHUNK", "2")
	t.Setenv("DATABASE_URL", "postgres://u@h/db")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/creds.json")
	t.Setenv("BANNER_DRIVE_FOLDER_ID", "folder")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://shop.example", cfg.BaseURL)
	assert.Equal(t, 12, cfg.PageSize)
	assert.Equal(t, 2, cfg.PagesPerChunk)
	assert.True(t, cfg.AnalyticsEnabled())
	assert.True(t, cfg.BannersEnabled())
}

func TestLoad_DatabaseFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_API_URL", "https://shop.example/api/graphql")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_NAME", "vitrina")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=shop password= dbname=vitrina sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.ErrorContains(t, err, "STOREFRONT_API_URL")

	t.Setenv("STOREFRONT_API_URL", "https://shop.example/api/graphql")
	for _, raw := range []string{"0", "-1", "eight"} {
		t.Setenv("PAGE_SIZE", raw)
		_, err := Load()
		assert.ErrorContains(t, err, "PAGE_SIZE", raw)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHROME_PATH=/usr/bin/chromium\n"), 0o600))

	LoadDotEnv(path)
	assert.Equal(t, "/usr/bin/chromium", os.Getenv("CHROME_PATH"))
	// godotenv sets the variable outside t.Setenv bookkeeping.
	t.Cleanup(func() { os.Unsetenv("CHROME_PATH") })
}

func TestLoadDotEnv_SkippedInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CHROME_PATH=/nope\n"), 0o600))

	LoadDotEnv(path)
	assert.Equal(t, "", os.Getenv("CHROME_PATH"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	clearEnv(t)
	assert.NotPanics(t, func() { LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")) })
}
