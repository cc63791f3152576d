package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrina/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorefrontAPIURL:  "http://127.0.0.1:1/api/graphql",
		PageSize:          8,
		PagesPerChunk:     4,
		RecentlyViewedMax: 12,
		ImageCacheDir:     t.TempDir(),
		MenuHandle:        "main-menu",
	}
}

func TestInitialize_Minimal(t *testing.T) {
	a, err := Initialize(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, a.Catalog)
}

func TestInitialize_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = "redis://" + mr.Addr()

	a, err := Initialize(context.Background(), cfg)
	require.NoError(t, err)
	a.Close()
}

func TestInitialize_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RedisURL = "redis://" + mr.Addr()
	mr.Close()

	_, err := Initialize(context.Background(), cfg)
	assert.Error(t, err)
}
