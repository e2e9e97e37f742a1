package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaitan80/cricfanzz/internal/config"
	"github.com/xaitan80/cricfanzz/internal/weather"
)

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	for _, env := range []string{"STORE_DRIVER", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "WEATHER_PROVIDER", "VISUAL_CROSSING_API_KEY"} {
		t.Setenv(env, "")
	}
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestRouterServesAPIAndIndex(t *testing.T) {
	cfg := sqliteConfig(t)
	b, err := openBackend(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.close(context.Background()) })

	r, err := newRouter(cfg, zerolog.Nop(), b)
	require.NoError(t, err)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "CricFanzz")
	assert.Contains(t, string(body), "wickets-chart")

	resp, err = http.Post(srv.URL+"/save-data", "application/json", strings.NewReader(`[{"team1":"IND","team2":"AUS","status":"LIVE"}]`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/fetch-weather/Pune")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestNewProvider(t *testing.T) {
	_, ok := newProvider(config.WeatherConfig{Provider: config.ProviderOpenWeather}).(*weather.OpenWeather)
	assert.True(t, ok)
	_, ok = newProvider(config.WeatherConfig{Provider: config.ProviderVisualCrossing}).(*weather.VisualCrossing)
	assert.True(t, ok)
}

func TestOpenBackendUnknownDriver(t *testing.T) {
	_, err := openBackend(context.Background(), config.Config{Store: config.StoreConfig{Driver: "redis"}})
	assert.ErrorIs(t, err, config.ErrUnknownDriver)
}
