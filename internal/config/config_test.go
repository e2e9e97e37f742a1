package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every bound variable; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envNames {
		t.Setenv(env, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "CricFanzz", cfg.Mongo.Database)
	assert.Equal(t, "cricfanzz.db", cfg.SQLite.Path)
	assert.Equal(t, ProviderVisualCrossing, cfg.Weather.Provider)
	assert.Empty(t, cfg.Weather.VisualCrossingKey)
	assert.Equal(t, 10*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.HTTP.TrustedProxies)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 100, cfg.HTTP.MaxLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("VISUAL_CROSSING_API_KEY", "abc")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2")
	t.Setenv("MAX_LIST_LIMIT", "50")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLite.Path)
	assert.Equal(t, 3*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "abc", cfg.Weather.VisualCrossingKey)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.HTTP.TrustedProxies)
	assert.Equal(t, 50, cfg.HTTP.MaxLimit)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yml := `
addr: ":9000"
store:
  driver: sqlite
sqlite:
  path: file.db
weather:
  provider: openweather
  timeout: 2s
http:
  cors_origins:
    - https://cricfanzz.example
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cricfanzz.yml"), []byte(yml), 0o600))
	t.Setenv("ADDR", ":9100")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "file.db", cfg.SQLite.Path)
	assert.Equal(t, ProviderOpenWeather, cfg.Weather.Provider)
	assert.Equal(t, 2*time.Second, cfg.Weather.Timeout)
	assert.Equal(t, []string{"https://cricfanzz.example"}, cfg.HTTP.CORSOrigins)
}

func TestLoadRejectsBadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cricfanzz.yml"), []byte("store: [unclosed"), 0o600))
	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want error
	}{
		{map[string]string{"STORE_DRIVER": "postgres"}, ErrUnknownDriver},
		{map[string]string{"WEATHER_PROVIDER": "metoffice"}, ErrUnknownWeatherProvider},
		{map[string]string{"STORE_TIMEOUT": "-1s"}, ErrInvalidTimeout},
		{map[string]string{"MAX_LIST_LIMIT": "-4"}, ErrInvalidMaxLimit},
		{map[string]string{"LOG_LEVEL": "loud"}, ErrInvalidLogLevel},
		{map[string]string{"LOG_FORMAT": "xml"}, ErrInvalidLogFormat},
	}
	for _, tc := range cases {
		t.Run(tc.want.Error(), func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateDriverRequirements(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	c := cfg
	c.Mongo.URI = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingMongoURI)

	c = cfg
	c.Mongo.Database = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingMongoDatabase)

	c = cfg
	c.Store.Driver = DriverSQLite
	c.SQLite.Path = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingSQLitePath)

	c = cfg
	c.Addr = ""
	assert.ErrorIs(t, c.Validate(), ErrMissingAddr)
}

func TestLoadMongoDatabaseFromURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017/LiveScores?retryWrites=true")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "LiveScores", cfg.Mongo.Database)

	t.Setenv("MONGO_DATABASE", "Explicit")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Explicit", cfg.Mongo.Database)
}

func TestLoadPortFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)

	t.Setenv("PORT", "127.0.0.1:8081")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8081", cfg.Addr)

	t.Setenv("ADDR", ":9100")
	cfg, err = Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
}
