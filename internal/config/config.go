// Package config loads server settings from defaults, an optional
// configs/cricfanzz.yml and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Configuration validation errors.
var (
	ErrMissingAddr            = errors.New("addr is required")
	ErrUnknownDriver          = errors.New("store.driver must be 'mongo' or 'sqlite'")
	ErrMissingMongoURI        = errors.New("mongo.uri is required for the mongo driver")
	ErrMissingMongoDatabase   = errors.New("mongo.database is required for the mongo driver")
	ErrMissingSQLitePath      = errors.New("sqlite.path is required for the sqlite driver")
	ErrUnknownWeatherProvider = errors.New("weather.provider must be 'visualcrossing' or 'openweather'")
	ErrInvalidTimeout         = errors.New("store.timeout, weather.timeout and http.shutdown_timeout must be positive")
	ErrInvalidMaxLimit        = errors.New("http.max_limit must be at least 1")
	ErrInvalidLogLevel        = errors.New("log.level must be one of: trace, debug, info, warn, error")
	ErrInvalidLogFormat       = errors.New("log.format must be 'json' or 'console'")
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"

	ProviderVisualCrossing = "visualcrossing"
	ProviderOpenWeather    = "openweather"

	// DefaultMongoDatabase is used when neither mongo.database nor the URI
	// path names one.
	DefaultMongoDatabase = "CricFanzz"
)

type Config struct {
	Addr    string        `mapstructure:"addr"`
	Store   StoreConfig   `mapstructure:"store"`
	Mongo   MongoConfig   `mapstructure:"mongo"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Weather WeatherConfig `mapstructure:"weather"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
}

type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type WeatherConfig struct {
	Provider          string        `mapstructure:"provider"`
	VisualCrossingKey string        `mapstructure:"visual_crossing_key"`
	OpenWeatherKey    string        `mapstructure:"openweather_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTPConfig struct {
	TrustedProxies  []string      `mapstructure:"trusted_proxies"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	MaxLimit        int           `mapstructure:"max_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

var defaults = map[string]any{
	"addr":                        ":3001",
	"store.driver":                DriverMongo,
	"store.timeout":               5 * time.Second,
	"mongo.uri":                   "mongodb://localhost:27017",
	"mongo.database":              "",
	"sqlite.path":                 "cricfanzz.db",
	"weather.provider":            ProviderVisualCrossing,
	"weather.visual_crossing_key": "",
	"weather.openweather_key":     "",
	"weather.timeout":             10 * time.Second,
	"log.level":                   "info",
	"log.format":                  "json",
	"http.trusted_proxies":        []string{"127.0.0.1", "::1"},
	"http.cors_origins":           []string{"*"},
	"http.max_limit":              100,
	"http.shutdown_timeout":       10 * time.Second,
}

// Environment variable for each key. The names predate the config file.
var envNames = map[string]string{
	"addr":                        "ADDR",
	"store.driver":                "STORE_DRIVER",
	"store.timeout":               "STORE_TIMEOUT",
	"mongo.uri":                   "MONGO_URI",
	"mongo.database":              "MONGO_DATABASE",
	"sqlite.path":                 "DB_PATH",
	"weather.provider":            "WEATHER_PROVIDER",
	"weather.visual_crossing_key": "VISUAL_CROSSING_API_KEY",
	"weather.openweather_key":     "OPENWEATHER_API_KEY",
	"weather.timeout":             "WEATHER_TIMEOUT",
	"log.level":                   "LOG_LEVEL",
	"log.format":                  "LOG_FORMAT",
	"http.trusted_proxies":        "TRUSTED_PROXIES",
	"http.cors_origins":           "CORS_ORIGINS",
	"http.max_limit":              "MAX_LIST_LIMIT",
	"http.shutdown_timeout":       "SHUTDOWN_TIMEOUT",
	"port":                        "PORT",
}

// Load reads cricfanzz.yml from the first of dirs that has one (default
// "configs"). A missing file is not an error.
func Load(dirs ...string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, env := range envNames {
		if err := v.BindEnv(k, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if len(dirs) == 0 {
		dirs = []string{"configs"}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetConfigName("cricfanzz")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Weather.Provider = strings.ToLower(strings.TrimSpace(cfg.Weather.Provider))
	cfg.HTTP.TrustedProxies = trimAll(cfg.HTTP.TrustedProxies)
	cfg.HTTP.CORSOrigins = trimAll(cfg.HTTP.CORSOrigins)

	// Hosting platforms set PORT; an explicit ADDR still wins.
	if port := strings.TrimSpace(v.GetString("port")); port != "" && os.Getenv("ADDR") == "" {
		if !strings.Contains(port, ":") {
			port = ":" + port
		}
		cfg.Addr = port
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = uriDatabase(cfg.Mongo.URI)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration. Missing weather keys are not
// checked here; a weather request without one fails on its own.
func (c Config) Validate() error {
	if c.Addr == "" {
		return ErrMissingAddr
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return ErrMissingMongoURI
		}
		if c.Mongo.Database == "" {
			return ErrMissingMongoDatabase
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return ErrMissingSQLitePath
		}
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownDriver, c.Store.Driver)
	}
	if c.Weather.Provider != ProviderVisualCrossing && c.Weather.Provider != ProviderOpenWeather {
		return fmt.Errorf("%w, got %q", ErrUnknownWeatherProvider, c.Weather.Provider)
	}
	if c.Store.Timeout <= 0 || c.Weather.Timeout <= 0 || c.HTTP.ShutdownTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.HTTP.MaxLimit < 1 {
		return ErrInvalidMaxLimit
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return ErrInvalidLogFormat
	}
	return nil
}

// uriDatabase returns the database named in a mongodb:// URI path, or
// DefaultMongoDatabase. A malformed URI is reported when the client connects.
func uriDatabase(uri string) string {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil || cs.Database == "" {
		return DefaultMongoDatabase
	}
	return cs.Database
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
