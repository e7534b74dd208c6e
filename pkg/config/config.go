package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Source    SourceConfig
	View      ViewConfig
	ViewCache ViewCacheConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
}

// SourceConfig describes where the record collection is loaded from.
type SourceConfig struct {
	URL         string
	Results     int
	Seed        string
	Timeout     time.Duration
	FixturePath string
}

// ViewConfig tunes the view pipeline.
type ViewConfig struct {
	PageSize int
	Locale   string
}

// ViewCacheConfig toggles Redis memoization of computed views.
type ViewCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
	Output []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	results := v.GetInt("SOURCE_RESULTS")
	if results <= 0 {
		results = 100
	}
	cfg.Source = SourceConfig{
		URL:         v.GetString("SOURCE_URL"),
		Results:     results,
		Seed:        v.GetString("SOURCE_SEED"),
		Timeout:     parseDuration(v.GetString("SOURCE_TIMEOUT"), 10*time.Second),
		FixturePath: v.GetString("SOURCE_FIXTURE_PATH"),
	}

	pageSize := v.GetInt("VIEW_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	cfg.View = ViewConfig{
		PageSize: pageSize,
		Locale:   v.GetString("VIEW_LOCALE"),
	}

	cfg.ViewCache = ViewCacheConfig{
		Enabled: v.GetBool("ENABLE_VIEW_CACHE"),
		TTL:     parseDuration(v.GetString("VIEW_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
		Output: splitAndTrim(v.GetString("LOG_OUTPUT")),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SOURCE_URL", "https://randomuser.me/api/")
	v.SetDefault("SOURCE_RESULTS", 100)
	v.SetDefault("SOURCE_SEED", "")
	v.SetDefault("SOURCE_TIMEOUT", "10s")
	v.SetDefault("SOURCE_FIXTURE_PATH", "")

	v.SetDefault("VIEW_PAGE_SIZE", 10)
	v.SetDefault("VIEW_LOCALE", "en")

	v.SetDefault("ENABLE_VIEW_CACHE", false)
	v.SetDefault("VIEW_CACHE_TTL", "5m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stderr")
}

// viper reports a missing explicit config file as a path error rather than
// ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
