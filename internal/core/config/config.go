package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"tracking-proxy/internal/core/proxy"

	"github.com/spf13/viper"
)

// Supported cache drivers.
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"PORT" default:"3000"`
	// CORSAllowOrigins is the comma separated list of allowed origins.
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS" default:"*"`

	// Provider holds the upstream tracking provider configuration.
	Provider ProviderConfig `mapstructure:",squash"`

	// Cache holds the positive-result cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Fuzzy holds the fuzzy matching configuration.
	Fuzzy FuzzyConfig `mapstructure:",squash"`
}

// ProviderConfig holds the upstream provider connection details.
type ProviderConfig struct {
	// BaseURL is prefixed to the percent-encoded tracking code.
	BaseURL string `mapstructure:"PROVIDER_BASE" default:"https://app.fuzioncargo.com/index.php/v3/package/"`
	// TimeoutMS bounds every upstream call.
	TimeoutMS int `mapstructure:"PROVIDER_TIMEOUT_MS" default:"8000"`
	// UserAgent is sent on every upstream call.
	UserAgent string `mapstructure:"USER_AGENT" default:"Mozilla/5.0 (TrackingProxy; +https://render.com)"`

	// Proxy optionally routes upstream calls through an HTTP proxy.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// Timeout returns the per-call timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutMS) * time.Millisecond
}

// ProxyConfig holds the outbound proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROVIDER_PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"PROVIDER_PROXY_HOST"`
	Port     int    `mapstructure:"PROVIDER_PROXY_PORT"`
	Username string `mapstructure:"PROVIDER_PROXY_USERNAME"`
	Password string `mapstructure:"PROVIDER_PROXY_PASSWORD"`
}

// Settings converts the configuration into outbound proxy settings.
func (p ProxyConfig) Settings() proxy.Settings {
	return proxy.Settings{
		Enabled:  p.Enabled,
		Hostname: p.Hostname,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
	}
}

// CacheConfig holds cache backend details.
type CacheConfig struct {
	// Driver selects the backend: "memory" or "redis".
	Driver string `mapstructure:"CACHE_DRIVER" default:"memory"`
	// TTLMS is how long a successful lookup stays cached.
	TTLMS int `mapstructure:"CACHE_TTL_MS" default:"120000"`
	// RedisURL is required when Driver is "redis".
	RedisURL string `mapstructure:"REDIS_URL"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMS) * time.Millisecond
}

// FuzzyConfig holds the candidate generation limits.
type FuzzyConfig struct {
	// MaxCandidates caps the number of generated candidates per lookup.
	MaxCandidates int `mapstructure:"FUZZY_MAX_CANDIDATES" default:"60"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	processTags(v, &config)

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every tagged field to its env var and registers its default.
func processTags(v *viper.Viper, config interface{}) {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			processTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		_ = v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
}

func (c *AppConfig) validate() error {
	if strings.TrimSpace(c.Provider.BaseURL) == "" {
		return fmt.Errorf("invalid configuration: PROVIDER_BASE must not be empty")
	}
	if c.Provider.TimeoutMS <= 0 {
		return fmt.Errorf("invalid configuration: PROVIDER_TIMEOUT_MS must be positive, got %d", c.Provider.TimeoutMS)
	}
	if c.Cache.TTLMS <= 0 {
		return fmt.Errorf("invalid configuration: CACHE_TTL_MS must be positive, got %d", c.Cache.TTLMS)
	}
	if c.Fuzzy.MaxCandidates <= 0 {
		return fmt.Errorf("invalid configuration: FUZZY_MAX_CANDIDATES must be positive, got %d", c.Fuzzy.MaxCandidates)
	}

	switch c.Cache.Driver {
	case CacheDriverMemory:
	case CacheDriverRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("missing required configuration: REDIS_URL (CACHE_DRIVER=redis)")
		}
	default:
		return fmt.Errorf("invalid configuration: unknown CACHE_DRIVER %q", c.Cache.Driver)
	}

	return nil
}
