package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API   APIConfig   `yaml:"api"`
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"SEODASH_API_URL"     env-default:"http://localhost:8080/api/v1"`
	Token   string        `yaml:"token"    env:"SEODASH_API_TOKEN"`
	Timeout time.Duration `yaml:"timeout"  env:"SEODASH_API_TIMEOUT" env-default:"15s"`
	Retries int           `yaml:"retries"  env:"SEODASH_API_RETRIES" env-default:"2"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"SEODASH_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"SEODASH_LOG_FORMAT" env-default:"text"`
}

type StoreConfig struct {
	PageSize      int           `yaml:"page_size"       env:"SEODASH_PAGE_SIZE"       env-default:"20"`
	PageCacheSize int           `yaml:"page_cache_size" env:"SEODASH_PAGE_CACHE_SIZE" env-default:"32"`
	PageCacheTTL  time.Duration `yaml:"page_cache_ttl"  env:"SEODASH_PAGE_CACHE_TTL"  env-default:"30s"`
	LatestOnly    bool          `yaml:"latest_only"     env:"SEODASH_LATEST_ONLY"     env-default:"true"`
	InsertAt      string        `yaml:"insert_at"       env:"SEODASH_INSERT_AT"       env-default:"start"`
}

var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads configuration with priority ENV > YAML > defaults. An explicit
// path must exist; without one the default config path is used when present,
// otherwise only the environment and defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.base_url: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url scheme must be http or https, got %q", ErrInvalidConfig, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: api.base_url must have a host", ErrInvalidConfig)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be > 0 (got %s)", ErrInvalidConfig, c.API.Timeout)
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("%w: api.retries must be >= 0 (got %d)", ErrInvalidConfig, c.API.Retries)
	}
	if c.Store.PageSize <= 0 {
		return fmt.Errorf("%w: store.page_size must be > 0 (got %d)", ErrInvalidConfig, c.Store.PageSize)
	}
	if c.Store.PageCacheSize < 0 {
		return fmt.Errorf("%w: store.page_cache_size must be >= 0 (got %d)", ErrInvalidConfig, c.Store.PageCacheSize)
	}
	switch c.Store.InsertAt {
	case "start", "end":
	default:
		return fmt.Errorf("%w: store.insert_at must be start or end (got %q)", ErrInvalidConfig, c.Store.InsertAt)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format must be text or json (got %q)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
