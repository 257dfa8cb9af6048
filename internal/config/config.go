package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/ghkeeper/pkg/cookie"
	"github.com/dmitrymomot/ghkeeper/pkg/github"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
	"github.com/dmitrymomot/ghkeeper/pkg/oauth"
)

// Session store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreBolt     = "bolt"
)

// CallbackPath is where GitHub sends the user back after authorization.
const CallbackPath = "/auth/github/callback"

// Errors.
var (
	ErrParse              = errors.New("config: parse environment")
	ErrShortSecret        = fmt.Errorf("config: SESSION_SECRET must be at least %d bytes", cookie.MinSecretLength)
	ErrUnknownStore       = errors.New("config: unknown SESSION_STORE")
	ErrMissingRedisURL    = errors.New("config: REDIS_URL is required for the redis session store")
	ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")
	ErrMissingBoltPath    = errors.New("config: BOLT_PATH is required for the bolt session store")
	ErrInvalidBaseURL     = errors.New("config: APP_BASE_URL must be an absolute URL")
	ErrNoLocales          = errors.New("config: LOCALES must not be empty")
)

// Config is the whole service configuration, loaded once at startup.
type Config struct {
	Env             string        `env:"APP_ENV" envDefault:"production"`
	Addr            string        `env:"APP_ADDR" envDefault:":8080"`
	BaseURL         string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout  time.Duration `env:"APP_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	OAuth   oauth.GitHubConfig
	GitHub  github.Config
	Session Session

	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`
	BoltPath    string `env:"BOLT_PATH" envDefault:"./data/sessions.db"`

	Locales       []string `env:"LOCALES" envSeparator:"," envDefault:"en,ja"`
	DefaultLocale string   `env:"DEFAULT_LOCALE" envDefault:"en"`
	UIDir         string   `env:"UI_DIR"`

	Log    logger.Config
	Sentry logger.SentryConfig
}

// Session configures session signing and storage.
type Session struct {
	Secret string `env:"SESSION_SECRET,required"`
	Store  string `env:"SESSION_STORE" envDefault:"memory"`

	// SweepSchedule is the cron schedule for purging expired rows of the
	// postgres and bolt stores.
	SweepSchedule string `env:"SESSION_SWEEP_SCHEDULE" envDefault:"*/10 * * * *"`
}

// IsDevelopment reports whether cookies may be sent over plain HTTP.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads the configuration from vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.OAuth.RedirectURL == "" {
		cfg.OAuth.RedirectURL = cfg.BaseURL + CallbackPath
	}
	cfg.Session.Store = strings.ToLower(strings.TrimSpace(cfg.Session.Store))
	cfg.Locales = slices.DeleteFunc(cfg.Locales, func(s string) bool { return strings.TrimSpace(s) == "" })
	for i, l := range cfg.Locales {
		cfg.Locales[i] = strings.TrimSpace(l)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Session.Secret) < cookie.MinSecretLength {
		errs = append(errs, ErrShortSecret)
	}

	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisURL == "" {
			errs = append(errs, ErrMissingRedisURL)
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, ErrMissingDatabaseURL)
		}
	case StoreBolt:
		if c.BoltPath == "" {
			errs = append(errs, ErrMissingBoltPath)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownStore, c.Session.Store))
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ErrInvalidBaseURL)
	}
	if len(c.Locales) == 0 {
		errs = append(errs, ErrNoLocales)
	}

	return errors.Join(errs...)
}

// Database is the subset of Config the migrate command needs.
type Database struct {
	URL string `env:"DATABASE_URL"`
}

// LoadDatabase reads DATABASE_URL without requiring the OAuth settings.
func LoadDatabase() (*Database, error) {
	var db Database
	if err := env.Parse(&db); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if db.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return &db, nil
}
