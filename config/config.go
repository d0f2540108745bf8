// config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// DefaultSessionSecret is the development fallback for SESSION_SECRET.
// Keep it in sync with the envDefault tag on Config.SessionSecret.
const DefaultSessionSecret = "show-do-ingles-dev-secret"

// Question sources.
const (
	SourceOpenAI = "openai"
	SourceBank   = "bank"
)

// Postgres holds the PostgreSQL connection settings.
type Postgres struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name     string `env:"DB_NAME" envDefault:"show_do_ingles"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// OpenAI holds the question generator settings.
type OpenAI struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// Config is the whole service configuration.
type Config struct {
	Addr          string   `env:"ADDR" envDefault:":8181"`
	SessionSecret string   `env:"SESSION_SECRET" envDefault:"show-do-ingles-dev-secret"`
	CORSOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"show-do-ingles.db"`
	Postgres      Postgres

	QuestionSource string `env:"QUESTION_SOURCE" envDefault:"openai"`
	OpenAI         OpenAI

	RevealDelay        time.Duration `env:"REVEAL_DELAY" envDefault:"800ms"`
	ResolveDelay       time.Duration `env:"RESOLVE_DELAY" envDefault:"1s"`
	FetchTimeout       time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"2h"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether SESSION_SECRET was left at the public
// development value.
func (c Config) UsesDefaultSecret() bool {
	return c.SessionSecret == DefaultSessionSecret
}

// Validate checks the combinations env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required when STORAGE_DRIVER=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.QuestionSource {
	case SourceBank:
	case SourceOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when QUESTION_SOURCE=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown QUESTION_SOURCE %q", c.QuestionSource))
	}

	if strings.TrimSpace(c.SessionSecret) == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.RevealDelay < 0 || c.ResolveDelay < 0 {
		errs = append(errs, errors.New("reveal and resolve delays must not be negative"))
	}
	if c.FetchTimeout <= 0 {
		errs = append(errs, errors.New("FETCH_TIMEOUT must be positive"))
	}
	if c.SessionIdleTimeout <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TIMEOUT must be positive"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	return errors.Join(errs...)
}
