package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`   // Telegram API token loaded from environment
	Catalog          Catalog `mapstructure:"catalog"`
	Storage          Storage `mapstructure:"storage"`
	Game             Game    `mapstructure:"game"`
	Giphy            Giphy   `mapstructure:"giphy"`
	Janitor          Janitor `mapstructure:"janitor"`
}

// Catalog points to the word list.
type Catalog struct {
	Path         string `mapstructure:"path"`          // JSON file with the word pairs
	ExpectedSize int    `mapstructure:"expected_size"` // 0 disables the size check
}

// Storage selects and configures the progress backend.
type Storage struct {
	Driver          string        `mapstructure:"driver"`      // memory, sqlite or postgres
	SQLitePath      string        `mapstructure:"sqlite_path"` // database file for the sqlite driver
	URL             string        `mapstructure:"-"`           // postgres connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the postgres connection string if it is configured.
func (s Storage) DSN() (string, error) {
	if s.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return s.URL, nil
}

// Game tunes the drill.
type Game struct {
	FeedbackDelay       time.Duration `mapstructure:"feedback_delay"` // pause between feedback and the next prompt
	SkipLimit           int           `mapstructure:"skip_limit"`     // skips allowed per pass
	Distractors         int           `mapstructure:"distractors"`    // wrong options in multiple choice
	MultipleChoiceRatio float64       `mapstructure:"multiple_choice_ratio"`
	HintRatio           float64       `mapstructure:"hint_ratio"`
}

// Giphy configures GIF hints. An empty API key disables them.
type Giphy struct {
	APIKey            string        `mapstructure:"-"`
	BaseURL           string        `mapstructure:"base_url"`
	Lang              string        `mapstructure:"lang"`
	Limit             int           `mapstructure:"limit"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// Enabled reports whether hints can be fetched.
func (g Giphy) Enabled() bool {
	return g.APIKey != ""
}

// Janitor configures the idle session sweep.
type Janitor struct {
	Schedule string        `mapstructure:"schedule"` // cron spec
	IdleTTL  time.Duration `mapstructure:"idle_ttl"`
}

// Load reads configuration from config files and environment variables.
// Only the Telegram token is required unless the postgres driver is selected.
func Load() (*Config, error) {
	return load(true)
}

// LoadOffline loads configuration for commands that do not talk to Telegram.
func LoadOffline() (*Config, error) {
	return load(false)
}

func load(requireToken bool) (*Config, error) {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("giphy_api_key", "GIPHY_API_KEY")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Storage.URL = v.GetString("database_url")
	cfg.Giphy.APIKey = v.GetString("giphy_api_key")

	if err := cfg.validate(requireToken); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("catalog.path", "assets/data/words.json")
	v.SetDefault("catalog.expected_size", 1000)

	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "data/palabras.db")
	v.SetDefault("storage.max_connections", 20)
	v.SetDefault("storage.max_conn_lifetime", "30s")

	v.SetDefault("game.feedback_delay", "800ms")
	v.SetDefault("game.skip_limit", 20)
	v.SetDefault("game.distractors", 2)
	v.SetDefault("game.multiple_choice_ratio", 0.33)
	v.SetDefault("game.hint_ratio", 0.33)

	v.SetDefault("giphy.base_url", "https://api.giphy.com/v1/gifs")
	v.SetDefault("giphy.lang", "es")
	v.SetDefault("giphy.limit", 10)
	v.SetDefault("giphy.timeout", "5s")
	v.SetDefault("giphy.requests_per_second", 2)

	v.SetDefault("janitor.schedule", "@every 10m")
	v.SetDefault("janitor.idle_ttl", "2h")
}

func (c *Config) validate(requireToken bool) error {
	if requireToken && c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.Storage.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Game.MultipleChoiceRatio < 0 || c.Game.HintRatio < 0 ||
		c.Game.MultipleChoiceRatio+c.Game.HintRatio > 1 {
		return fmt.Errorf("question ratios must be non-negative and sum to at most 1")
	}

	return nil
}
