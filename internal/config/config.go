package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// MinSecretLength is the shortest accepted HMAC signing secret.
const MinSecretLength = 32

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Log        `yaml:"log"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
	Store      `yaml:"store"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPServer struct {
	Address           string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":3000"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout       time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"120s"`
	MaxHeaderBytes    int           `yaml:"max_header_bytes" env:"HTTP_MAX_HEADER_BYTES" env-default:"1048576"`
	Compress          bool          `yaml:"compress" env:"HTTP_COMPRESS" env-default:"false"`
}

type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"1h"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

type Store struct {
	Driver      string `yaml:"driver" env:"STORE_DRIVER" env-default:"file"`
	UsersFile   string `yaml:"users_file" env:"STORE_USERS_FILE" env-default:"users.json"`
	TasksFile   string `yaml:"tasks_file" env:"STORE_TASKS_FILE" env-default:"tareas.json"`
	SQLitePath  string `yaml:"sqlite_path" env:"STORE_SQLITE_PATH" env-default:"tareas.db"`
	PostgresDSN string `yaml:"postgres_dsn" env:"DATABASE_URL"`
}

// Load reads configuration from the optional YAML file at configPath and
// from the environment, which takes precedence. A non-empty envFile is
// loaded into the environment first; a missing envFile is ignored.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("env must be one of local, dev, prod (got %q)", c.Env)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.JWTSecret == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) is required")
	}
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("auth.jwt_secret must be at least %d characters for HMAC-SHA256", MinSecretLength)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive (got %s)", c.TokenTTL)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 14 (got %d)", c.BcryptCost)
	}

	switch c.Driver {
	case DriverFile:
		if c.UsersFile == "" || c.TasksFile == "" {
			return errors.New("store.users_file and store.tasks_file are required for the file driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("store.sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("store.postgres_dsn (DATABASE_URL) is required for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver must be one of file, sqlite, postgres (got %q)", c.Driver)
	}

	return nil
}

// SlogLevel parses the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
