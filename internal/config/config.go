package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/GustavoCaso/financeledger/internal/category"
	"github.com/GustavoCaso/financeledger/internal/logger"
	"github.com/GustavoCaso/financeledger/internal/storage"
)

type Config struct {
	DataDir            string          `toml:"data_dir"`
	Format             storage.Format  `toml:"format"`
	NearLimitThreshold float64         `toml:"near_limit_threshold"`
	Logger             logger.Config   `toml:"logger"`
	Rules              []category.Rule `toml:"rules"`

	// CustomCategories are registered as expense categories on every run.
	CustomCategories []string `toml:"custom_categories"`
}

const (
	DefaultFile = "financeledger.toml"
	envFile     = ".env"

	defaultDataDir   = "data"
	defaultFormat    = storage.FormatQuoted
	defaultNearLimit = 0.8
	defaultLogLevel  = logger.LevelInfo
	defaultLogFormat = logger.FormatText
	defaultLogOutput = "stderr"
)

func defaults() *Config {
	return &Config{
		DataDir:            defaultDataDir,
		Format:             defaultFormat,
		NearLimitThreshold: defaultNearLimit,
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
	}
}

// Parse builds the configuration from defaults, the optional TOML file, an
// optional .env file in the working directory and FINANCELEDGER_* environment
// variables, in that order. Missing files are not an error.
func Parse(file string) (*Config, error) {
	return parse(file, envFile)
}

func parse(file, dotenv string) (*Config, error) {
	conf := defaults()

	bytes, err := os.ReadFile(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err = toml.Unmarshal(bytes, conf); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}

	values, err := godotenv.Read(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", dotenv, err)
	}

	if err = conf.parseEnv(lookupEnv(values)); err != nil {
		return nil, err
	}

	if err = conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// lookupEnv prefers the process environment over values read from .env.
func lookupEnv(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
}

func (c *Config) parseEnv(getenv func(string) string) error {
	if dir := getenv("FINANCELEDGER_DATA_DIR"); dir != "" {
		c.DataDir = dir
	}

	if format := getenv("FINANCELEDGER_FORMAT"); format != "" {
		c.Format = storage.Format(format)
	}

	if nearLimit := getenv("FINANCELEDGER_NEAR_LIMIT"); nearLimit != "" {
		threshold, err := strconv.ParseFloat(nearLimit, 64)
		if err != nil {
			return fmt.Errorf("invalid FINANCELEDGER_NEAR_LIMIT %q: %w", nearLimit, err)
		}
		c.NearLimitThreshold = threshold
	}

	if level := getenv("FINANCELEDGER_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := getenv("FINANCELEDGER_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := getenv("FINANCELEDGER_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	return nil
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}

	if !c.Format.Valid() {
		return fmt.Errorf("unknown storage format %q", c.Format)
	}

	if c.NearLimitThreshold <= 0 || c.NearLimitThreshold > 1 {
		return fmt.Errorf("near_limit_threshold must be in (0, 1], got %v", c.NearLimitThreshold)
	}

	if !c.Logger.Level.Valid() {
		return fmt.Errorf("unknown log level %q", c.Logger.Level)
	}

	if !c.Logger.Format.Valid() {
		return fmt.Errorf("unknown log format %q", c.Logger.Format)
	}

	return nil
}
