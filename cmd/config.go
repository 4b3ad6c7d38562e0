package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/finkeeper/finkeeper"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration file.
const (
	EnvDataFile = "FINKEEPER_DATA_FILE"
	EnvCurrency = "FINKEEPER_CURRENCY"
	EnvLogLevel = "FINKEEPER_LOG_LEVEL"
)

// Config holds the application settings.
type Config struct {
	DataFile string `yaml:"data_file"`
	Currency string `yaml:"currency"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DataFile: finkeeper.DefaultDataFile,
		Currency: "CZK",
		LogLevel: "info",
	}
}

// LoadConfig reads the defaults, then the YAML file at path, then the
// environment. Variables from envFile apply only when not already set in the
// process environment. Both files are optional.
func LoadConfig(path, envFile string) (Config, error) {
	c := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("reading config %q: %w", path, err)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return c, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("reading %q: %w", envFile, err)
	}
	c.applyEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDataFile); v != "" {
		c.DataFile = v
	}
	if v := getenv(EnvCurrency); v != "" {
		c.Currency = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data file cannot be empty")
	}
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the log level, one of debug, info, warn or error.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// setupLogging sends the default logger to w, as text, at the configured level.
func setupLogging(w io.Writer, c Config) {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
