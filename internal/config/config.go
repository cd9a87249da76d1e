package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings petdesk runs with.
type Config struct {
	BackendURL      string
	DataDir         string
	LogFile         string
	LogLevel        string
	RequestTimeout  time.Duration
	NoticeDuration  time.Duration
	RefreshInterval time.Duration // zero disables background refresh
}

const (
	defaultConfigPath     = "~/.config/petdesk/config.toml"
	defaultDataDir        = "~/.local/share/petdesk"
	defaultBackendURL     = "http://localhost:8000"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 5 * time.Second
	defaultNoticeDuration = 5 * time.Second
	logFileName           = "petdesk.log"
)

// Environment variables that override the config file.
const (
	EnvBackendURL = "PETDESK_BACKEND_URL"
	EnvDataDir    = "PETDESK_DATA_DIR"
	EnvLogLevel   = "PETDESK_LOG_LEVEL"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists. LogFile is
// left empty; LogPath derives it from DataDir.
func Default() Config {
	return Config{
		BackendURL:     defaultBackendURL,
		DataDir:        mustExpand(defaultDataDir),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
		NoticeDuration: defaultNoticeDuration,
	}
}

// Load reads the TOML config at path, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		applyEnv(&cfg)
		return cfg, nil
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BackendURL      string `toml:"backend_url"`
		DataDir         string `toml:"data_dir"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
		RequestTimeout  string `toml:"request_timeout"`
		NoticeDuration  string `toml:"notice_duration"`
		RefreshInterval string `toml:"refresh_interval"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	cfg.LogFile = strings.TrimSpace(raw.LogFile)
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"notice_duration", raw.NoticeDuration, &cfg.NoticeDuration},
		{"refresh_interval", raw.RefreshInterval, &cfg.RefreshInterval},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.raw, d.dst); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from a .env file into the process
// environment without replacing variables that are already set. It reports
// whether the file existed.
func LoadEnvFile(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return true, fmt.Errorf("load env file: %w", err)
	}
	return true, nil
}

// LogPath returns the log file, defaulting to <data_dir>/petdesk.log.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogFile) != "" {
		return mustExpand(c.LogFile)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir + "/" + logFileName)
	}
	return filepath.Join(c.DataDir, logFileName)
}

func applyEnv(cfg *Config) {
	if v := getEnv(EnvBackendURL); v != "" {
		cfg.BackendURL = v
	}
	if v := getEnv(EnvDataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := getEnv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
}

func getEnv(key string) string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func parseDuration(key, raw string, dst *time.Duration) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d < 0 {
		return fmt.Errorf("parse config: %s must not be negative", key)
	}
	*dst = d
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
