package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything loadtrack needs to reach the supply-chain API
// and identify the viewer.
type Config struct {
	APIURL          string
	RecordType      string
	DisplayProperty string
	PublicKey       string
	KeyFile         string
	AuthToken       string
	LogFile         string
	LogLevel        slog.Level
	RequestTimeout  time.Duration
}

// PublicKeyEnv overrides the configured viewer identity.
const PublicKeyEnv = "LOADTRACK_PUBLIC_KEY"

const (
	defaultConfigPath      = "~/.config/loadtrack/config.toml"
	defaultAPIURL          = "http://127.0.0.1:8020/api"
	defaultRecordType      = "load"
	defaultDisplayProperty = "weight"
	defaultLogFile         = "~/.local/state/loadtrack/loadtrack.log"
	defaultRequestTimeout  = 5 * time.Second
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIURL:          defaultAPIURL,
		RecordType:      defaultRecordType,
		DisplayProperty: defaultDisplayProperty,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        slog.LevelInfo,
		RequestTimeout:  defaultRequestTimeout,
	}
}

// Load locates and parses the loadtrack config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.applyEnv(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL          string `toml:"api_url"`
		RecordType      string `toml:"record_type"`
		DisplayProperty string `toml:"display_property"`
		PublicKey       string `toml:"public_key"`
		KeyFile         string `toml:"key_file"`
		AuthToken       string `toml:"auth_token"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
		RequestTimeout  string `toml:"request_timeout"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = orDefault(raw.APIURL, defaultAPIURL)
	cfg.RecordType = orDefault(raw.RecordType, defaultRecordType)
	cfg.DisplayProperty = orDefault(raw.DisplayProperty, defaultDisplayProperty)
	cfg.AuthToken = strings.TrimSpace(raw.AuthToken)
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}

	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse request_timeout: must be positive, got %s", d)
		}
		cfg.RequestTimeout = d
	}

	cfg.PublicKey = strings.TrimSpace(raw.PublicKey)
	if keyFile := strings.TrimSpace(raw.KeyFile); keyFile != "" {
		cfg.KeyFile = mustExpand(keyFile)
		if cfg.PublicKey == "" {
			key, err := readKeyFile(cfg.KeyFile)
			if err != nil {
				return Config{}, err
			}
			cfg.PublicKey = key
		}
	}

	return cfg.applyEnv(), nil
}

// WithPublicKey returns a copy of c using key as the viewer identity when key is
// non-blank.
func (c Config) WithPublicKey(key string) Config {
	if trimmed := strings.TrimSpace(key); trimmed != "" {
		c.PublicKey = trimmed
	}
	return c
}

// Authenticated reports whether a viewer identity is configured.
func (c Config) Authenticated() bool {
	return c.PublicKey != ""
}

func (c Config) applyEnv() Config {
	return c.WithPublicKey(os.Getenv(PublicKeyEnv))
}

// readKeyFile loads a hex-encoded public key, such as a Sawtooth .pub file.
// Only the first non-empty line is used.
func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if key := strings.TrimSpace(line); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("read key file: %s is empty", path)
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
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

// ExpandPath resolves a leading tilde and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
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
