// Package config loads docchat configuration from the environment and an
// optional YAML config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// Backend
	ServerURL string
	Timeout   time.Duration

	// Chat
	Model string

	// Client state (token, user, document binding)
	StateFile string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the YAML config file shape. Env vars take precedence.
type fileConfig struct {
	ServerURL string `yaml:"server_url"`
	Timeout   string `yaml:"timeout"`
	Model     string `yaml:"model"`
	StateFile string `yaml:"state_file"`
	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
}

// Load reads configuration from the config file (if present) and the
// environment. Defaults match the original DocChat frontend.
func Load() Config {
	fc := loadFile(configFilePath())

	return Config{
		ServerURL: getEnv("DOCCHAT_SERVER_URL", fc.ServerURL, "http://localhost:8000"),
		Timeout:   parseTimeout(getEnv("DOCCHAT_CLIENT_TIMEOUT", fc.Timeout, "2m")),
		Model:     getEnv("DOCCHAT_MODEL", fc.Model, "llama3.2"),
		StateFile: getEnv("DOCCHAT_STATE_FILE", fc.StateFile, defaultStateFile()),
		LogFile:   getEnv("DOCCHAT_LOG_FILE", fc.LogFile, "/tmp/docchat.log"),
		LogLevel:  parseLogLevel(getEnv("DOCCHAT_LOG_LEVEL", fc.LogLevel, "INFO")),
	}
}

// configFilePath returns the YAML config file location, overridable via
// DOCCHAT_CONFIG.
func configFilePath() string {
	if p := os.Getenv("DOCCHAT_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "docchat", "config.yaml")
}

// loadFile parses the YAML config file. A missing or unreadable file is not
// an error; env vars and defaults still apply.
func loadFile(path string) fileConfig {
	var fc fileConfig
	if path == "" {
		return fc
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config file %s: %v\n", path, err)
		return fileConfig{}
	}
	return fc
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "docchat-state.json")
	}
	return filepath.Join(dir, "docchat", "state.json")
}

// getEnv returns the env var if set, then the file value, then the default.
func getEnv(key, fileVal, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return defaultVal
}

func parseTimeout(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return 2 * time.Minute
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
