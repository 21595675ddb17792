// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     config
// Description: TOML configuration with defaults and environment overrides
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Calculator CalculatorConfig `toml:"calculator"`
	Journal    JournalConfig    `toml:"journal"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	LogFile   string `toml:"log_file"`
}

// CalculatorConfig holds calculator and history settings
type CalculatorConfig struct {
	Precision      int     `toml:"precision"`
	MaxHistorySize int     `toml:"max_history_size"`
	MaxInputValue  float64 `toml:"max_input_value"`
	AutoSave       bool    `toml:"auto_save"`
	HistoryFile    string  `toml:"history_file"`
	CancelWord     string  `toml:"cancel_word"`
}

// JournalConfig holds the event journal settings
type JournalConfig struct {
	Enabled   bool     `toml:"enabled"`
	Path      string   `toml:"path"`
	Retention Duration `toml:"retention"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Environment variables overriding the file configuration
const (
	EnvConfig         = "MRW_CONFIG"
	EnvBaseDir        = "CALCULATOR_BASE_DIR"
	EnvMaxHistorySize = "CALCULATOR_MAX_HISTORY_SIZE"
	EnvAutoSave       = "CALCULATOR_AUTO_SAVE"
	EnvPrecision      = "CALCULATOR_PRECISION"
	EnvMaxInputValue  = "CALCULATOR_MAX_INPUT_VALUE"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(toml.MetaData{})
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	cfg.applyDefaults(md)
	cfg.expandEnvVars()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads the file named by MRW_CONFIG or the first file found in
// the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		// Try default locations
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/meinrechenwerk/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		cfg := Default()
		if err := cfg.applyEnvOverrides(); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return Load(path)
}

// applyDefaults fills unset values. md tells explicit zero values (a
// precision of 0, auto_save = false) apart from missing keys.
func (c *Config) applyDefaults(md toml.MetaData) {
	// General
	if c.General.Name == "" {
		c.General.Name = "meinRECHENWERK"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Calculator
	if !md.IsDefined("calculator", "precision") {
		c.Calculator.Precision = 10
	}
	if c.Calculator.MaxHistorySize == 0 {
		c.Calculator.MaxHistorySize = 1000
	}
	if c.Calculator.MaxInputValue == 0 {
		c.Calculator.MaxInputValue = 1e300
	}
	if !md.IsDefined("calculator", "auto_save") {
		c.Calculator.AutoSave = true
	}
	if c.Calculator.CancelWord == "" {
		c.Calculator.CancelWord = "cancel"
	}

	// Journal
	if !md.IsDefined("journal", "enabled") {
		c.Journal.Enabled = true
	}
	if !md.IsDefined("journal", "retention") {
		c.Journal.Retention.Duration = 30 * 24 * time.Hour
	}
}

// expandEnvVars expands environment variables in path settings
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Calculator.HistoryFile = os.ExpandEnv(c.Calculator.HistoryFile)
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
}

// applyEnvOverrides applies the CALCULATOR_* environment variables
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvBaseDir); v != "" {
		c.General.DataDir = v
	}

	if v := os.Getenv(EnvMaxHistorySize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvMaxHistorySize, v, err)
		}
		c.Calculator.MaxHistorySize = n
	}

	if v := os.Getenv(EnvAutoSave); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			c.Calculator.AutoSave = true
		case "false", "0", "no", "off":
			c.Calculator.AutoSave = false
		default:
			return envError(EnvAutoSave, v, fmt.Errorf("not a boolean"))
		}
	}

	if v := os.Getenv(EnvPrecision); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvPrecision, v, err)
		}
		c.Calculator.Precision = n
	}

	if v := os.Getenv(EnvMaxInputValue); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvMaxInputValue, v, err)
		}
		c.Calculator.MaxInputValue = f
	}

	return nil
}

func envError(name, value string, cause error) error {
	return mrwerror.Wrap(cause, fmt.Sprintf("invalid value %q for %s", value, name)).
		WithCode(mrwerror.CodeConfigError).
		WithDetail("variable", name)
}

// Validate checks the configuration for values the calculator cannot use
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, reason string) error {
		return mrwerror.Newf("invalid configuration %s = %v: %s", key, value, reason).
			WithCode(mrwerror.CodeInvalidConfig).
			WithDetail("key", key)
	}

	if c.Calculator.Precision < 0 {
		return invalid("calculator.precision", c.Calculator.Precision, "must not be negative")
	}
	if c.Calculator.MaxHistorySize <= 0 {
		return invalid("calculator.max_history_size", c.Calculator.MaxHistorySize, "must be positive")
	}
	if c.Calculator.MaxInputValue <= 0 {
		return invalid("calculator.max_input_value", c.Calculator.MaxInputValue, "must be positive")
	}
	if strings.TrimSpace(c.Calculator.CancelWord) == "" {
		return invalid("calculator.cancel_word", c.Calculator.CancelWord, "must not be blank")
	}
	if c.Journal.Retention.Duration < 0 {
		return invalid("journal.retention", c.Journal.Retention.Duration, "must not be negative")
	}
	return nil
}

// HistoryPath returns the history file, defaulting below the data directory
func (c *Config) HistoryPath() string {
	if c.Calculator.HistoryFile != "" {
		return c.Calculator.HistoryFile
	}
	return filepath.Join(c.General.DataDir, "history", "calculator_history.csv")
}

// LogPath returns the log file, defaulting below the data directory
func (c *Config) LogPath() string {
	if c.General.LogFile != "" {
		return c.General.LogFile
	}
	return filepath.Join(c.General.DataDir, "logs", "calculator.log")
}

// JournalPath returns the journal database, defaulting below the data directory
func (c *Config) JournalPath() string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(c.General.DataDir, "journal.db")
}
