package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"hours", "720h", 720 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"invalid", "a month", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "meinRECHENWERK" {
		t.Errorf("General.Name = %v, want meinRECHENWERK", cfg.General.Name)
	}
	if cfg.General.DataDir != "./data" {
		t.Errorf("General.DataDir = %v, want ./data", cfg.General.DataDir)
	}
	if cfg.Calculator.Precision != 10 {
		t.Errorf("Calculator.Precision = %v, want 10", cfg.Calculator.Precision)
	}
	if cfg.Calculator.MaxHistorySize != 1000 {
		t.Errorf("Calculator.MaxHistorySize = %v, want 1000", cfg.Calculator.MaxHistorySize)
	}
	if cfg.Calculator.MaxInputValue != 1e300 {
		t.Errorf("Calculator.MaxInputValue = %v, want 1e300", cfg.Calculator.MaxInputValue)
	}
	if !cfg.Calculator.AutoSave {
		t.Error("Calculator.AutoSave should default to true")
	}
	if cfg.Calculator.CancelWord != "cancel" {
		t.Errorf("Calculator.CancelWord = %v, want cancel", cfg.Calculator.CancelWord)
	}
	if !cfg.Journal.Enabled {
		t.Error("Journal.Enabled should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := Default()
	cfg.General.DataDir = "/var/lib/mrw"

	if got := cfg.HistoryPath(); got != filepath.Join("/var/lib/mrw", "history", "calculator_history.csv") {
		t.Errorf("HistoryPath() = %v", got)
	}
	if got := cfg.LogPath(); got != filepath.Join("/var/lib/mrw", "logs", "calculator.log") {
		t.Errorf("LogPath() = %v", got)
	}
	if got := cfg.JournalPath(); got != filepath.Join("/var/lib/mrw", "journal.db") {
		t.Errorf("JournalPath() = %v", got)
	}

	cfg.Calculator.HistoryFile = "/tmp/h.yaml"
	if got := cfg.HistoryPath(); got != "/tmp/h.yaml" {
		t.Errorf("HistoryPath() = %v, want /tmp/h.yaml", got)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[general]
name = "TestRechner"
data_dir = "/tmp/mrw"
log_level = "debug"

[calculator]
precision = 0
auto_save = false
max_history_size = 50
history_file = "/tmp/mrw/history.yaml"

[journal]
enabled = false
retention = "48h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "TestRechner" {
		t.Errorf("General.Name = %v, want TestRechner", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Calculator.Precision != 0 {
		t.Errorf("explicit precision 0 was overridden: %v", cfg.Calculator.Precision)
	}
	if cfg.Calculator.AutoSave {
		t.Error("explicit auto_save = false was overridden")
	}
	if cfg.Calculator.MaxHistorySize != 50 {
		t.Errorf("Calculator.MaxHistorySize = %v, want 50", cfg.Calculator.MaxHistorySize)
	}
	if cfg.Journal.Enabled {
		t.Error("explicit journal.enabled = false was overridden")
	}
	if cfg.Journal.Retention.Duration != 48*time.Hour {
		t.Errorf("Journal.Retention = %v, want 48h", cfg.Journal.Retention.Duration)
	}
	// Defaults still apply to missing keys
	if cfg.Calculator.CancelWord != "cancel" {
		t.Errorf("Calculator.CancelWord = %v, want cancel", cfg.Calculator.CancelWord)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[calculator\nprecision = 1"},
		{"unknown key", "[calculator]\nprecison = 3\n"},
		{"negative precision", "[calculator]\nprecision = -1\n"},
		{"negative history size", "[calculator]\nmax_history_size = -5\n"},
		{"bad retention", "[journal]\nretention = \"forever\"\n"},
		{"negative retention", "[journal]\nretention = \"-1h\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoad_ZeroRetentionKeepsAll(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[journal]\nretention = \"0s\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Journal.Retention.Duration != 0 {
		t.Errorf("Journal.Retention = %v, want 0", cfg.Journal.Retention.Duration)
	}
	if Default().Journal.Retention.Duration != 720*time.Hour {
		t.Errorf("default retention = %v, want 720h", Default().Journal.Retention.Duration)
	}
}

func TestConfig_expandEnvVars(t *testing.T) {
	t.Setenv("MRW_TEST_HOME", "/home/rechner")

	cfg := &Config{
		General: GeneralConfig{DataDir: "${MRW_TEST_HOME}/data"},
		Calculator: CalculatorConfig{
			HistoryFile: "$MRW_TEST_HOME/history.csv",
		},
	}
	cfg.expandEnvVars()

	if cfg.General.DataDir != "/home/rechner/data" {
		t.Errorf("DataDir = %v, want /home/rechner/data", cfg.General.DataDir)
	}
	if cfg.Calculator.HistoryFile != "/home/rechner/history.csv" {
		t.Errorf("HistoryFile = %v, want /home/rechner/history.csv", cfg.Calculator.HistoryFile)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvBaseDir, "/srv/calc")
	t.Setenv(EnvMaxHistorySize, "25")
	t.Setenv(EnvAutoSave, "off")
	t.Setenv(EnvPrecision, "4")
	t.Setenv(EnvMaxInputValue, "1e6")

	cfg, err := Load(writeConfig(t, "[calculator]\nprecision = 8\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.DataDir != "/srv/calc" {
		t.Errorf("DataDir = %v", cfg.General.DataDir)
	}
	if cfg.Calculator.MaxHistorySize != 25 {
		t.Errorf("MaxHistorySize = %v", cfg.Calculator.MaxHistorySize)
	}
	if cfg.Calculator.AutoSave {
		t.Error("AutoSave should be disabled")
	}
	if cfg.Calculator.Precision != 4 {
		t.Errorf("Precision = %v", cfg.Calculator.Precision)
	}
	if cfg.Calculator.MaxInputValue != 1e6 {
		t.Errorf("MaxInputValue = %v", cfg.Calculator.MaxInputValue)
	}
}

func TestEnvOverrides_Invalid(t *testing.T) {
	tests := []struct {
		env   string
		value string
		code  mrwerror.Code
	}{
		{EnvMaxHistorySize, "many", mrwerror.CodeConfigError},
		{EnvAutoSave, "maybe", mrwerror.CodeConfigError},
		{EnvPrecision, "-2", mrwerror.CodeInvalidConfig},
		{EnvMaxInputValue, "0", mrwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			_, err := Load(writeConfig(t, ""))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if code := mrwerror.GetCode(err); code != tt.code {
				t.Errorf("error code = %v, want %v", code, tt.code)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[general]\nname = \"FromEnv\"\n")
	t.Setenv(EnvConfig, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "FromEnv" {
		t.Errorf("General.Name = %v, want FromEnv", cfg.General.Name)
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("HOME", t.TempDir())

	wd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "meinRECHENWERK" {
		t.Errorf("General.Name = %v, want defaults", cfg.General.Name)
	}
}
