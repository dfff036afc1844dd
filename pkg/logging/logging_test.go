package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/callqa/pkg/logging"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := logging.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Level)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want text", cfg.Format)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want empty", cfg.File)
	}
	if cfg.MaxSizeMB != 100 {
		t.Errorf("MaxSizeMB = %d, want 100", cfg.MaxSizeMB)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_LOG_LEVEL", "debug")
	t.Setenv("TEST_LOG_FORMAT", "json")
	t.Setenv("TEST_LOG_MAX_SIZE", "10")

	cfg := logging.Config{}
	err := cfg.Finalize(&logging.Env{
		Level:     "TEST_LOG_LEVEL",
		Format:    "TEST_LOG_FORMAT",
		MaxSizeMB: "TEST_LOG_MAX_SIZE",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Level != "debug" || cfg.Format != "json" || cfg.MaxSizeMB != 10 {
		t.Errorf("got %+v", cfg)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		wantErr string
	}{
		{"bad level", logging.Config{Level: "loud"}, "invalid level"},
		{"bad format", logging.Config{Format: "xml"}, "invalid format"},
		{"negative size", logging.Config{MaxSizeMB: -1}, "max_size_mb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := logging.Config{Level: "info", Format: "text", MaxSizeMB: 100}
	base.Merge(&logging.Config{Format: "json", File: "callqa.log"})

	if base.Level != "info" {
		t.Errorf("Level = %q, want info (unchanged)", base.Level)
	}
	if base.Format != "json" || base.File != "callqa.log" {
		t.Errorf("got %+v", base)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.input)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewHandlerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewHandler(&buf, "json", slog.LevelInfo))
	logger.Debug("hidden")
	logger.Info("visible", "system", "calls")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a single JSON record, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "visible" || record["system"] != "calls" {
		t.Errorf("record = %v", record)
	}
}

func TestNewWithFile(t *testing.T) {
	cfg := logging.Config{File: filepath.Join(t.TempDir(), "callqa.log")}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	logger, closer, err := logging.New(&cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("written")

	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
