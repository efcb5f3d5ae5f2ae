package cmd

import (
	"log/slog"
	"testing"

	"github.com/millspills/ledgercli/pkg/config"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		flag     bool
		cfg      *config.Config
		expected slog.Level
	}{
		{"defaults to info", false, &config.Config{}, slog.LevelInfo},
		{"debug flag", true, &config.Config{}, slog.LevelDebug},
		{"debug in configuration", false, &config.Config{Debug: true}, slog.LevelDebug},
		{"configuration failed to load", false, nil, slog.LevelInfo},
		{"flag without configuration", true, nil, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := logLevel(tt.flag, tt.cfg); got != tt.expected {
				t.Errorf("logLevel() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
