package internal

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogLevel(t *testing.T) {
	defer SetVerbose(false)

	tests := []struct {
		level LogLevel
		want  log.Level
	}{
		{LogLevelError, log.ErrorLevel},
		{LogLevelWarn, log.WarnLevel},
		{LogLevelInfo, log.InfoLevel},
		{LogLevelDebug, log.DebugLevel},
	}
	for _, tt := range tests {
		SetLogLevel(tt.level)
		if got := logger.GetLevel(); got != tt.want {
			t.Errorf("SetLogLevel(%v) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(true)
	if got := logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("SetVerbose(true) level = %v, want debug", got)
	}

	SetVerbose(false)
	if got := logger.GetLevel(); got != log.InfoLevel {
		t.Errorf("SetVerbose(false) level = %v, want info", got)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	defer func() {
		SetLogOutput(os.Stderr)
		SetVerbose(false)
	}()

	SetLogLevel(LogLevelWarn)
	LogInfo("hidden %s", "info")
	LogDebug("hidden debug")
	LogWarn("visible %s", "warning")
	LogError("visible error")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("output should not contain filtered messages, got: %q", output)
	}
	if !strings.Contains(output, "visible warning") {
		t.Errorf("output should contain warning, got: %q", output)
	}
	if !strings.Contains(output, "visible error") {
		t.Errorf("output should contain error, got: %q", output)
	}
}

func TestLogLevels(t *testing.T) {
	if LogLevelError >= LogLevelWarn {
		t.Error("LogLevelError should be less than LogLevelWarn")
	}
	if LogLevelWarn >= LogLevelInfo {
		t.Error("LogLevelWarn should be less than LogLevelInfo")
	}
	if LogLevelInfo >= LogLevelDebug {
		t.Error("LogLevelInfo should be less than LogLevelDebug")
	}
}
