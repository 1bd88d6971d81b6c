package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelWarn)

	logger.Debug("debug line")
	logger.Info("info line")
	logger.Warn("warn line")
	logger.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.NotContains(t, out, "info line")
	assert.Contains(t, out, "[WARN] warn line")
	assert.Contains(t, out, "[ERROR] error line")
}

func TestDefaultLogger_Formatting(t *testing.T) {
	var buf bytes.Buffer
	logger := NewCustomLogger(&buf, LogLevelDebug)

	logger.Info("ingested %d chunks from %s", 12, "faq.txt")

	assert.Contains(t, buf.String(), "ingested 12 chunks from faq.txt")
	assert.True(t, strings.HasPrefix(buf.String(), "[rag] "))
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "NONE", LogLevelNone.String())
	assert.Contains(t, LogLevel(42).String(), "UNKNOWN")
}

func TestPackageLevelLogger(t *testing.T) {
	old := GetDefaultLogger()
	defer SetDefaultLogger(old)

	var buf bytes.Buffer
	SetDefaultLogger(NewCustomLogger(&buf, LogLevelInfo))

	Info("hello from the package logger")
	Debug("should be filtered")

	assert.Contains(t, buf.String(), "hello from the package logger")
	assert.NotContains(t, buf.String(), "should be filtered")
}
