package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lukaszgryglicki/commedia/internal/settings"
)

func TestInitializeJSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	Initialize(settings.LoggerConfig{Level: "debug", Format: "json", ServiceName: "commedia"}, zapcore.AddSync(&buf))

	GetLogger().Debug("sampled", zap.Int("tries", 3))
	Sync()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "commedia", entry["logger"])
	assert.Equal(t, "sampled", entry["msg"])
	assert.EqualValues(t, 3, entry["tries"])
}

func TestInitializeConsoleLevel(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	Initialize(settings.LoggerConfig{Level: "warn", Format: "console", ServiceName: "c"}, zapcore.AddSync(&buf))

	GetLogger().Info("hidden")
	GetLogger().Warn("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "c.")
}

func TestInitializeOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var first, second bytes.Buffer
	Initialize(settings.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&first))
	Initialize(settings.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
	GetLogger().Info("once")
	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
}

func TestInitializeBadLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var buf bytes.Buffer
	Initialize(settings.LoggerConfig{Level: "loud", Format: "json"}, zapcore.AddSync(&buf))
	GetLogger().Debug("no")
	GetLogger().Info("yes")
	assert.NotContains(t, buf.String(), `"no"`)
	assert.Contains(t, buf.String(), `"yes"`)
}

func TestLogFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	path := filepath.Join(t.TempDir(), "commedia.log")
	var buf bytes.Buffer
	Initialize(settings.LoggerConfig{Level: "info", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&buf))
	GetLogger().Info("to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "file output is JSON: %s", line)
	assert.Contains(t, line, "to file")
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	assert.NotNil(t, GetLogger())
}
