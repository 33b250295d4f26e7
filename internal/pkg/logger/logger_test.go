package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestInitLoggerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	InitLogger(LogOption{Format: "json", LogDir: dir, Level: "info"})
	t.Cleanup(func() {
		InitLogger(LogOption{Format: "console"})
	})

	Debugf("hidden %d", 1)
	Infof("[Test] rank task %s done", "xs")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"[Test] rank task xs done"`)
	assert.NotContains(t, string(data), "hidden")
}
