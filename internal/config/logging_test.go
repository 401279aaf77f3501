package config

import (
	"path/filepath"
	"testing"

	"letterbox/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigCategoryLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.UseLogger(zap.New(core))
	defer logging.CloseAll()

	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, DefaultConfig().Save(path))
	_, err = Load(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Solver.Timeout = "soon"
	cfg.GetTimeout()

	entries := logs.FilterLoggerName("config").All()
	require.Len(t, entries, 4)
	assert.Contains(t, entries[0].Message, "using defaults")
	assert.Contains(t, entries[1].Message, "wrote config")
	assert.Contains(t, entries[2].Message, "loaded config")
	assert.Equal(t, zapcore.WarnLevel, entries[3].Level)
	assert.Contains(t, entries[3].Message, `"soon"`)
}
