package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("LETTERBOX_SOLVER_URL replaces base url", func(t *testing.T) {
		t.Setenv("LETTERBOX_SOLVER_URL", "http://solver:9000")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://solver:9000", cfg.Solver.BaseURL)
	})

	t.Run("LETTERBOX_ON_INCOMPLETE is lower-cased", func(t *testing.T) {
		t.Setenv("LETTERBOX_ON_INCOMPLETE", "PROMPT")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, OnIncompletePrompt, cfg.Input.OnIncomplete)
		assert.True(t, cfg.PromptOnIncomplete())
	})

	t.Run("empty variables leave config untouched", func(t *testing.T) {
		t.Setenv("LETTERBOX_SOLVER_URL", "")
		t.Setenv("LETTERBOX_TIMEOUT", "")
		t.Setenv("LETTERBOX_LOG_LEVEL", "")

		cfg := &Config{Solver: SolverConfig{BaseURL: "http://keep", Timeout: "9s"}}
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://keep", cfg.Solver.BaseURL)
		assert.Equal(t, "9s", cfg.Solver.Timeout)
		assert.Equal(t, "", cfg.Logging.Level)
	})

	t.Run("logging overrides", func(t *testing.T) {
		t.Setenv("LETTERBOX_LOG_LEVEL", "debug")
		t.Setenv("LETTERBOX_LOG_FILE", "/tmp/letterbox.log")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "/tmp/letterbox.log", cfg.Logging.File)
	})
}
