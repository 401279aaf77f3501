package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"letterbox/internal/config"
	"letterbox/internal/puzzle"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const catTigerRat = `{"success": true, "solutions": [{"words": ["CAT", "TIGER", "RAT"], "score": 12}]}`

// fakeSolver serves body with status and records the puzzle it was sent.
func fakeSolver(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Puzzle []string `json:"puzzle"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &req)
		got = req.Puzzle
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

// setupSolve points the global config at srv and resets solve flags.
func setupSolve(t *testing.T, srv *httptest.Server, format string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Solver.BaseURL = srv.URL
	solveFormat = format
	solveExample = 0
	t.Cleanup(func() {
		cfg = nil
		solveFormat = formatText
		solveExample = 0
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	return cmd, &out
}

func TestSolveText(t *testing.T) {
	srv, sent := fakeSolver(t, http.StatusOK, catTigerRat)
	cmd, out := setupSolve(t, srv, formatText)

	require.NoError(t, runSolve(cmd, []string{"abc", "DEF", "ghi", "JKL"}))

	assert.Equal(t, []string{"ABC", "DEF", "GHI", "JKL"}, *sent)
	assert.Equal(t, " 1. CAT → TIGER → RAT  Score: 12\n", out.String())
}

func TestSolveDefaultAndExample(t *testing.T) {
	srv, sent := fakeSolver(t, http.StatusOK, `{"success": true, "solutions": []}`)
	cmd, out := setupSolve(t, srv, formatText)

	require.NoError(t, runSolve(cmd, nil))
	assert.Equal(t, puzzle.Default.Sides(), *sent)
	assert.Equal(t, "No solutions returned.\n", out.String())

	// Examples are numbered from 1, as 'letterbox examples' lists them
	solveExample = 1
	require.NoError(t, runSolve(cmd, nil))
	assert.Equal(t, puzzle.Examples[0].Sides(), *sent)

	solveExample = len(puzzle.Examples)
	require.NoError(t, runSolve(cmd, nil))
	assert.Equal(t, puzzle.Examples[len(puzzle.Examples)-1].Sides(), *sent)

	solveExample = len(puzzle.Examples) + 1
	assert.Error(t, runSolve(cmd, nil))
	solveExample = -1
	assert.Error(t, runSolve(cmd, nil))
}

func TestSolveJSON(t *testing.T) {
	srv, _ := fakeSolver(t, http.StatusOK, catTigerRat)
	cmd, out := setupSolve(t, srv, formatJSON)

	require.NoError(t, runSolve(cmd, []string{"ABC", "DEF", "GHI", "JKL"}))

	var report solveReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, []string{"ABC", "DEF", "GHI", "JKL"}, report.Puzzle)
	require.Len(t, report.Solutions, 1)
	assert.Equal(t, []string{"CAT", "TIGER", "RAT"}, report.Solutions[0].Words)
	assert.Equal(t, 12.0, report.Solutions[0].Score)
}

func TestSolveMarkdown(t *testing.T) {
	srv, _ := fakeSolver(t, http.StatusOK, catTigerRat)
	cmd, out := setupSolve(t, srv, formatMarkdown)

	require.NoError(t, runSolve(cmd, []string{"ABC", "DEF", "GHI", "JKL"}))
	assert.Contains(t, out.String(), "TIGER")
	assert.Contains(t, out.String(), "ABC DEF GHI JKL")
}

func TestSolveApplicationFailure(t *testing.T) {
	srv, _ := fakeSolver(t, http.StatusBadRequest, `{"success": false, "error": "No solution found"}`)
	cmd, out := setupSolve(t, srv, formatText)

	err := runSolve(cmd, []string{"ABC", "DEF", "GHI", "JKL"})
	require.Error(t, err)
	assert.Equal(t, "Error: No solution found", err.Error())
	assert.Empty(t, out.String())
}

func TestSolveTransportFailure(t *testing.T) {
	srv, _ := fakeSolver(t, http.StatusBadGateway, "upstream down")
	cmd, _ := setupSolve(t, srv, formatText)

	err := runSolve(cmd, []string{"ABC", "DEF", "GHI", "JKL"})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Error solving puzzle: "), err.Error())
	assert.Contains(t, err.Error(), "502")
}

func TestSolveRejectsBadInput(t *testing.T) {
	srv, sent := fakeSolver(t, http.StatusOK, catTigerRat)
	cmd, _ := setupSolve(t, srv, formatText)

	assert.Error(t, solveCmd.Args(solveCmd, []string{"ABC"}))
	assert.NoError(t, solveCmd.Args(solveCmd, nil))

	assert.Error(t, runSolve(cmd, []string{"AB", "DEF", "GHI", "JKL"}))
	assert.Error(t, runSolve(cmd, []string{"A1C", "DEF", "GHI", "JKL"}))

	solveFormat = "yaml"
	assert.Error(t, runSolve(cmd, []string{"ABC", "DEF", "GHI", "JKL"}))
	assert.Nil(t, *sent, "no request for rejected input")
}

func TestConfigInit(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "letterbox", "config.yaml")
	defer func() { configPath = ""; configForce = false }()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runConfigInit(cmd, nil))
	assert.Contains(t, out.String(), configPath)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Solver, loaded.Solver)

	assert.Error(t, runConfigInit(cmd, nil), "existing file is kept")
	configForce = true
	assert.NoError(t, runConfigInit(cmd, nil))
}

func TestRootLoadsConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	c := config.DefaultConfig()
	c.Solver.BaseURL = "http://solver.internal:9000"
	c.Input.OnIncomplete = config.OnIncompletePrompt
	require.NoError(t, c.Save(path))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "show", "--config", path, "--timeout", "5s"})
	defer func() {
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetArgs(nil)
		configPath = ""
		cfg = nil
	}()

	require.NoError(t, rootCmd.Execute())

	var shown config.Config
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "http://solver.internal:9000", shown.Solver.BaseURL)
	assert.Equal(t, "5s", shown.Solver.Timeout)
	assert.Equal(t, config.OnIncompletePrompt, shown.Input.OnIncomplete)
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  on_incomplete: shout\n"), 0644))

	rootCmd.SetArgs([]string{"examples", "--config", path})
	rootCmd.SetErr(io.Discard)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(os.Stderr)
		configPath = ""
	}()

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_incomplete")
}

func TestConfigInitRepairsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input:\n  on_incomplete: shout\n"), 0644))
	t.Setenv("LETTERBOX_TIMEOUT", "bogus")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--force", "--config", path})
	defer func() {
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetArgs(nil)
		configPath = ""
		configForce = false
		cfg = nil
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), path)

	t.Setenv("LETTERBOX_TIMEOUT", "")
	repaired, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, repaired.Validate())
	assert.Equal(t, config.OnIncompleteIgnore, repaired.Input.OnIncomplete)
}

func TestExamples(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runExamples(cmd, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(puzzle.Examples))
	assert.True(t, strings.HasPrefix(lines[0], "Example 1: "), lines[0])
	assert.Contains(t, lines[len(lines)-1], "LEI XYS CUV KOT")
	assert.Contains(t, lines[len(lines)-1], "(default)")
}
