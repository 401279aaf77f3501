package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"letterbox/internal/logging"
	"letterbox/internal/puzzle"
	"letterbox/internal/solver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{puzzle.ErrIncomplete, IncompleteMessage},
		{&solver.SolveError{Message: "No solution found"}, "Error: No solution found"},
		{fmt.Errorf("wrapped: %w", &solver.SolveError{Message: "bad puzzle"}), "Error: bad puzzle"},
		{&solver.TransportError{Err: errors.New("dial tcp: refused")}, "Error solving puzzle: dial tcp: refused"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome{Err: tt.err}.Message())
	}
}

func TestValidate(t *testing.T) {
	full := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	p, out := Validate(full, false)
	require.Nil(t, out)
	assert.Equal(t, puzzle.Puzzle{"ABC", "DEF", "GHI", "JKL"}, p)

	holed := append([]string(nil), full...)
	holed[11] = ""

	_, out = Validate(holed, false)
	require.NotNil(t, out)
	assert.Equal(t, Aborted, out.Phase)
	assert.NoError(t, out.Err, "ignore policy aborts silently")

	_, out = Validate(holed, true)
	require.NotNil(t, out)
	assert.ErrorIs(t, out.Err, puzzle.ErrIncomplete)

	bad := append([]string(nil), full...)
	bad[2] = "3"
	_, out = Validate(bad, false)
	require.NotNil(t, out)
	assert.Error(t, out.Err, "a non-letter cell is always reported")
}

func TestRun(t *testing.T) {
	p := puzzle.Default
	out := Run(context.Background(), &fakeSolver{solutions: []puzzle.Solution{{Words: []string{"X"}, Score: 1}}}, p)
	assert.Equal(t, Rendered, out.Phase)
	assert.Equal(t, p, out.Puzzle)
	assert.Len(t, out.Solutions, 1)

	out = Run(context.Background(), &fakeSolver{err: &solver.SolveError{Message: "nope"}}, p)
	assert.Equal(t, ErrorShown, out.Phase)
	assert.Empty(t, out.Solutions)
}

func TestRunLogsPanic(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.UseLogger(zap.New(core))
	defer logging.CloseAll()

	out := Run(context.Background(), &fakeSolver{panicMsg: "kaboom"}, puzzle.Default)
	assert.Equal(t, ErrorShown, out.Phase)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "solve", errs[0].LoggerName)
	assert.Contains(t, errs[0].Message, "kaboom")
}

func TestGate(t *testing.T) {
	g := NewGate()
	assert.False(t, g.Busy())
	require.True(t, g.TryEnter())
	assert.True(t, g.Busy())
	assert.False(t, g.TryEnter())
	g.Leave()
	assert.False(t, g.Busy())
	assert.True(t, g.TryEnter())
	g.Leave()
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "phase(42)", Phase(42).String())
}
