// Package collector drives the solve round trip for a letter grid: the
// phase machine, the single-flight gate, outcome classification, and an
// event-driven Collector that front ends bind to their widgets.
package collector

import (
	"context"
	"errors"
	"fmt"

	"letterbox/internal/logging"
	"letterbox/internal/puzzle"
	"letterbox/internal/solver"
)

// Phase is a state of the solve operation.
//
//	Idle → Validating → (abort → Idle) | Loading → (Rendered | ErrorShown) → Idle
type Phase int

const (
	Idle Phase = iota
	Validating
	Loading
	Rendered
	ErrorShown
	Aborted
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Loading:
		return "loading"
	case Rendered:
		return "rendered"
	case ErrorShown:
		return "error"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Labels for the submit control.
const (
	SubmitLabel = "Solve Puzzle"
	BusyLabel   = "Solving..."
)

// IncompleteMessage is shown when the prompt policy is active and a cell
// is empty.
const IncompleteMessage = "Please fill in all 12 letters."

// Solver is what the collector needs from the remote service.
type Solver interface {
	Solve(ctx context.Context, p puzzle.Puzzle) ([]puzzle.Solution, error)
}

// Outcome is the classified result of one solve attempt.
type Outcome struct {
	Phase     Phase
	Puzzle    puzzle.Puzzle
	Solutions []puzzle.Solution
	Err       error
}

// Message returns the text to show the user, or "" when there is none.
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	var se *solver.SolveError
	switch {
	case errors.Is(o.Err, puzzle.ErrIncomplete):
		return IncompleteMessage
	case errors.As(o.Err, &se):
		return "Error: " + se.Message
	default:
		return "Error solving puzzle: " + o.Err.Error()
	}
}

// Validate is the Validating step: it derives the puzzle from the cells or
// returns an Aborted outcome. Under the ignore policy the outcome carries
// no error, so nothing is shown.
func Validate(cells []string, prompt bool) (puzzle.Puzzle, *Outcome) {
	p, err := puzzle.FromLetters(cells)
	if err == nil {
		return p, nil
	}
	logging.SolveDebug("solve aborted: %v", err)
	out := &Outcome{Phase: Aborted}
	if prompt || !errors.Is(err, puzzle.ErrIncomplete) {
		out.Err = err
	}
	return p, out
}

// Run is the Loading step: one request for p, classified into Rendered or
// ErrorShown. It never panics on a failing solver.
func Run(ctx context.Context, s Solver, p puzzle.Puzzle) (out Outcome) {
	out = Outcome{Phase: Loading, Puzzle: p}
	defer func() {
		if r := recover(); r != nil {
			logging.SolveError("solver panicked on %s: %v", p, r)
			out = Outcome{Phase: ErrorShown, Puzzle: p, Err: fmt.Errorf("solver panicked: %v", r)}
		}
	}()

	solutions, err := s.Solve(ctx, p)
	if err != nil {
		logging.SolveWarn("solve %s failed: %v", p, err)
		out.Phase = ErrorShown
		out.Err = err
		return out
	}
	logging.Solve("solve %s returned %d solution(s)", p, len(solutions))
	out.Phase = Rendered
	out.Solutions = solutions
	return out
}
