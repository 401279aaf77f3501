// Package board is the terminal Input Collector & Result Renderer: a
// bubbletea model holding the 12-cell grid, the submit control and the
// solution list.
package board

import (
	"context"

	"letterbox/cmd/letterbox/ui"
	"letterbox/internal/collector"
	"letterbox/internal/puzzle"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the board.
type Options struct {
	Solver             collector.Solver
	PromptOnIncomplete bool
	Separator          string
	// Prefill loads puzzle.Default into the grid.
	Prefill bool
	Styles  ui.Styles
}

// solveDoneMsg carries the outcome of a solve started in generation gen.
type solveDoneMsg struct {
	gen uint64
	out collector.Outcome
}

// Model is the bubbletea model of the board.
type Model struct {
	opts Options

	ctx    context.Context
	cancel context.CancelFunc

	grid    *puzzle.Grid
	cells   [puzzle.CellCount]textinput.Model
	spinner spinner.Model
	gate    *collector.Gate

	loading     bool
	gen         uint64
	results     []puzzle.Solution
	showResults bool
	alert       string
	lastPhase   collector.Phase
	example     int

	width int
}

// New builds a board.
func New(ctx context.Context, opts Options) Model {
	if opts.Separator == "" {
		opts.Separator = puzzle.DefaultSeparator
	}
	if opts.Styles.Theme.Foreground == "" {
		opts.Styles = ui.DefaultStyles()
	}
	ctx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = opts.Styles.Spinner

	m := Model{
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		grid:    puzzle.NewGrid(),
		spinner: sp,
		gate:    collector.NewGate(),
	}
	for i := range m.cells {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "·"
		ti.CharLimit = 1
		ti.Width = 1
		ti.TextStyle = opts.Styles.Cell.UnsetPadding()
		ti.PlaceholderStyle = opts.Styles.Muted
		m.cells[i] = ti
	}
	if opts.Prefill {
		m.grid.Fill(puzzle.Default)
	}
	m.syncCells()
	return m
}

// Init focuses the first cell.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Cells returns the grid values in order.
func (m Model) Cells() []string {
	return m.grid.Cells()
}

// Focus returns the focused cell.
func (m Model) Focus() int {
	return m.grid.Focus()
}

// Loading reports whether a solve is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// SubmitLabel returns the current label of the submit control.
func (m Model) SubmitLabel() string {
	if m.loading {
		return collector.BusyLabel
	}
	return collector.SubmitLabel
}

// SubmitEnabled reports whether the submit control accepts activation.
func (m Model) SubmitEnabled() bool {
	return !m.loading
}

// Results returns the rendered solutions; nil while hidden.
func (m Model) Results() []puzzle.Solution {
	if !m.showResults {
		return nil
	}
	return m.results
}

// ResultsVisible reports whether the results container is shown.
func (m Model) ResultsVisible() bool {
	return m.showResults
}

// Alert returns the message currently shown to the user.
func (m Model) Alert() string {
	return m.alert
}

// LastPhase returns the phase the previous solve attempt ended in.
func (m Model) LastPhase() collector.Phase {
	return m.lastPhase
}

// syncCells mirrors the grid into the text inputs and moves the cursor.
func (m *Model) syncCells() {
	focus := m.grid.Focus()
	for i := range m.cells {
		m.cells[i].SetValue(m.grid.Cell(i))
		if i == focus {
			m.cells[i].Focus()
		} else {
			m.cells[i].Blur()
		}
	}
}
