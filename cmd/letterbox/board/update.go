package board

import (
	"context"

	"letterbox/internal/collector"
	"letterbox/internal/logging"
	"letterbox/internal/puzzle"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles key presses, spinner ticks and solve results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case solveDoneMsg:
		return m.finish(msg), nil
	}

	// Cursor blink and friends go to the focused cell
	var cmd tea.Cmd
	f := m.grid.Focus()
	m.cells[f], cmd = m.cells[f].Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancel()
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyCtrlL:
		m.clear()
		return m, nil

	case tea.KeyCtrlE:
		m.grid.Fill(puzzle.Example(m.example))
		m.example++
		m.alert = ""
		m.syncCells()
		return m, nil

	case tea.KeyTab, tea.KeyRight, tea.KeyDown:
		m.grid.Next()
		m.syncCells()
		return m, nil

	case tea.KeyShiftTab, tea.KeyLeft, tea.KeyUp:
		m.grid.Prev()
		m.syncCells()
		return m, nil

	case tea.KeyBackspace, tea.KeyDelete:
		m.grid.Erase()
		m.syncCells()
		return m, nil

	case tea.KeyRunes:
		if msg.Paste {
			return m.paste(msg.Runes), nil
		}
		if len(msg.Runes) == 1 && m.grid.Type(string(msg.Runes)) {
			m.alert = ""
			m.syncCells()
			return m, nil
		}
		f := m.grid.Focus()
		logging.InputDebug("cell %d (%s side): rejected key %q", f, puzzle.SideOf(f), msg.String())
		return m, nil
	}

	return m, nil
}

// paste keeps the last pasted character, the way a one-letter cell ends up
// holding it, and advances when that is a letter.
func (m Model) paste(runes []rune) Model {
	f := m.grid.Focus()
	if len(runes) == 0 || !m.grid.Set(f, string(runes[len(runes)-1])) {
		logging.InputDebug("cell %d (%s side): rejected paste %q", f, puzzle.SideOf(f), string(runes))
		return m
	}
	m.grid.Next()
	m.alert = ""
	m.syncCells()
	return m
}

// submit is the Validating step followed, when the grid is complete, by
// the switch to Loading and the request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading || !m.gate.TryEnter() {
		logging.SolveDebug("submit ignored: solve already pending")
		return m, nil
	}

	p, aborted := collector.Validate(m.grid.Cells(), m.opts.PromptOnIncomplete)
	if aborted != nil {
		m.gate.Leave()
		m.lastPhase = aborted.Phase
		m.alert = aborted.Message()
		return m, nil
	}

	m.loading = true
	m.results = nil
	m.showResults = false
	m.alert = ""

	return m, tea.Batch(m.spinner.Tick, solveCmd(m.ctx, m.opts.Solver, p, m.gen))
}

func solveCmd(ctx context.Context, s collector.Solver, p puzzle.Puzzle, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return solveDoneMsg{gen: gen, out: collector.Run(ctx, s, p)}
	}
}

// finish restores the submit control and renders the outcome unless the
// board was cleared while the request was out.
func (m Model) finish(msg solveDoneMsg) Model {
	m.loading = false
	m.gate.Leave()
	m.lastPhase = msg.out.Phase

	if msg.gen != m.gen {
		logging.RenderDebug("discarding outcome for %s: cleared while loading", msg.out.Puzzle)
		return m
	}

	switch msg.out.Phase {
	case collector.Rendered:
		m.results = msg.out.Solutions
		m.showResults = true
		logging.Render("rendered %d solution(s)", len(m.results))
	case collector.ErrorShown:
		m.alert = msg.out.Message()
	}
	return m
}

func (m *Model) clear() {
	m.gen++
	m.grid.Clear()
	m.results = nil
	m.showResults = false
	m.alert = ""
	m.syncCells()
	logging.Input("grid cleared")
}
