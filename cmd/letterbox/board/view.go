package board

import (
	"fmt"
	"strings"

	"letterbox/internal/collector"
	"letterbox/internal/puzzle"

	"github.com/charmbracelet/lipgloss"
)

const helpLine = "a-z type · enter solve · tab/←/→ move · backspace erase · ctrl+l clear · ctrl+e example · esc quit"

// View renders the board, the submit control, and either the results or
// the alert.
func (m Model) View() string {
	s := m.opts.Styles
	var b strings.Builder

	b.WriteString(s.Title.Render("Letter Boxed"))
	b.WriteString("\n")
	b.WriteString(m.renderBox())
	b.WriteString("\n")
	b.WriteString(m.renderSubmit())
	b.WriteString("\n")

	if m.alert != "" {
		style := s.Error
		if m.lastPhase == collector.Aborted {
			style = s.Warning
		}
		b.WriteString(style.Render(m.alert))
		b.WriteString("\n")
	}
	if m.showResults {
		b.WriteString(m.renderResults())
		b.WriteString("\n")
	}

	width := m.width
	if width <= 0 || width > 72 {
		width = 72
	}
	b.WriteString(s.RenderDivider(width))
	b.WriteString(s.Footer.Render(helpLine))
	return b.String()
}

func (m Model) renderCell(i int) string {
	s := m.opts.Styles
	switch {
	case i == m.grid.Focus():
		return s.CellFocused.Render(m.cells[i].View())
	case m.grid.Cell(i) == "":
		return s.CellEmpty.Render("·")
	default:
		return s.Cell.Render(m.grid.Cell(i))
	}
}

// renderBox lays the cells out as a square: top left to right, right
// side top to bottom, bottom left to right, left side top to bottom.
func (m Model) renderBox() string {
	row := func(start int) string {
		parts := make([]string, 0, puzzle.SideLength)
		for j := 0; j < puzzle.SideLength; j++ {
			parts = append(parts, m.renderCell(start+j))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	col := func(start int) string {
		parts := make([]string, 0, puzzle.SideLength)
		for j := 0; j < puzzle.SideLength; j++ {
			parts = append(parts, m.renderCell(start+j))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	top := row(int(puzzle.Top) * puzzle.SideLength)
	bottom := row(int(puzzle.Bottom) * puzzle.SideLength)
	left := col(int(puzzle.Left) * puzzle.SideLength)
	right := col(int(puzzle.Right) * puzzle.SideLength)

	inner := m.opts.Styles.Box.
		Width(lipgloss.Width(top)).
		Height(puzzle.SideLength).
		Render("")

	middle := lipgloss.JoinHorizontal(lipgloss.Center, left, inner, right)
	pad := strings.Repeat(" ", lipgloss.Width(left))
	return lipgloss.JoinVertical(lipgloss.Left, pad+top, middle, pad+bottom)
}

func (m Model) renderSubmit() string {
	s := m.opts.Styles
	if m.loading {
		return s.SubmitDisabled.Render(m.spinner.View() + " " + m.SubmitLabel())
	}
	return s.Submit.Render(m.SubmitLabel())
}

func (m Model) renderResults() string {
	s := m.opts.Styles
	if len(m.results) == 0 {
		return s.Results.Render(s.Muted.Render("No solutions returned."))
	}
	lines := make([]string, 0, len(m.results))
	for i, sol := range m.results {
		lines = append(lines, fmt.Sprintf("%2d. %s%s",
			i+1,
			s.Solution.Render(sol.Chain(m.opts.Separator)),
			s.Score.Render(sol.ScoreLabel()),
		))
	}
	return s.Results.Render(strings.Join(lines, "\n"))
}
