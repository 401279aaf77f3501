// Package ui provides the visual styling for the letterbox terminal board.
// Light/dark palettes with automatic detection.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#faf7f0") // paper
	LightForeground = lipgloss.Color("#1d1d1b")
	LightPrimary    = lipgloss.Color("#d4533b") // box red
	LightAccent     = lipgloss.Color("#f6b3a6")
	LightMuted      = lipgloss.Color("#8a8a85")
	LightBorder     = lipgloss.Color("#1d1d1b")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#17171a")
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#f07a62")
	DarkAccent     = lipgloss.Color("#6b2c21")
	DarkMuted      = lipgloss.Color("#6f6f78")
	DarkBorder     = lipgloss.Color("#d9d9d9")
	DarkCard       = lipgloss.Color("#222228")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme picks a theme from COLORFGBG or LETTERBOX_DARK_MODE,
// defaulting to light.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			// 0-6 and 8 (dark grey) are likely dark backgrounds
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("LETTERBOX_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// ThemeNamed resolves a configured theme name; "auto" and "" detect.
func ThemeNamed(name string) Theme {
	switch name {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Muted  lipgloss.Style
	Footer lipgloss.Style

	// Board
	Cell        lipgloss.Style
	CellFocused lipgloss.Style
	CellEmpty   lipgloss.Style
	Box         lipgloss.Style

	// Submit control
	Submit         lipgloss.Style
	SubmitDisabled lipgloss.Style

	// Results
	Results  lipgloss.Style
	Solution lipgloss.Style
	Score    lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	cell := lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true).
		Padding(0, 1)

	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),

		Cell: cell,

		CellFocused: cell.
			Background(theme.Accent).
			Foreground(theme.Foreground),

		CellEmpty: cell.
			Foreground(theme.Muted).
			Bold(false),

		Box: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Submit: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 2).
			MarginTop(1),

		SubmitDisabled: lipgloss.NewStyle().
			Background(theme.Muted).
			Foreground(theme.Card).
			Padding(0, 2).
			MarginTop(1),

		Results: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			MarginTop(1),

		Solution: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Score: lipgloss.NewStyle().
			Foreground(theme.Muted).
			PaddingLeft(2),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true).
			MarginTop(1),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			MarginTop(1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
