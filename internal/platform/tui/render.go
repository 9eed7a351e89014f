package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Theme holds the styles for one color scheme.
type Theme struct {
	Name   string
	Dark   bool
	colors map[core.Color]lipgloss.Style

	Title    lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DarkTheme is the scheme for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",
		Dark: true,
		colors: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorRed:           fg("1"),
			core.ColorGreen:         fg("2"),
			core.ColorYellow:        fg("3"),
			core.ColorBlue:          fg("4"),
			core.ColorMagenta:       fg("5"),
			core.ColorCyan:          fg("6"),
			core.ColorWhite:         fg("7"),
			core.ColorBrightRed:     fg("9"),
			core.ColorBrightGreen:   fg("10"),
			core.ColorBrightYellow:  fg("11"),
			core.ColorBrightBlue:    fg("12"),
			core.ColorBrightMagenta: fg("13"),
			core.ColorBrightCyan:    fg("14"),
			core.ColorBrightWhite:   fg("15"),
			core.ColorOrange:        fg("208"),
			core.ColorGray:          fg("245"),
		},
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Accent:   fg("86"),
		Muted:    fg("241"),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Tab:      fg("245").Padding(0, 1),
		TabOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("86")).Padding(0, 1),
		Status:   fg("241"),
		Error:    fg("196"),
	}
}

// LightTheme is the scheme for light terminals. Whites become dark grays
// and the bright colors are swapped for their deeper variants.
func LightTheme() Theme {
	return Theme{
		Name: "light",
		colors: map[core.Color]lipgloss.Style{
			core.ColorDefault:       fg("235"),
			core.ColorRed:           fg("124"),
			core.ColorGreen:         fg("28"),
			core.ColorYellow:        fg("136"),
			core.ColorBlue:          fg("19"),
			core.ColorMagenta:       fg("90"),
			core.ColorCyan:          fg("30"),
			core.ColorWhite:         fg("240"),
			core.ColorBrightRed:     fg("160"),
			core.ColorBrightGreen:   fg("34"),
			core.ColorBrightYellow:  fg("172"),
			core.ColorBrightBlue:    fg("26"),
			core.ColorBrightMagenta: fg("127"),
			core.ColorBrightCyan:    fg("31"),
			core.ColorBrightWhite:   fg("232"),
			core.ColorOrange:        fg("166"),
			core.ColorGray:          fg("244"),
		},
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("125")),
		Accent:   fg("30"),
		Muted:    fg("245"),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("61")),
		Tab:      fg("243").Padding(0, 1),
		TabOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("30")).Padding(0, 1),
		Status:   fg("245"),
		Error:    fg("160"),
	}
}

// ThemeFor picks the dark or light theme.
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme()
	}
	return LightTheme()
}

// style returns the style for a cell color, falling back to the default.
func (t Theme) style(c core.Color) lipgloss.Style {
	if s, ok := t.colors[c]; ok {
		return s
	}
	return t.colors[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(theme.style(color).Render(run.String()))
		}
	}
	return sb.String()
}
