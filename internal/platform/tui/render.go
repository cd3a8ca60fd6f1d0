package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumping-task/internal/core"
	"github.com/vovakirdan/jumping-task/internal/env"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// DrawWorld renders the episode state into a screen buffer. Terminal
// cells are roughly twice as tall as wide, so two world rows collapse
// into one screen row; the world outline occupies the top-left corner of
// the buffer, leaving the rows below for the HUD.
func DrawWorld(s env.State, screen *core.Screen) {
	worldRows := displayRows(s.ScreenH)

	// row maps a world y to a screen row (world y grows upward).
	row := func(wy int) int {
		return (s.ScreenH - 1 - wy) / 2
	}

	// fill paints a world rectangle as a screen rectangle spanning the
	// compressed rows.
	fill := func(r core.Rect, ch rune, color core.Color) {
		top := row(int(r.Top()) - 1)
		h := row(int(r.Y)) - top + 1
		screen.FillRect(int(r.X), top, int(r.W), h, ch, color)
	}

	// Floor line across the world width.
	floorCell := core.Cell{Rune: '─', Color: core.ColorGray}
	for wx := 0; wx < s.ScreenW; wx++ {
		screen.SetCell(wx, row(int(s.FloorHeight)), floorCell)
	}

	obstacleColor := core.ColorRed
	if s.ObstacleColor == env.ObstacleGreen {
		obstacleColor = core.ColorGreen
	}
	for _, obstacle := range s.ObstacleRects() {
		fill(obstacle, '█', obstacleColor)
	}

	fill(s.AgentRect(), '█', core.ColorWhite)

	// World outline
	screen.DrawHLine(0, 0, s.ScreenW, '─')
	screen.DrawHLine(0, worldRows-1, s.ScreenW, '─')
	screen.DrawVLine(0, 0, worldRows, '│')
	screen.DrawVLine(s.ScreenW-1, 0, worldRows, '│')
}

// displayRows returns the number of screen rows the world occupies.
func displayRows(worldHeight int) int {
	return (worldHeight + 1) / 2
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
