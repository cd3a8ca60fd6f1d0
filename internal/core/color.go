package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to ANSI colors for the terminal.
type Color uint8

// Predefined colors for simulation elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorWhite
	ColorGray
	ColorYellow
)
