package core

// Color is a terminal color for a screen cell, either foreground or background.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Predefined colors for scene elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorSky
	ColorBrown
	ColorGray
)
