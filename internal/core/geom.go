// Package core provides fundamental types and utilities for the lander platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned area of screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec2 is a point in world units. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Viewport maps world units onto a grid of screen cells.
// The world spans [0, WorldW] x [0, WorldH] and is stretched to fill the screen.
type Viewport struct {
	WorldW, WorldH   float64
	ScreenW, ScreenH int
}

// NewViewport creates a viewport for the given world and screen sizes.
func NewViewport(worldW, worldH float64, screenW, screenH int) Viewport {
	return Viewport{WorldW: worldW, WorldH: worldH, ScreenW: screenW, ScreenH: screenH}
}

// Col converts a world x-coordinate to a screen column.
func (v Viewport) Col(x float64) int {
	if v.WorldW <= 0 {
		return 0
	}
	return int(math.Floor(x / v.WorldW * float64(v.ScreenW)))
}

// Row converts a world y-coordinate to a screen row.
func (v Viewport) Row(y float64) int {
	if v.WorldH <= 0 {
		return 0
	}
	return int(math.Floor(y / v.WorldH * float64(v.ScreenH)))
}

// Cell converts a world point to screen coordinates.
func (v Viewport) Cell(p Vec2) (int, int) {
	return v.Col(p.X), v.Row(p.Y)
}

// Span converts a world-space rectangle (top-left x, y and size w, h) to a cell rectangle.
// Non-empty world rectangles always cover at least one cell.
func (v Viewport) Span(x, y, w, h float64) Rect {
	x0, y0 := v.Col(x), v.Row(y)
	x1, y1 := v.Col(x+w), v.Row(y+h)
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
