package lander

import (
	"fmt"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Visual characters for rendering
const (
	VehicleChar = '▲'
	AboveChar   = '↑' // vehicle is above the top of the screen
	GroundChar  = '▓'
	PadChar     = '▀'
)

// padThickness is the drawn height of the pad markers in world units.
const padThickness = 10.0

// Minimum terminal size that still fits the scene and the HUD.
const (
	minScreenW = 32
	minScreenH = 10
)

var (
	skyCell     = core.Cell{Rune: ' ', Bg: core.ColorSky}
	groundCell  = core.Cell{Rune: GroundChar, Fg: core.ColorBrown, Bg: core.ColorBrown}
	launchCell  = core.Cell{Rune: PadChar, Fg: core.ColorBrightGreen, Bg: core.ColorBrown}
	landingCell = core.Cell{Rune: PadChar, Fg: core.ColorBrightBlue, Bg: core.ColorBrown}
)

// Render draws the scene: background, ground, launch pad, landing pad,
// vehicle and the fuel readout, in that order.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.Clear()
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	w := g.cfg.World
	vp := core.NewViewport(w.PlayWidth, w.ScreenHeight, dst.Width(), dst.Height())

	// Background
	dst.Fill(skyCell)

	// Ground below the pads
	groundTop := w.GroundY + w.GroundHeight
	dst.FillRect(vp.Span(0, groundTop, w.PlayWidth, w.ScreenHeight-groundTop), groundCell)

	// Pads sit on the ground line
	dst.FillRect(vp.Span(w.LaunchX-w.PadWidth/2, w.GroundY, w.PadWidth, padThickness), launchCell)
	dst.FillRect(vp.Span(w.LandingX-w.PadWidth/2, w.GroundY, w.PadWidth, padThickness), landingCell)

	// The glyph's base is the vehicle position, so a landed vehicle rests on the pad
	x, y := vp.Cell(g.vehicle.Position)
	col, row := core.Clamp(x, 0, dst.Width()-1), y-1
	if row >= 0 {
		dst.SetCell(col, row, core.Cell{Rune: VehicleChar, Fg: g.vehicleColor(), Bg: core.ColorSky})
	}

	g.drawHUD(dst)

	// Drawn over the HUD so a vehicle above the screen is never lost
	if row < 0 {
		dst.SetCell(col, 0, core.Cell{Rune: AboveChar, Fg: core.ColorBrightYellow, Bg: core.ColorSky})
	}

	if g.vehicle.Phase.Terminal() {
		g.drawResult(dst)
	}
}

func (g *Game) vehicleColor() core.Color {
	switch g.vehicle.Phase {
	case PhaseLanded:
		return core.ColorBrightGreen
	case PhaseCrashed:
		return core.ColorBrightRed
	default:
		return core.ColorBrightWhite
	}
}

// drawHUD draws the fuel, status and flight readouts in the top-left corner.
func (g *Game) drawHUD(dst *core.Screen) {
	v := g.vehicle
	dst.DrawTextStyled(1, 0, fmt.Sprintf("Fuel: %.2f", v.Fuel), core.ColorBrightWhite, core.ColorSky)

	status := g.Status().String()
	if v.Phase == PhaseAwaitingLaunch {
		status += " | W to launch"
	}
	dst.DrawTextStyled(1, 1, "Status: "+status, core.ColorWhite, core.ColorSky)

	readout := fmt.Sprintf("Alt: %.1f  Vel: %.2f", v.Altitude(g.cfg.World.GroundY), v.VelocityY)
	dst.DrawTextStyled(1, 2, readout, core.ColorWhite, core.ColorSky)
}

// drawResult draws the outcome box in the center of the screen.
func (g *Game) drawResult(dst *core.Screen) {
	title := "LANDED SAFELY"
	subtitle := fmt.Sprintf("Score: %d", g.Score())
	if g.vehicle.Phase == PhaseCrashed {
		title = "CRASHED"
		subtitle = g.cause.String()
	}

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
