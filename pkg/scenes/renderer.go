// Package scenes draws every screen of the game from a session snapshot. It
// reads the state machine and never mutates it.
package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/balancerush/internal/particle"
	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/physics"
	"github.com/decker502/balancerush/pkg/session"
)

var (
	colTitle     = color.RGBA{240, 240, 255, 255}
	colSubtitle  = color.RGBA{170, 180, 200, 255}
	colAvatar    = color.RGBA{80, 200, 255, 255}
	colTrail     = color.RGBA{80, 200, 255, 90}
	colZone      = color.RGBA{40, 50, 80, 200}
	colZoneHot   = color.RGBA{70, 110, 180, 230}
	colProgress  = color.RGBA{120, 220, 130, 255}
	colGrid      = color.RGBA{255, 255, 255, 14}
	colTarget    = color.RGBA{255, 170, 60, 255}
	colGrace     = color.RGBA{255, 170, 60, 60}
	colCoin      = color.RGBA{255, 210, 60, 255}
	colCoinRim   = color.RGBA{200, 150, 20, 255}
	colBlock     = color.RGBA{230, 70, 70, 255}
	colCountdown = color.RGBA{255, 90, 90, 255}
)

// Per-state gradient backgrounds, top and bottom colors.
var backgrounds = map[session.State][2]color.RGBA{
	session.Connecting:          {{15, 15, 35, 255}, {5, 5, 15, 255}},
	session.Transitioning:       {{35, 25, 55, 255}, {10, 8, 20, 255}},
	session.PlayerSelection:     {{20, 30, 55, 255}, {8, 10, 22, 255}},
	session.MainMenu:            {{20, 30, 55, 255}, {8, 10, 22, 255}},
	session.DifficultySelection: {{20, 30, 55, 255}, {8, 10, 22, 255}},
	session.BalanceHold:         {{18, 40, 38, 255}, {6, 14, 12, 255}},
	session.CoinCollector:       {{40, 36, 18, 255}, {14, 12, 6, 255}},
	session.Dodge:               {{45, 20, 25, 255}, {14, 6, 8, 255}},
	session.Winning:             {{40, 30, 60, 255}, {12, 8, 20, 255}},
}

// Renderer draws the whole game. Scratch buffers are reused across frames.
type Renderer struct {
	machine *session.Machine
	cfg     *config.Config
	face    text.Face

	trailBuf    []physics.Point
	confettiBuf []particle.Particle
}

// NewRenderer creates a renderer over the given machine.
func NewRenderer(cfg *config.Config, m *session.Machine) *Renderer {
	return &Renderer{
		machine:     m,
		cfg:         cfg,
		face:        text.NewGoXFace(basicfont.Face7x13),
		trailBuf:    make([]physics.Point, 0, config.TrailLength),
		confettiBuf: make([]particle.Particle, 0, cfg.Confetti.Count),
	}
}

// Draw renders the current session state.
func (r *Renderer) Draw(screen *ebiten.Image) {
	r.drawBackground(screen)

	switch r.machine.Ctx().State {
	case session.Connecting:
		r.drawConnecting(screen)
	case session.Transitioning:
		r.drawTransitioning(screen)
	case session.PlayerSelection:
		r.drawPlayerSelection(screen)
	case session.MainMenu:
		r.drawMainMenu(screen)
	case session.DifficultySelection:
		r.drawDifficultySelection(screen)
	case session.BalanceHold:
		r.drawBalanceHold(screen)
	case session.CoinCollector:
		r.drawCoinCollector(screen)
	case session.Dodge:
		r.drawDodge(screen)
	case session.Winning:
		r.drawWinning(screen)
	}
}

func (r *Renderer) drawBackground(screen *ebiten.Image) {
	bg, ok := backgrounds[r.machine.Ctx().State]
	if !ok {
		screen.Fill(color.Black)
		return
	}
	const bandH = 24
	bands := config.WindowHeight / bandH
	for i := 0; i < bands; i++ {
		t := float64(i) / float64(bands-1)
		vector.DrawFilledRect(screen, 0, float32(i*bandH), config.WindowWidth, bandH,
			lerpRGBA(bg[0], bg[1], t), false)
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}

// drawText draws str at (x, y) with the bitmap face scaled up. Alignment
// applies horizontally; y is the top of the line.
func (r *Renderer) drawText(screen *ebiten.Image, str string, x, y, scale float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, str, r.face, op)
}

// drawGrid draws the faint playfield grid used by the game modes.
func (r *Renderer) drawGrid(screen *ebiten.Image) {
	const cell = 120
	for x := cell; x < config.WindowWidth; x += cell {
		vector.StrokeLine(screen, float32(x), 0, float32(x), config.WindowHeight, 1, colGrid, false)
	}
	for y := cell; y < config.WindowHeight; y += cell {
		vector.StrokeLine(screen, 0, float32(y), config.WindowWidth, float32(y), 1, colGrid, false)
	}
}

// drawAvatar draws the motion trail and the avatar's square footprint.
func (r *Renderer) drawAvatar(screen *ebiten.Image) {
	const half = config.AvatarSize / 2

	r.trailBuf = r.machine.Mover().Trail().Points(r.trailBuf[:0])
	// Newest first: older points are drawn smaller and dimmer.
	for i := len(r.trailBuf) - 1; i > 0; i-- {
		p := r.trailBuf[i]
		fade := 1 - float64(i)/float64(len(r.trailBuf))
		radius := float32(6 + fade*14)
		clr := colTrail
		clr.A = uint8(float64(clr.A) * fade)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), radius, clr, false)
	}

	a := r.machine.Ctx().Avatar
	vector.DrawFilledRect(screen, float32(a.X-half), float32(a.Y-half),
		config.AvatarSize, config.AvatarSize, colAvatar, false)
	vector.StrokeRect(screen, float32(a.X-half), float32(a.Y-half),
		config.AvatarSize, config.AvatarSize, 3, color.White, false)
}

// drawZoneMenu draws a three-slot lean menu: title, one labeled box per zone,
// the current highlight, and the hold-progress bar inside the highlighted box.
func (r *Renderer) drawZoneMenu(screen *ebiten.Image, title string, labels [3]string) {
	r.drawText(screen, title, config.WindowWidth/2, 120, 6, colTitle, text.AlignCenter)
	r.drawText(screen, "LEAN TO CHOOSE, HOLD TO CONFIRM", config.WindowWidth/2, 230, 2, colSubtitle, text.AlignCenter)

	sel := r.machine.Selector()
	const boxW, boxH = 460, 320
	boxY := float32(config.WindowHeight/2 - boxH/2)
	for i, label := range labels {
		cx := float64(i+1) * config.WindowWidth / 4
		boxX := float32(cx - boxW/2)
		zone := i + 1 // session.ChoiceLeft..ChoiceRight

		clr := colZone
		labelClr := color.Color(colTitle)
		if sel.Choice() == zone {
			clr = colZoneHot
			// Held labels blink until the hold commits.
			if sel.Progress() > 0 && int(sel.Progress()*8)%2 == 1 {
				labelClr = colSubtitle
			}
		}
		vector.DrawFilledRect(screen, boxX, boxY, boxW, boxH, clr, false)
		vector.StrokeRect(screen, boxX, boxY, boxW, boxH, 3, colSubtitle, false)
		r.drawText(screen, label, cx, float64(boxY)+boxH/2-26, 4, labelClr, text.AlignCenter)

		if sel.Choice() == zone && sel.Progress() > 0 {
			barW := float32(sel.Progress()) * (boxW - 40)
			vector.DrawFilledRect(screen, boxX+20, boxY+boxH-50, barW, 26, colProgress, false)
			vector.StrokeRect(screen, boxX+20, boxY+boxH-50, boxW-40, 26, 2, colSubtitle, false)
		}
	}
}

// drawConfetti draws the live celebration particles.
func (r *Renderer) drawConfetti(screen *ebiten.Image) {
	r.confettiBuf = r.machine.Confetti().Live(r.confettiBuf[:0])
	for _, p := range r.confettiBuf {
		vector.DrawFilledRect(screen, float32(p.X-4), float32(p.Y-4), 8, 8, p.Color, false)
	}
}
