package scenes

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/session"
)

func (r *Renderer) drawConnecting(screen *ebiten.Image) {
	r.drawText(screen, "BALANCE RUSH", config.WindowWidth/2, 320, 8, colTitle, text.AlignCenter)

	// Animated ellipsis while waiting for the board.
	dots := int(r.machine.Ctx().StateSeconds()*2) % 4
	msg := "CONNECTING TO BALANCE BOARD" + "...."[:dots]
	r.drawText(screen, msg, config.WindowWidth/2, 560, 3, colSubtitle, text.AlignCenter)
	r.drawText(screen, "STEP ON THE BOARD TO BEGIN", config.WindowWidth/2, 640, 2, colSubtitle, text.AlignCenter)
}

func (r *Renderer) drawTransitioning(screen *ebiten.Image) {
	clock := r.machine.Ctx().StateSeconds()
	shake := r.machine.TransitionShake()
	dx := math.Sin(clock*47) * shake
	dy := math.Cos(clock*31) * shake * 0.6
	r.drawText(screen, "BOARD CONNECTED", config.WindowWidth/2+dx, 420+dy, 6, colTitle, text.AlignCenter)
	r.drawText(screen, "GET READY", config.WindowWidth/2-dx, 560-dy, 4, colSubtitle, text.AlignCenter)
}

func (r *Renderer) drawPlayerSelection(screen *ebiten.Image) {
	r.drawZoneMenu(screen, "SELECT PLAYER", [3]string{
		game.Players[0].Name, game.Players[1].Name, game.Players[2].Name,
	})
	r.drawAvatar(screen)
}

func (r *Renderer) drawMainMenu(screen *ebiten.Image) {
	r.drawZoneMenu(screen, "SELECT GAME", [3]string{"BALANCE HOLD", "DODGE", "COIN COLLECTOR"})
	r.drawAvatar(screen)

	ctx := r.machine.Ctx()
	rec := ctx.Record
	line := fmt.Sprintf("%s   WINS %d", ctx.PlayerName(), rec.TotalWins)
	if rec.BestTime != game.NoBestTime {
		line += fmt.Sprintf("   BEST %.1fs", rec.BestTime)
	}
	if rec.DodgeHighScore > 0 {
		line += fmt.Sprintf("   DODGE BEST %d", rec.DodgeHighScore)
	}
	r.drawText(screen, line, config.WindowWidth/2, config.WindowHeight-90, 2, colSubtitle, text.AlignCenter)
}

func (r *Renderer) drawDifficultySelection(screen *ebiten.Image) {
	var title string
	switch r.machine.Ctx().Game {
	case session.GameBalanceHold:
		title = "BALANCE HOLD"
	case session.GameCoinCollector:
		title = "COIN COLLECTOR"
	}
	r.drawZoneMenu(screen, title, [3]string{"EASY", "MEDIUM", "HARD"})
	r.drawAvatar(screen)
}

func (r *Renderer) drawBalanceHold(screen *ebiten.Image) {
	r.drawGrid(screen)

	bh := r.machine.BalanceHoldEngine()
	tgt := bh.Target
	hold := r.cfg.BalanceHold

	vector.DrawFilledCircle(screen, float32(tgt.X), float32(tgt.Y), float32(hold.GraceRadius), colGrace, true)
	pulse := float32(hold.HoldRadius * bh.PulseScale())
	vector.StrokeCircle(screen, float32(tgt.X), float32(tgt.Y), pulse, 4, colTarget, true)
	vector.DrawFilledCircle(screen, float32(tgt.X), float32(tgt.Y), 10, colTarget, true)

	// Hold progress fills the target ring as an arc substitute.
	if p := bh.HoldProgress(); p > 0 {
		inner := colTarget
		inner.A = uint8(40 + p*160)
		vector.DrawFilledCircle(screen, float32(tgt.X), float32(tgt.Y), float32(hold.HoldRadius*p), inner, true)
	}

	r.drawAvatar(screen)
	r.drawHUD(screen, "POINTS")
}

func (r *Renderer) drawCoinCollector(screen *ebiten.Image) {
	r.drawGrid(screen)

	cc := r.machine.CoinEngine()
	radius := float32(r.cfg.CoinCollector.CoinSize / 2)
	for i := range cc.Coins {
		coin := cc.Coins[i]
		if !coin.Active {
			continue
		}
		vector.DrawFilledCircle(screen, float32(coin.X), float32(coin.Y), radius, colCoin, true)
		vector.StrokeCircle(screen, float32(coin.X), float32(coin.Y), radius, 5, colCoinRim, true)
		vector.StrokeCircle(screen, float32(coin.X), float32(coin.Y), radius*0.55, 3, colCoinRim, true)
	}

	r.drawAvatar(screen)
	r.drawHUD(screen, "COINS")

	if left := cc.TimeLeft(); left > 0 {
		clr := colTitle
		if left < 3 {
			clr = colCountdown
		}
		r.drawText(screen, fmt.Sprintf("%.1f", left), config.WindowWidth/2, 40, 5, clr, text.AlignCenter)
	}
}

func (r *Renderer) drawDodge(screen *ebiten.Image) {
	r.drawGrid(screen)

	d := r.machine.DodgeEngine()
	w := float32(r.cfg.Dodge.BlockWidth)
	h := float32(r.cfg.Dodge.BlockHeight)
	for i := range d.Blocks {
		b := d.Blocks[i]
		if !b.Active {
			continue
		}
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), w, h, colBlock, false)
	}

	r.drawAvatar(screen)

	score, _ := d.Score()
	line := fmt.Sprintf("SCORE %d", score)
	if best := r.machine.Ctx().Record.DodgeHighScore; best > 0 {
		line += fmt.Sprintf("   BEST %d", best)
	}
	r.drawText(screen, line, 40, 30, 3, colTitle, text.AlignStart)
	r.drawText(screen, r.machine.Ctx().PlayerName(), config.WindowWidth-40, 30, 2, colSubtitle, text.AlignEnd)
}

// drawHUD draws the score line shared by the two score-to-win modes.
func (r *Renderer) drawHUD(screen *ebiten.Image, noun string) {
	ctx := r.machine.Ctx()
	current, required := r.machine.BalanceHoldEngine().Score()
	if ctx.State == session.CoinCollector {
		current, required = r.machine.CoinEngine().Score()
	}
	r.drawText(screen, fmt.Sprintf("%s %d / %d", noun, current, required), 40, 30, 3, colTitle, text.AlignStart)
	r.drawText(screen, fmt.Sprintf("%.1fs", ctx.RoundSeconds()), 40, 90, 2, colSubtitle, text.AlignStart)
	r.drawText(screen, ctx.PlayerName(), config.WindowWidth-40, 30, 2, colSubtitle, text.AlignEnd)
}

func (r *Renderer) drawWinning(screen *ebiten.Image) {
	ctx := r.machine.Ctx()

	if r.machine.WinVictory() {
		r.drawText(screen, "YOU WIN!", config.WindowWidth/2, 360, 8, colTitle, text.AlignCenter)
		stats := fmt.Sprintf("TIME %.1fs", ctx.RoundSeconds())
		if ctx.Record.BestTime != game.NoBestTime {
			stats += fmt.Sprintf("   BEST %.1fs", ctx.Record.BestTime)
		}
		r.drawText(screen, stats, config.WindowWidth/2, 560, 3, colSubtitle, text.AlignCenter)
		r.drawText(screen, fmt.Sprintf("TOTAL WINS %d", ctx.Record.TotalWins), config.WindowWidth/2, 630, 3, colSubtitle, text.AlignCenter)
	} else {
		r.drawText(screen, "ROUND OVER", config.WindowWidth/2, 360, 8, colTitle, text.AlignCenter)
		score, _ := r.machine.DodgeEngine().Score()
		stats := fmt.Sprintf("SCORE %d   BEST %d", score, ctx.Record.DodgeHighScore)
		r.drawText(screen, stats, config.WindowWidth/2, 560, 3, colSubtitle, text.AlignCenter)
	}

	r.drawConfetti(screen)
}
