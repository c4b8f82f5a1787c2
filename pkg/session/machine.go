package session

import (
	"log"
	"math/rand"

	"github.com/decker502/balancerush/internal/particle"
	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/modes"
	"github.com/decker502/balancerush/pkg/physics"
)

// Machine is the session state machine. It owns the SessionContext, the
// shared avatar mover, the three mode engines, and the win confetti; one
// Tick advances exactly one frame.
type Machine struct {
	cfg      *config.Config
	store    RecordStore
	mover    *physics.Mover
	selector *Selector
	confetti *particle.Emitter

	balanceHold *modes.BalanceHold
	coin        *modes.CoinCollector
	dodge       *modes.Dodge

	ctx Context

	// winVictory records whether the Winning state celebrates a victory or
	// just closes a lost dodge round.
	winVictory bool
}

// NewMachine wires a machine from its tuning, its persistence read side, and
// a seedable RNG shared by the mode engines.
func NewMachine(cfg *config.Config, store RecordStore, rng *rand.Rand) *Machine {
	m := &Machine{
		cfg:         cfg,
		store:       store,
		mover:       physics.NewMover(cfg.Motion),
		selector:    NewSelector(cfg.Selection, cfg.Board.MinTotalWeight),
		confetti:    particle.NewEmitter(cfg.Confetti),
		balanceHold: modes.NewBalanceHold(cfg, rng),
		coin:        modes.NewCoinCollector(cfg, rng),
		dodge:       modes.NewDodge(cfg, rng),
	}
	m.ctx = Context{State: Connecting, Player: -1, Record: game.PlayerRecord{BestTime: game.NoBestTime}}
	m.mover.Reset(&m.ctx.Avatar)
	return m
}

// Ctx exposes the session context for presentation. Callers must not mutate
// it.
func (m *Machine) Ctx() *Context {
	return &m.ctx
}

// Selector exposes the menu selector for presentation (highlight, blink).
func (m *Machine) Selector() *Selector {
	return m.selector
}

// Confetti exposes the celebration emitter for presentation.
func (m *Machine) Confetti() *particle.Emitter {
	return m.confetti
}

// Mover exposes the avatar mover; presentation reads its trail.
func (m *Machine) Mover() *physics.Mover {
	return m.mover
}

// BalanceHoldEngine, CoinEngine, and DodgeEngine expose mode internals for
// the renderer's HUD and entity drawing.
func (m *Machine) BalanceHoldEngine() *modes.BalanceHold { return m.balanceHold }
func (m *Machine) CoinEngine() *modes.CoinCollector      { return m.coin }
func (m *Machine) DodgeEngine() *modes.Dodge             { return m.dodge }

// WinVictory reports whether the Winning screen shows a victory.
func (m *Machine) WinVictory() bool {
	return m.winVictory
}

// TransitionShake is the screen-shake amplitude while Transitioning, ramping
// up to the midpoint and back down.
func (m *Machine) TransitionShake() float64 {
	if m.ctx.State != Transitioning || m.cfg.Session.TransitionSeconds <= 0 {
		return 0
	}
	p := m.ctx.stateClock / m.cfg.Session.TransitionSeconds
	if p < 0.5 {
		return p * 2 * 20
	}
	return (1 - p) * 2 * 20
}

// Tick advances the session one frame and returns the side effects to
// dispatch. Sensor disconnects and prolonged inactivity override whatever
// state is active and force a full reset to Connecting.
func (m *Machine) Tick(in Input) []Effect {
	m.ctx.stateClock += in.DT

	if m.ctx.State != Connecting && in.Disconnected {
		log.Printf("[Session] device lost in %s, resetting", m.ctx.State)
		return m.resetToConnecting()
	}
	if effects, reset := m.trackInactivity(in); reset {
		return effects
	}

	switch m.ctx.State {
	case Connecting:
		return m.handleConnecting(in)
	case Transitioning:
		return m.handleTransitioning(in)
	case PlayerSelection:
		return m.handlePlayerSelection(in)
	case MainMenu:
		return m.handleMainMenu(in)
	case DifficultySelection:
		return m.handleDifficultySelection(in)
	case BalanceHold, CoinCollector, Dodge:
		return m.handleMode(in)
	case Winning:
		return m.handleWinning(in)
	}
	return nil
}

// trackInactivity accumulates time without meaningful weight and resets the
// session when it exceeds the timeout. Connecting and Transitioning are
// exempt: nobody is expected on the board yet.
func (m *Machine) trackInactivity(in Input) ([]Effect, bool) {
	if m.ctx.State == Connecting || m.ctx.State == Transitioning {
		return nil, false
	}
	if in.Sample.TotalWeight >= m.cfg.Board.MinTotalWeight {
		m.ctx.inactivity = 0
		return nil, false
	}
	m.ctx.inactivity += in.DT
	if m.ctx.inactivity < m.cfg.Session.InactivitySeconds {
		return nil, false
	}
	log.Printf("[Session] inactivity timeout in %s, resetting", m.ctx.State)
	return m.resetToConnecting(), true
}

// resetToConnecting discards the whole session: selections, scores, clocks,
// avatar. In-progress rounds are not saved.
func (m *Machine) resetToConnecting() []Effect {
	m.ctx = Context{State: Connecting, Player: -1, Record: game.PlayerRecord{BestTime: game.NoBestTime}}
	m.mover.Reset(&m.ctx.Avatar)
	m.selector.Reset()
	m.winVictory = false
	return []Effect{{Kind: EffectStopMusic}, musicEffect(game.MusicConnection)}
}

func (m *Machine) switchTo(next State) {
	log.Printf("[Session] %s -> %s", m.ctx.State, next)
	m.ctx.State = next
	m.ctx.stateClock = 0
}

func (m *Machine) handleConnecting(in Input) []Effect {
	if !in.DeviceReady {
		return nil
	}
	m.switchTo(Transitioning)
	return []Effect{{Kind: EffectStopMusic}, musicEffect(game.MusicTransition)}
}

func (m *Machine) handleTransitioning(in Input) []Effect {
	if m.ctx.stateClock < m.cfg.Session.TransitionSeconds {
		return nil
	}
	m.switchTo(PlayerSelection)
	m.selector.Reset()
	m.mover.Reset(&m.ctx.Avatar)
	return []Effect{{Kind: EffectStopMusic}, musicEffect(game.MusicMainLoop)}
}

func (m *Machine) handlePlayerSelection(in Input) []Effect {
	choice, committed := m.selector.Update(in.Sample, in.DT)
	if !committed {
		return nil
	}
	m.ctx.Player = choice - 1
	m.ctx.Record = m.store.Record(m.ctx.PlayerName())
	log.Printf("[Session] player %q selected (wins=%d)", m.ctx.PlayerName(), m.ctx.Record.TotalWins)
	m.switchTo(MainMenu)
	m.selector.Reset()
	return []Effect{cueEffect(game.CueSelect)}
}

func (m *Machine) handleMainMenu(in Input) []Effect {
	choice, committed := m.selector.Update(in.Sample, in.DT)
	if !committed {
		return nil
	}
	effects := []Effect{cueEffect(game.CueSelect)}
	switch choice {
	case ChoiceLeft:
		m.ctx.Game = GameBalanceHold
		m.switchTo(DifficultySelection)
	case ChoiceRight:
		m.ctx.Game = GameCoinCollector
		m.switchTo(DifficultySelection)
	case ChoiceCenter:
		// Dodge has no difficulty tiers and starts immediately.
		m.ctx.Game = GameDodge
		m.startMode()
	}
	m.selector.Reset()
	return effects
}

func (m *Machine) handleDifficultySelection(in Input) []Effect {
	choice, committed := m.selector.Update(in.Sample, in.DT)
	if !committed {
		return nil
	}
	switch choice {
	case ChoiceLeft:
		m.ctx.Difficulty = modes.Easy
	case ChoiceCenter:
		m.ctx.Difficulty = modes.Medium
	case ChoiceRight:
		m.ctx.Difficulty = modes.Hard
	}
	m.selector.Reset()
	m.startMode()
	return []Effect{cueEffect(game.CueSelect)}
}

// startMode initializes the chosen engine and enters its state.
func (m *Machine) startMode() {
	m.ctx.sessionClock = 0
	switch m.ctx.Game {
	case GameBalanceHold:
		m.balanceHold.Init(&m.ctx.Avatar, m.mover, m.ctx.Difficulty)
		m.switchTo(BalanceHold)
	case GameCoinCollector:
		m.coin.Init(&m.ctx.Avatar, m.mover, m.ctx.Difficulty)
		m.switchTo(CoinCollector)
	case GameDodge:
		m.dodge.Init(&m.ctx.Avatar, m.mover, modes.Easy)
		m.switchTo(Dodge)
	}
}

func (m *Machine) currentEngine() modes.Engine {
	switch m.ctx.State {
	case BalanceHold:
		return m.balanceHold
	case CoinCollector:
		return m.coin
	case Dodge:
		return m.dodge
	}
	return nil
}

func (m *Machine) handleMode(in Input) []Effect {
	m.ctx.sessionClock += in.DT
	engine := m.currentEngine()
	outcome, cues := engine.Update(&m.ctx.Avatar, m.mover, modes.Frame{Sample: in.Sample, DT: in.DT})

	var effects []Effect
	for _, cue := range cues {
		effects = append(effects, cueEffect(cue))
	}

	// Dodge persists high-score improvements the moment they happen, not at
	// round end: a collision must not lose an already-earned record.
	if m.ctx.State == Dodge {
		if score, _ := m.dodge.Score(); score > m.ctx.Record.DodgeHighScore {
			m.ctx.Record.DodgeHighScore = score
			effects = append(effects, Effect{
				Kind:   EffectSaveDodgeScore,
				Player: m.ctx.PlayerName(),
				Score:  score,
			})
		}
	}

	switch outcome {
	case modes.OutcomeWin:
		effects = append(effects, m.enterWinning(true)...)
	case modes.OutcomeLoss:
		effects = append(effects, m.enterWinning(false)...)
	case modes.OutcomeTimeout:
		// Countdown expiry abandons the round: back to the menu with the
		// player selection kept and the score discarded.
		log.Printf("[Session] %s timed out, returning to menu", m.ctx.State)
		m.switchTo(MainMenu)
		m.selector.Reset()
	}
	return effects
}

// enterWinning closes the round. A victory updates the persisted records and
// launches confetti; a lost dodge round just shows the round-over screen.
func (m *Machine) enterWinning(victory bool) []Effect {
	m.winVictory = victory
	m.switchTo(Winning)

	if !victory {
		return nil
	}

	effects := []Effect{cueEffect(game.CueWin)}
	elapsed := m.ctx.sessionClock
	player := m.ctx.PlayerName()

	if m.ctx.Record.BestTime == game.NoBestTime || elapsed < m.ctx.Record.BestTime {
		m.ctx.Record.BestTime = elapsed
		effects = append(effects, Effect{Kind: EffectSaveBestTime, Player: player, Time: elapsed})
	}
	m.ctx.Record.TotalWins++
	effects = append(effects, Effect{Kind: EffectSaveWin, Player: player})

	m.confetti.Burst(m.ctx.Avatar.X, m.ctx.Avatar.Y)
	return effects
}

func (m *Machine) handleWinning(in Input) []Effect {
	m.confetti.Update(in.DT)
	if m.ctx.stateClock < m.cfg.Session.WinAnimationSeconds {
		return nil
	}

	// Back to player selection with a fresh avatar; menu choices are
	// re-made from scratch.
	m.ctx.Player = -1
	m.ctx.Game = GameNone
	m.ctx.Record = game.PlayerRecord{BestTime: game.NoBestTime}
	m.ctx.sessionClock = 0
	m.winVictory = false
	m.mover.Reset(&m.ctx.Avatar)
	m.selector.Reset()
	m.switchTo(PlayerSelection)
	return []Effect{musicEffect(game.MusicMainLoop)}
}
