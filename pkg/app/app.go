// Package app wraps the whole game behind the ebiten.Game interface: it wires
// the board reader, the session machine, audio, persistence, and rendering,
// and pumps them once per frame.
package app

import (
	"errors"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/balancerush/pkg/board"
	"github.com/decker502/balancerush/pkg/config"
	"github.com/decker502/balancerush/pkg/game"
	"github.com/decker502/balancerush/pkg/scenes"
	"github.com/decker502/balancerush/pkg/session"
)

const audioSampleRate = 48000

// Config is the application startup configuration.
type Config struct {
	// Verbose enables log output; without it logs are discarded.
	Verbose bool
	// ConfigPath points at an optional YAML tuning overlay.
	ConfigPath string
}

// App implements ebiten.Game over the session machine.
type App struct {
	cfg      *config.Config
	device   board.Device
	reader   *board.Reader
	machine  *session.Machine
	renderer *scenes.Renderer
	audio    *game.AudioManager
	saves    *game.SaveManager

	deviceReady bool
	lastFrame   time.Time
}

// NewApp creates and wires the game.
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	audioManager := game.NewAudioManager(audio.NewContext(audioSampleRate))
	registerAudio(audioManager)

	var saves *game.SaveManager
	if m, err := gdata.Open(gdata.Config{AppName: "balancerush"}); err != nil {
		log.Printf("[App] save storage unavailable, records will not persist: %v", err)
		saves = game.NewSaveManager(nil)
	} else {
		saves = game.NewSaveManager(m)
	}

	// Hardware backends satisfy board.Device; the keyboard simulator is the
	// only one compiled in.
	device := board.NewSimulatedDevice()

	machine := session.NewMachine(gameCfg, saves, rand.New(rand.NewSource(time.Now().UnixNano())))

	app := &App{
		cfg:      gameCfg,
		device:   device,
		reader:   board.NewReader(device, gameCfg.Board),
		machine:  machine,
		renderer: scenes.NewRenderer(gameCfg, machine),
		audio:    audioManager,
		saves:    saves,
	}
	log.Printf("[App] initialized")
	return app, nil
}

// registerAudio fills the audio manager with synthesized cues and music so
// the game needs no sound assets on disk.
func registerAudio(am *game.AudioManager) {
	am.RegisterSound(game.CueSelect, game.Tone(audioSampleRate, 880, 120*time.Millisecond, 0.5))
	am.RegisterSound(game.CueCoin, game.Tone(audioSampleRate, 1320, 100*time.Millisecond, 0.5))
	am.RegisterSound(game.CueTargetHit, game.Tone(audioSampleRate, 988, 150*time.Millisecond, 0.5))
	am.RegisterSound(game.CueReset, game.Tone(audioSampleRate, 220, 200*time.Millisecond, 0.4))
	am.RegisterSound(game.CueWin, game.Tone(audioSampleRate, 1046, 600*time.Millisecond, 0.5))
	am.RegisterSound(game.CueCollision, game.Tone(audioSampleRate, 150, 300*time.Millisecond, 0.6))

	am.RegisterMusic(game.MusicConnection, game.Tone(audioSampleRate, 220, 2*time.Second, 0.12))
	am.RegisterMusic(game.MusicTransition, game.Tone(audioSampleRate, 440, time.Second, 0.12))
	am.RegisterMusic(game.MusicMainLoop, game.Tone(audioSampleRate, 330, 4*time.Second, 0.1))
}

// Update advances the game one tick.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		log.Printf("[App] quit requested")
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	// Wall-clock frame time, capped so a stalled window cannot produce one
	// giant physics step.
	now := time.Now()
	dt := 1.0 / 60
	if !a.lastFrame.IsZero() {
		dt = now.Sub(a.lastFrame).Seconds()
		if dt > 0.1 {
			dt = 0.1
		}
	}
	a.lastFrame = now

	if !a.deviceReady {
		if err := a.device.Open(); err != nil {
			log.Printf("[App] board open failed: %v", err)
		} else {
			a.deviceReady = true
			a.reader.Reset()
			log.Printf("[App] board acquired")
		}
	}

	input := session.Input{DT: dt, DeviceReady: a.deviceReady}
	if a.deviceReady {
		sample, err := a.reader.Poll()
		if errors.Is(err, board.ErrDisconnected) {
			input.Disconnected = true
			a.deviceReady = false
			a.device.Close()
			a.reader.Reset()
		} else {
			input.Sample = sample
		}
	}

	a.apply(a.machine.Tick(input))
	return nil
}

// apply dispatches the machine's side effects to audio and persistence.
func (a *App) apply(effects []session.Effect) {
	for _, e := range effects {
		switch e.Kind {
		case session.EffectCue:
			a.audio.PlayCue(e.ID)
		case session.EffectMusic:
			a.audio.PlayMusic(e.ID)
		case session.EffectStopMusic:
			a.audio.StopMusic()
		case session.EffectSaveBestTime:
			a.saves.UpdateBestTime(e.Player, e.Time)
		case session.EffectSaveWin:
			a.saves.AddWin(e.Player)
		case session.EffectSaveDodgeScore:
			a.saves.UpdateDodgeHighScore(e.Player, e.Score)
		}
	}
}

// Draw renders the current frame.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
}

// Layout returns the logical resolution; ebiten scales it to the window.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
