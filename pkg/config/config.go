// Package config holds every tuning constant of the game in one YAML-loadable
// structure. The defaults reproduce the original arcade cabinet values; a
// config file only needs to list the fields it overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Window is the logical render resolution. Ebiten scales it to the actual
// window, so gameplay coordinates never depend on the display.
const (
	WindowWidth  = 1920
	WindowHeight = 1080

	// AvatarSize is the square footprint of the player avatar in pixels.
	AvatarSize = 150

	// TrailLength is the number of avatar positions kept for the motion trail.
	TrailLength = 60
)

// BoardConfig tunes the balance-board signal pipeline.
type BoardConfig struct {
	// MinTotalWeight gates CoB computation: below this summed corner weight
	// (grams) nobody is standing on the board and samples are discarded.
	MinTotalWeight float64 `yaml:"minTotalWeight"`
	// DeadZone zeroes a CoB axis whose magnitude falls below it.
	DeadZone float64 `yaml:"deadZone"`
	// PollTimeoutThreshold is the number of consecutive empty polls treated
	// as a disconnect.
	PollTimeoutThreshold int `yaml:"pollTimeoutThreshold"`
	// MaxEventsPerPoll bounds how many pending device events one poll drains.
	MaxEventsPerPoll int `yaml:"maxEventsPerPoll"`
}

// MotionConfig tunes the damped-spring avatar smoothing.
type MotionConfig struct {
	SpringConstant float64 `yaml:"springConstant"`
	DampingFactor  float64 `yaml:"dampingFactor"`
	// CoBScaleGeneral maps CoB units to window fractions in the menu and the
	// BalanceHold/CoinCollector modes.
	CoBScaleGeneral float64 `yaml:"cobScaleGeneral"`
	// CoBScaleDodge is the higher-sensitivity mapping used by Dodge.
	CoBScaleDodge float64 `yaml:"cobScaleDodge"`
}

// SelectionConfig tunes the three-zone lean-to-select menus.
type SelectionConfig struct {
	// LeftThreshold selects the left slot when CoB x drops below -LeftThreshold.
	LeftThreshold float64 `yaml:"leftThreshold"`
	// CenterThreshold selects the center slot while |x| stays below it.
	CenterThreshold float64 `yaml:"centerThreshold"`
	// RightThreshold selects the right slot when x exceeds it.
	RightThreshold float64 `yaml:"rightThreshold"`
	// HoldSeconds is how long a zone must be held before the choice commits.
	HoldSeconds float64 `yaml:"holdSeconds"`
}

// BalanceHoldConfig tunes the Balance Hold mode.
type BalanceHoldConfig struct {
	HoldRadius   float64    `yaml:"holdRadius"`
	GraceRadius  float64    `yaml:"graceRadius"`
	HoldSeconds  float64    `yaml:"holdSeconds"`
	PulseSpeed   float64    `yaml:"pulseSpeed"`
	TargetSpeeds [3]float64 `yaml:"targetSpeeds"` // easy, medium, hard
	PointsToWin  [3]int     `yaml:"pointsToWin"`  // easy, medium, hard
}

// CoinCollectorConfig tunes the Coin Collector mode.
type CoinCollectorConfig struct {
	CoinSize        float64 `yaml:"coinSize"`
	SafeMargin      float64 `yaml:"safeMargin"`
	MinPlayerDist   float64 `yaml:"minPlayerDist"`
	HardModeSeconds float64 `yaml:"hardModeSeconds"`
	CoinsToWin      [3]int  `yaml:"coinsToWin"` // easy, medium, hard
	// MaxSpawnAttempts bounds the rejection-sampling respawn loop.
	MaxSpawnAttempts int `yaml:"maxSpawnAttempts"`
}

// DodgeConfig tunes the Dodge mode.
type DodgeConfig struct {
	BlockWidth         float64 `yaml:"blockWidth"`
	BlockHeight        float64 `yaml:"blockHeight"`
	InitialSpeed       float64 `yaml:"initialSpeed"`
	SpeedIncrement     float64 `yaml:"speedIncrement"`
	SpawnInterval      float64 `yaml:"spawnInterval"`
	SpawnIntervalFloor float64 `yaml:"spawnIntervalFloor"`
	SpawnIntervalDecay float64 `yaml:"spawnIntervalDecay"`
	MaxBlocks          int     `yaml:"maxBlocks"`
}

// SessionConfig tunes the state machine timings.
type SessionConfig struct {
	TransitionSeconds   float64 `yaml:"transitionSeconds"`
	WinAnimationSeconds float64 `yaml:"winAnimationSeconds"`
	InactivitySeconds   float64 `yaml:"inactivitySeconds"`
}

// ConfettiConfig tunes the win celebration burst.
type ConfettiConfig struct {
	Count    int     `yaml:"count"`
	Lifetime float64 `yaml:"lifetime"`
	Gravity  float64 `yaml:"gravity"`
	Spread   float64 `yaml:"spread"`
}

// Config aggregates all tuning sections.
type Config struct {
	Board         BoardConfig         `yaml:"board"`
	Motion        MotionConfig        `yaml:"motion"`
	Selection     SelectionConfig     `yaml:"selection"`
	BalanceHold   BalanceHoldConfig   `yaml:"balanceHold"`
	CoinCollector CoinCollectorConfig `yaml:"coinCollector"`
	Dodge         DodgeConfig         `yaml:"dodge"`
	Session       SessionConfig       `yaml:"session"`
	Confetti      ConfettiConfig      `yaml:"confetti"`
}

// Default returns the original cabinet tuning.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			MinTotalWeight:       2000,
			DeadZone:             400,
			PollTimeoutThreshold: 100,
			MaxEventsPerPoll:     10,
		},
		Motion: MotionConfig{
			SpringConstant:  10.0,
			DampingFactor:   5.0,
			CoBScaleGeneral: 0.00015,
			CoBScaleDodge:   0.00025,
		},
		Selection: SelectionConfig{
			LeftThreshold:   200,
			CenterThreshold: 150,
			RightThreshold:  200,
			HoldSeconds:     1.5,
		},
		BalanceHold: BalanceHoldConfig{
			HoldRadius:   100,
			GraceRadius:  200,
			HoldSeconds:  1.5,
			PulseSpeed:   8.0,
			TargetSpeeds: [3]float64{0, 25, 50},
			PointsToWin:  [3]int{10, 15, 25},
		},
		CoinCollector: CoinCollectorConfig{
			CoinSize:         150,
			SafeMargin:       300,
			MinPlayerDist:    250,
			HardModeSeconds:  10.0,
			CoinsToWin:       [3]int{15, 20, 30},
			MaxSpawnAttempts: 64,
		},
		Dodge: DodgeConfig{
			BlockWidth:         50,
			BlockHeight:        100,
			InitialSpeed:       300,
			SpeedIncrement:     50,
			SpawnInterval:      2.0,
			SpawnIntervalFloor: 0.5,
			SpawnIntervalDecay: 0.01,
			MaxBlocks:          10,
		},
		Session: SessionConfig{
			TransitionSeconds:   1.5,
			WinAnimationSeconds: 2.5,
			InactivitySeconds:   15,
		},
		Confetti: ConfettiConfig{
			Count:    150,
			Lifetime: 2.0,
			Gravity:  200,
			Spread:   300,
		},
	}
}

// Load returns Default overlaid with the YAML file at path. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
