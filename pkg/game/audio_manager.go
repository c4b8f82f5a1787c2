package game

import (
	"bytes"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager plays the game's sound cues and background music through one
// shared audio context. Cues are fire-and-forget; music loops until replaced
// or stopped, and asking for the already-playing track is a no-op.
//
// Any cue or track that failed to register simply stays silent: missing audio
// degrades presentation, it never degrades gameplay.
type AudioManager struct {
	ctx            *audio.Context
	sounds         map[string]*audio.Player
	music          map[string][]byte
	currentMusic   *audio.Player
	currentMusicID string
}

// NewAudioManager creates the manager. ctx may be nil (headless mode), in
// which case every playback call is a silent no-op.
func NewAudioManager(ctx *audio.Context) *AudioManager {
	return &AudioManager{
		ctx:    ctx,
		sounds: make(map[string]*audio.Player),
		music:  make(map[string][]byte),
	}
}

// RegisterSound binds a cue ID to raw PCM data (16-bit LE stereo at the
// context sample rate).
func (am *AudioManager) RegisterSound(id string, pcm []byte) {
	if am.ctx == nil || len(pcm) == 0 {
		return
	}
	am.sounds[id] = am.ctx.NewPlayerFromBytes(pcm)
}

// RegisterMusic binds a track ID to raw PCM data, looped on playback.
func (am *AudioManager) RegisterMusic(id string, pcm []byte) {
	if am.ctx == nil || len(pcm) == 0 {
		return
	}
	am.music[id] = pcm
}

// PlayCue fires a one-shot sound. Returns false for unregistered cues.
func (am *AudioManager) PlayCue(id string) bool {
	player, ok := am.sounds[id]
	if !ok {
		return false
	}
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: failed to rewind cue %s: %v", id, err)
	}
	player.Play()
	return true
}

// PlayMusic starts a looping track, replacing the current one. Requesting
// the track that is already playing keeps it running.
func (am *AudioManager) PlayMusic(id string) bool {
	if am.currentMusicID == id && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	pcm, ok := am.music[id]
	if !ok {
		return false
	}
	am.StopMusic()

	// 4 bytes per frame: 16-bit stereo.
	length := int64(len(pcm))
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), length)
	player, err := am.ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: failed to create music player %s: %v", id, err)
		return false
	}
	player.Play()
	am.currentMusic = player
	am.currentMusicID = id
	log.Printf("[AudioManager] Playing music: %s", id)
	return true
}

// StopMusic halts the current track, if any.
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// Tone synthesizes a sine-beep PCM clip so the game has audible cues without
// shipping audio assets. sampleRate must match the audio context.
func Tone(sampleRate int, freq float64, d time.Duration, volume float64) []byte {
	frames := int(float64(sampleRate) * d.Seconds())
	pcm := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		// Short attack/release ramps avoid clicks at the clip edges.
		env := 1.0
		const ramp = 256
		if i < ramp {
			env = float64(i) / ramp
		} else if frames-i < ramp {
			env = float64(frames-i) / ramp
		}
		s := int16(volume * env * 32767 * math.Sin(2*math.Pi*float64(i)*freq/float64(sampleRate)))
		pcm[i*4] = byte(s)
		pcm[i*4+1] = byte(s >> 8)
		pcm[i*4+2] = byte(s)
		pcm[i*4+3] = byte(s >> 8)
	}
	return pcm
}
