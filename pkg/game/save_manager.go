package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// recordsObject is the gdata object holding one property per player profile.
const recordsObject = "players"

// NoBestTime marks a player who has never won.
const NoBestTime = -1.0

// PlayerRecord is the persisted per-player scorecard.
type PlayerRecord struct {
	// BestTime is the fastest win in seconds; NoBestTime means no win yet.
	BestTime float64 `yaml:"bestTime"`
	// TotalWins counts celebrated rounds across all modes.
	TotalWins int `yaml:"totalWins"`
	// DodgeHighScore is the most blocks survived in one dodge round.
	DodgeHighScore int `yaml:"dodgeHighScore"`
}

// SaveManager loads and persists PlayerRecords through gdata. A nil gdata
// manager is a supported degraded mode: records live in memory only.
// Malformed or missing stored data yields the default record, never an error.
type SaveManager struct {
	gdataManager *gdata.Manager
	records      map[string]PlayerRecord
}

// NewSaveManager creates the manager. gdataManager may be nil.
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	return &SaveManager{
		gdataManager: gdataManager,
		records:      make(map[string]PlayerRecord),
	}
}

// Record returns the player's persisted record, loading it on first use.
func (sm *SaveManager) Record(player string) PlayerRecord {
	key := RecordKey(player)
	if rec, ok := sm.records[key]; ok {
		return rec
	}
	rec := sm.load(key)
	sm.records[key] = rec
	return rec
}

func (sm *SaveManager) load(key string) PlayerRecord {
	rec := PlayerRecord{BestTime: NoBestTime}
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(recordsObject, key) {
		return rec
	}
	data, err := sm.gdataManager.LoadObjectProp(recordsObject, key)
	if err != nil {
		log.Printf("[SaveManager] Warning: failed to load record %s: %v (using defaults)", key, err)
		return rec
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		log.Printf("[SaveManager] Warning: malformed record %s: %v (using defaults)", key, err)
		return PlayerRecord{BestTime: NoBestTime}
	}
	return rec
}

func (sm *SaveManager) persist(key string, rec PlayerRecord) error {
	sm.records[key] = rec
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", key, err)
	}
	if err := sm.gdataManager.SaveObjectProp(recordsObject, key, data); err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

// UpdateBestTime records a win time, keeping it only if it beats the stored
// best. Returns true when the record improved.
func (sm *SaveManager) UpdateBestTime(player string, seconds float64) bool {
	rec := sm.Record(player)
	if rec.BestTime != NoBestTime && seconds >= rec.BestTime {
		return false
	}
	rec.BestTime = seconds
	if err := sm.persist(RecordKey(player), rec); err != nil {
		log.Printf("[SaveManager] %v", err)
	}
	return true
}

// AddWin increments the player's total win counter and returns the new count.
func (sm *SaveManager) AddWin(player string) int {
	rec := sm.Record(player)
	rec.TotalWins++
	if err := sm.persist(RecordKey(player), rec); err != nil {
		log.Printf("[SaveManager] %v", err)
	}
	return rec.TotalWins
}

// UpdateDodgeHighScore stores a new dodge high score if it beats the record.
// Returns true when the record improved.
func (sm *SaveManager) UpdateDodgeHighScore(player string, score int) bool {
	rec := sm.Record(player)
	if score <= rec.DodgeHighScore {
		return false
	}
	rec.DodgeHighScore = score
	if err := sm.persist(RecordKey(player), rec); err != nil {
		log.Printf("[SaveManager] %v", err)
	}
	return true
}
