package game

import "strings"

// PlayerProfile is one selectable player slot. The roster is fixed at three,
// matching the three lean-to-select zones.
type PlayerProfile struct {
	Name string
}

// Players is the selectable roster, left to right.
var Players = [3]PlayerProfile{
	{Name: "Player 1"},
	{Name: "Player 2"},
	{Name: "Player 3"},
}

// RecordKey derives the persistence property name for a player.
func RecordKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
