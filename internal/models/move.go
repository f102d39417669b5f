package models

import "fmt"

// Move is a single checker movement from one endpoint to another
type Move struct {
	From Endpoint `json:"from"`
	To   Endpoint `json:"to"`
}

// String implements fmt.Stringer
func (m Move) String() string {
	return fmt.Sprintf("%s/%s", m.From, m.To)
}

// MoveRecord is an entry in a game's move history. History is kept for
// display and statistics only and never drives rule decisions.
type MoveRecord struct {
	// Turn is the turn counter when the move was made
	Turn int `json:"turn"`

	// Player made the move
	Player PlayerID `json:"player"`

	// From is where the checker started
	From Endpoint `json:"from"`

	// To is where the checker ended
	To Endpoint `json:"to"`

	// DiceValue is the die consumed by the move
	DiceValue int `json:"dice_value"`

	// Captured indicates an opposing checker was sent to the bar
	Captured bool `json:"captured"`
}
