package models

import (
	"time"
)

// GameStatus represents the current state of a game
type GameStatus string

const (
	// GameStatusNotStarted indicates the board has not been set up yet
	GameStatusNotStarted GameStatus = "not_started"

	// GameStatusInProgress indicates turns are being played
	GameStatusInProgress GameStatus = "in_progress"

	// GameStatusFinished indicates a player has borne off all checkers
	GameStatusFinished GameStatus = "finished"
)

// Stack describes the checkers resting on one point
type Stack struct {
	Owner PlayerID `json:"owner,omitempty"`
	Count int      `json:"count,omitempty"`
}

// Layout is a value description of where every checker is
type Layout struct {
	Points [NumPoints]Stack `json:"points"`

	// Bar and Off are indexed by PlayerID.Index
	Bar [2]int `json:"bar"`
	Off [2]int `json:"off"`
}

// Total returns the number of checkers the layout holds for a player
func (l *Layout) Total(player PlayerID) int {
	if !player.Valid() {
		return 0
	}
	total := l.Bar[player.Index()] + l.Off[player.Index()]
	for _, stack := range l.Points {
		if stack.Owner == player {
			total += stack.Count
		}
	}
	return total
}

// DiceState is the serializable state of the dice
type DiceState struct {
	Rolled bool   `json:"rolled"`
	Values [2]int `json:"values"`
	Used   []int  `json:"used,omitempty"`
}

// GameSnapshot is everything needed to restore a game
type GameSnapshot struct {
	Player1Name   string       `json:"player1_name"`
	Player2Name   string       `json:"player2_name"`
	Status        GameStatus   `json:"status"`
	CurrentPlayer PlayerID     `json:"current_player"`
	Turn          int          `json:"turn"`
	Winner        PlayerID     `json:"winner,omitempty"`
	Layout        Layout       `json:"layout"`
	Dice          DiceState    `json:"dice"`
	History       []MoveRecord `json:"history,omitempty"`
}

// Game is a persisted backgammon game
type Game struct {
	// ID is the unique identifier for the game
	ID string `json:"id"`

	// State is the engine snapshot after the last transition
	State GameSnapshot `json:"state"`

	// CreatedAt is when the game was created
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the game was last updated
	UpdatedAt time.Time `json:"updated_at"`

	// FinishedAt is when a winner was decided
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
