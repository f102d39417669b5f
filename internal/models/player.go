package models

import (
	"fmt"
	"time"
)

// CheckersPerPlayer is the number of checkers each side owns
const CheckersPerPlayer = 15

// PlayerID identifies one of the two sides
type PlayerID int

const (
	// NoPlayer is used where no player applies, such as an empty point or
	// an undecided winner
	NoPlayer PlayerID = 0

	// Player1 moves toward lower point indices and bears off from 0-5
	Player1 PlayerID = 1

	// Player2 moves toward higher point indices and bears off from 18-23
	Player2 PlayerID = 2
)

// Valid reports whether the ID is Player1 or Player2
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// Validate returns ErrInvalidPlayer for anything but Player1 or Player2
func (p PlayerID) Validate() error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, int(p))
	}
	return nil
}

// Opponent returns the other side
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Index returns 0 for Player1 and 1 for Player2
func (p PlayerID) Index() int {
	return int(p) - 1
}

// Direction is -1 for Player1 and +1 for Player2
func (p PlayerID) Direction() int {
	if p == Player1 {
		return -1
	}
	return 1
}

// HomeRange returns the inclusive range of the player's home board
func (p PlayerID) HomeRange() (int, int) {
	if p == Player1 {
		return 0, 5
	}
	return 18, 23
}

// EntryRange returns the inclusive range a player enters through from the
// bar, which is the opponent's home board
func (p PlayerID) EntryRange() (int, int) {
	return p.Opponent().HomeRange()
}

// InHome reports whether point lies in the player's home board
func (p PlayerID) InHome(point int) bool {
	lo, hi := p.HomeRange()
	return point >= lo && point <= hi
}

// DistanceOff is the exact die value needed to bear off from point
func (p PlayerID) DistanceOff(point int) int {
	if p == Player1 {
		return point + 1
	}
	return NumPoints - point
}

// String implements fmt.Stringer
func (p PlayerID) String() string {
	return fmt.Sprintf("player %d", int(p))
}

// Player is the identity of one side in a game. Bar and borne-off counts
// are not stored here; they are queried from the board.
type Player struct {
	// ID is 1 or 2
	ID PlayerID `json:"id"`

	// Name is the display name of the player
	Name string `json:"name"`
}

// NewPlayer creates a player, defaulting the name to "Player N"
func NewPlayer(id PlayerID, name string) (*Player, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultPlayerName(id)
	}
	return &Player{
		ID:   id,
		Name: name,
	}, nil
}

// DefaultPlayerName is the name used when none is given
func DefaultPlayerName(id PlayerID) string {
	return fmt.Sprintf("Player %d", int(id))
}

// PlayerRecord holds a player's results across games
type PlayerRecord struct {
	// Name is the display name of the player
	Name string `json:"name"`

	// GamesPlayed is the number of finished games
	GamesPlayed int `json:"games_played"`

	// Wins is the number of games won
	Wins int `json:"wins"`

	// Losses is the number of games lost
	Losses int `json:"losses"`

	// Rating is the Glicko-2 rating
	Rating float64 `json:"rating"`

	// RatingDeviation is the Glicko-2 rating deviation
	RatingDeviation float64 `json:"rating_deviation"`

	// Volatility is the Glicko-2 volatility
	Volatility float64 `json:"volatility"`

	// LastGameID is the ID of the last finished game
	LastGameID string `json:"last_game_id,omitempty"`

	// UpdatedAt is when the record last changed
	UpdatedAt time.Time `json:"updated_at"`
}
