package game

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// PlayerStatus summarizes one side for display and statistics
type PlayerStatus struct {
	ID           models.PlayerID `json:"id"`
	Name         string          `json:"name"`
	OnBar        int             `json:"on_bar"`
	BorneOff     int             `json:"borne_off"`
	InPlay       int             `json:"in_play"`
	PipCount     int             `json:"pip_count"`
	LongestPrime int             `json:"longest_prime"`
	CanBearOff   bool            `json:"can_bear_off"`
}

// Summary is a read-only view of the whole game
type Summary struct {
	Status         models.GameStatus `json:"status"`
	CurrentPlayer  models.PlayerID   `json:"current_player"`
	Winner         models.PlayerID   `json:"winner,omitempty"`
	TurnCount      int               `json:"turn_count"`
	DiceRolled     bool              `json:"dice_rolled"`
	DiceValues     [2]int            `json:"dice_values"`
	AvailableDice  []int             `json:"available_dice,omitempty"`
	AvailableMoves int               `json:"available_moves"`
	Player1        PlayerStatus      `json:"player1"`
	Player2        PlayerStatus      `json:"player2"`
}

// PlayerStatus returns the counts for one side
func (g *Game) PlayerStatus(id models.PlayerID) (PlayerStatus, error) {
	player, err := g.Player(id)
	if err != nil {
		return PlayerStatus{}, err
	}
	return PlayerStatus{
		ID:           id,
		Name:         player.Name,
		OnBar:        g.board.BarCount(id),
		BorneOff:     g.board.BorneOffCount(id),
		InPlay:       g.board.CheckersInPlay(id),
		PipCount:     g.board.PipCount(id),
		LongestPrime: g.board.LongestPrime(id),
		CanBearOff:   g.board.CanPlayerBearOff(id),
	}, nil
}

// Summary returns the state of the game in one value
func (g *Game) Summary() Summary {
	p1, _ := g.PlayerStatus(models.Player1)
	p2, _ := g.PlayerStatus(models.Player2)
	d1, d2 := g.dice.Values()

	return Summary{
		Status:         g.status,
		CurrentPlayer:  g.currentPlayer,
		Winner:         g.winner,
		TurnCount:      g.turn,
		DiceRolled:     g.dice.IsRolled(),
		DiceValues:     [2]int{d1, d2},
		AvailableDice:  g.dice.Available(),
		AvailableMoves: len(g.ValidMoves()),
		Player1:        p1,
		Player2:        p2,
	}
}

// PointOwner returns who holds a point, or NoPlayer when empty
func (g *Game) PointOwner(point int) (models.PlayerID, error) {
	return g.board.PointOwner(point)
}

// PointCount returns the number of checkers on a point
func (g *Game) PointCount(point int) (int, error) {
	return g.board.PointCount(point)
}

// BarCount returns the number of a player's checkers on the bar
func (g *Game) BarCount(id models.PlayerID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return g.board.BarCount(id), nil
}

// BorneOffCount returns the number of a player's checkers borne off
func (g *Game) BorneOffCount(id models.PlayerID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return g.board.BorneOffCount(id), nil
}

// PipCount returns a player's pip count
func (g *Game) PipCount(id models.PlayerID) (int, error) {
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return g.board.PipCount(id), nil
}

// String implements fmt.Stringer
func (g *Game) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Backgammon %s: %s (%s) vs %s (%s), turn %d\n",
		g.status,
		g.players[0].Name, models.Player1,
		g.players[1].Name, models.Player2,
		g.turn)
	if g.status == models.GameStatusInProgress {
		fmt.Fprintf(&sb, "to move: %s", g.CurrentPlayer().Name)
		if g.dice.IsRolled() {
			d1, d2 := g.dice.Values()
			fmt.Fprintf(&sb, ", dice %d-%d, available %v", d1, d2, g.dice.Available())
		}
		sb.WriteByte('\n')
	}
	if winner := g.Winner(); winner != nil {
		fmt.Fprintf(&sb, "winner: %s\n", winner.Name)
	}
	sb.WriteString(g.board.String())
	return sb.String()
}
