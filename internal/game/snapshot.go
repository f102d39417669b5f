package game

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// Snapshot captures everything needed to rebuild the game
func (g *Game) Snapshot() models.GameSnapshot {
	return models.GameSnapshot{
		Player1Name:   g.players[0].Name,
		Player2Name:   g.players[1].Name,
		Status:        g.status,
		CurrentPlayer: g.currentPlayer,
		Turn:          g.turn,
		Winner:        g.winner,
		Layout:        g.board.Layout(),
		Dice:          g.dice.State(),
		History:       slices.Clone(g.history),
	}
}

// Restore rebuilds a game from a snapshot. Names in the snapshot take
// precedence over cfg; the roller still comes from cfg.
func Restore(snapshot models.GameSnapshot, cfg *Config) (*Game, error) {
	merged := Config{}
	if cfg != nil {
		merged = *cfg
	}
	merged.Player1Name = snapshot.Player1Name
	merged.Player2Name = snapshot.Player2Name
	g := New(&merged)

	if err := snapshot.CurrentPlayer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: current player: %w", models.ErrInvalidSnapshot, err)
	}
	if snapshot.Turn < 0 {
		return nil, fmt.Errorf("%w: negative turn %d", models.ErrInvalidSnapshot, snapshot.Turn)
	}

	switch snapshot.Status {
	case models.GameStatusNotStarted:
		if snapshot.Dice.Rolled || len(snapshot.History) > 0 {
			return nil, fmt.Errorf("%w: game not started but has play", models.ErrInvalidSnapshot)
		}
		return g, nil
	case models.GameStatusInProgress:
		if snapshot.Winner != models.NoPlayer {
			return nil, fmt.Errorf("%w: winner set on a game in progress", models.ErrInvalidSnapshot)
		}
	case models.GameStatusFinished:
		if err := snapshot.Winner.Validate(); err != nil {
			return nil, fmt.Errorf("%w: winner: %w", models.ErrInvalidSnapshot, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidSnapshot, snapshot.Status)
	}

	if err := g.board.SetLayout(snapshot.Layout); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrInvalidSnapshot, err)
	}
	if snapshot.Status == models.GameStatusFinished && !g.board.IsGameWon(snapshot.Winner) {
		return nil, fmt.Errorf("%w: %s has not borne off every checker", models.ErrInvalidSnapshot, snapshot.Winner)
	}
	if err := g.dice.Load(snapshot.Dice); err != nil {
		return nil, err
	}

	g.status = snapshot.Status
	g.currentPlayer = snapshot.CurrentPlayer
	g.winner = snapshot.Winner
	g.turn = snapshot.Turn
	g.history = slices.Clone(snapshot.History)
	return g, nil
}
