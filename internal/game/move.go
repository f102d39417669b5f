package game

import (
	"fmt"

	"github.com/KirkDiggler/backgammon/internal/dice"
	"github.com/KirkDiggler/backgammon/internal/models"
)

// MoveResult describes an accepted move
type MoveResult struct {
	// Move is the history entry appended for the move
	Move models.MoveRecord

	// Captured is the opposing checker sent to the bar, if any
	Captured *models.Checker

	// Won is set when the move bore off the player's last checker
	Won bool

	// Remaining lists the dice values still available this turn
	Remaining []int
}

// ValidMoves lists every legal single move for the current player over the
// distinct dice values still available. It is empty before a roll.
func (g *Game) ValidMoves() []models.Move {
	if g.status != models.GameStatusInProgress || !g.dice.IsRolled() {
		return nil
	}

	seen := make(map[models.Move]bool)
	var moves []models.Move
	for _, value := range g.dice.DistinctAvailable() {
		for _, m := range g.board.ValidMovesForDice(g.currentPlayer, value) {
			if seen[m] {
				continue
			}
			seen[m] = true
			moves = append(moves, m)
		}
	}
	return moves
}

// HasValidMoves reports whether the current player can play any die
func (g *Game) HasValidMoves() bool {
	return len(g.ValidMoves()) > 0
}

// entryValue is the die that enters a checker from the bar onto point
func entryValue(player models.PlayerID, point int) int {
	if player == models.Player1 {
		return models.NumPoints - point
	}
	return point + 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// requireDie checks the dice can pay for a move of the given value
func (g *Game) requireDie(from, to models.Endpoint, value int) error {
	if !g.dice.IsRolled() {
		return models.NewMoveError(from, to, "dice not rolled")
	}
	if value < 1 || value > dice.Sides {
		return models.NewMoveError(from, to, fmt.Sprintf("distance %d cannot be played with one die", value))
	}
	if !g.dice.CanUseValue(value) {
		return models.NewMoveError(from, to, fmt.Sprintf("die %d not available, have %v", value, g.dice.Available()))
	}
	return nil
}

// MakeMove moves one checker for the current player. The die used is
// implied by the distance: entering from the bar uses 24-to for player 1
// and to+1 for player 2, bearing off uses the exact distance when it was
// rolled and otherwise the smallest larger die, and a normal move uses the
// number of points travelled. A rejected move changes nothing.
func (g *Game) MakeMove(from, to models.Endpoint) (*MoveResult, error) {
	if err := g.validateInProgress(); err != nil {
		return nil, err
	}

	player := g.currentPlayer
	switch {
	case from.IsOff():
		return nil, models.NewMoveError(from, to, "cannot move a borne-off checker")
	case to.IsBar():
		return nil, models.NewMoveError(from, to, "cannot move onto the bar")
	case from.IsBar() && to.IsOff():
		return nil, models.NewMoveError(from, to, "cannot bear off from the bar")
	case !from.Valid() || !to.Valid():
		return nil, &models.MoveError{
			Kind:   models.ErrInvalidPoint,
			From:   from,
			To:     to,
			Reason: "point out of range",
		}
	case !from.IsBar() && g.board.HasCheckersOnBar(player):
		return nil, models.NewMoveError(from, to, "checkers on the bar must enter first")
	}

	var (
		value    int
		captured *models.Checker
		err      error
	)
	switch {
	case from.IsBar():
		value = entryValue(player, to.Index())
		if err := g.requireDie(from, to, value); err != nil {
			return nil, err
		}
		captured, err = g.board.EnterFromBar(to.Index(), player)

	case to.IsOff():
		if !g.board.CanPlayerBearOff(player) {
			return nil, fmt.Errorf("%w: %s has checkers outside the home board", models.ErrCannotBearOff, player)
		}
		if !g.dice.IsRolled() {
			return nil, models.NewMoveError(from, to, "dice not rolled")
		}
		required := player.DistanceOff(from.Index())
		v, ok := g.dice.UsableValueForBearOff(required)
		if !ok {
			return nil, fmt.Errorf("%w: no die of %d or more available, have %v", models.ErrCannotBearOff, required, g.dice.Available())
		}
		value = v
		err = g.board.BearOffChecker(from.Index(), player, value)

	default:
		value = abs(to.Index() - from.Index())
		if err := g.requireDie(from, to, value); err != nil {
			return nil, err
		}
		captured, err = g.board.MoveChecker(from.Index(), to.Index(), player)
	}
	if err != nil {
		return nil, err
	}

	// The value was checked above, so this cannot fail.
	if err := g.dice.UseValue(value); err != nil {
		return nil, err
	}

	record := models.MoveRecord{
		Turn:      g.turn,
		Player:    player,
		From:      from,
		To:        to,
		DiceValue: value,
		Captured:  captured != nil,
	}
	g.history = append(g.history, record)

	result := &MoveResult{
		Move:      record,
		Captured:  captured,
		Remaining: g.dice.Available(),
	}
	if g.board.IsGameWon(player) {
		g.status = models.GameStatusFinished
		g.winner = player
		result.Won = true
	}
	return result, nil
}
