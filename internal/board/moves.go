package board

import (
	"fmt"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// checkMove explains why a point-to-point move is illegal, or returns nil
func (b *Board) checkMove(from, to int, player models.PlayerID) error {
	if err := player.Validate(); err != nil {
		return err
	}
	if !models.ValidPoint(from) || !models.ValidPoint(to) {
		return &models.MoveError{
			Kind:   models.ErrInvalidPoint,
			From:   models.Point(from),
			To:     models.Point(to),
			Reason: "point out of range",
		}
	}
	if b.countOf(from, player) == 0 {
		return models.NewMoveError(models.Point(from), models.Point(to), "no checker of "+player.String()+" at source")
	}
	if (to-from)*player.Direction() <= 0 {
		return models.NewMoveError(models.Point(from), models.Point(to), "wrong direction")
	}
	if !b.IsPointOpen(to, player) {
		return models.NewMoveError(models.Point(from), models.Point(to), "destination blocked")
	}
	return nil
}

// CanMoveFromTo reports whether player may move a checker between two points
func (b *Board) CanMoveFromTo(from, to int, player models.PlayerID) bool {
	return b.checkMove(from, to, player) == nil
}

// MoveChecker moves the top checker from one point to another, capturing a
// lone opposing checker on the destination. The captured checker is
// returned, or nil.
func (b *Board) MoveChecker(from, to int, player models.PlayerID) (*models.Checker, error) {
	if err := b.checkMove(from, to, player); err != nil {
		return nil, err
	}

	id := pop(&b.points[from])
	captured := b.capture(to, player)
	if err := b.checkers[id].MoveTo(to); err != nil {
		// checkMove guarantees the checker is on the board
		panic(err)
	}
	b.points[to] = append(b.points[to], id)

	return captured, nil
}

// BarEntryPoint returns the point a checker enters on with the given die
func BarEntryPoint(player models.PlayerID, value int) (int, bool) {
	if value < 1 || value > 6 {
		return 0, false
	}
	switch player {
	case models.Player1:
		return models.NumPoints - value, true
	case models.Player2:
		return value - 1, true
	default:
		return 0, false
	}
}

func (b *Board) checkEnter(to int, player models.PlayerID) error {
	if err := player.Validate(); err != nil {
		return err
	}
	if !b.HasCheckersOnBar(player) {
		return models.NewMoveError(models.Bar, models.Point(to), "no checker on the bar")
	}
	if !models.ValidPoint(to) {
		return &models.MoveError{
			Kind:   models.ErrInvalidPoint,
			From:   models.Bar,
			To:     models.Point(to),
			Reason: "point out of range",
		}
	}
	lo, hi := player.EntryRange()
	if to < lo || to > hi {
		return models.NewMoveError(models.Bar, models.Point(to), fmt.Sprintf("must enter on points %d-%d", lo, hi))
	}
	if !b.IsPointOpen(to, player) {
		return models.NewMoveError(models.Bar, models.Point(to), "destination blocked")
	}
	return nil
}

// CanEnterFromBar reports whether player may enter a checker on point to
func (b *Board) CanEnterFromBar(to int, player models.PlayerID) bool {
	return b.checkEnter(to, player) == nil
}

// EnterFromBar moves a checker from the bar onto a point in the opponent's
// home board, capturing a lone opposing checker there.
func (b *Board) EnterFromBar(to int, player models.PlayerID) (*models.Checker, error) {
	if err := b.checkEnter(to, player); err != nil {
		return nil, err
	}

	id := pop(&b.bar[player.Index()])
	captured := b.capture(to, player)
	if err := b.checkers[id].MoveFromBarTo(to); err != nil {
		panic(err)
	}
	b.points[to] = append(b.points[to], id)

	return captured, nil
}

// CanPlayerBearOff reports whether every in-play checker of the player is
// on its home board and none is on the bar.
func (b *Board) CanPlayerBearOff(player models.PlayerID) bool {
	if !player.Valid() || b.HasCheckersOnBar(player) {
		return false
	}
	for point := range b.points {
		if b.countOf(point, player) > 0 && !player.InHome(point) {
			return false
		}
	}
	return true
}

// hasCheckersFurther reports whether the player has checkers on home points
// further from the edge than point.
func (b *Board) hasCheckersFurther(player models.PlayerID, point int) bool {
	lo, hi := player.HomeRange()
	if player == models.Player1 {
		lo = point + 1
	} else {
		hi = point - 1
	}
	for p := lo; p <= hi; p++ {
		if b.countOf(p, player) > 0 {
			return true
		}
	}
	return false
}

func (b *Board) checkBearOff(point int, player models.PlayerID, value int) error {
	if err := player.Validate(); err != nil {
		return err
	}
	if !models.ValidPoint(point) {
		return fmt.Errorf("%w: %w: %d", models.ErrCannotBearOff, models.ErrInvalidPoint, point)
	}
	if !b.CanPlayerBearOff(player) {
		return fmt.Errorf("%w: %s has checkers outside the home board", models.ErrCannotBearOff, player)
	}
	if b.countOf(point, player) == 0 {
		return fmt.Errorf("%w: no checker of %s on point %d", models.ErrCannotBearOff, player, point)
	}

	required := player.DistanceOff(point)
	switch {
	case value == required:
		return nil
	case value > required:
		if b.hasCheckersFurther(player, point) {
			return fmt.Errorf("%w: %d is higher than %d while checkers remain further back", models.ErrCannotBearOff, value, required)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d is lower than the %d needed from point %d", models.ErrCannotBearOff, value, required, point)
	}
}

// CanBearOffFrom reports whether player may bear off from point with the
// given die. An exact die always works; a higher die only works from the
// checker furthest from the edge.
func (b *Board) CanBearOffFrom(point int, player models.PlayerID, value int) bool {
	return b.checkBearOff(point, player, value) == nil
}

// BearOffChecker removes a checker from point to the borne-off pile
func (b *Board) BearOffChecker(point int, player models.PlayerID, value int) error {
	if err := b.checkBearOff(point, player, value); err != nil {
		return err
	}

	id := pop(&b.points[point])
	b.checkers[id].BearOff()
	b.off[player.Index()] = append(b.off[player.Index()], id)
	return nil
}

// ValidMovesForDice lists every legal single move for one die. While the
// player has checkers on the bar only the entry move is considered.
func (b *Board) ValidMovesForDice(player models.PlayerID, value int) []models.Move {
	if !player.Valid() || value < 1 || value > 6 {
		return nil
	}

	var moves []models.Move
	if b.HasCheckersOnBar(player) {
		if to, ok := BarEntryPoint(player, value); ok && b.CanEnterFromBar(to, player) {
			moves = append(moves, models.Move{From: models.Bar, To: models.Point(to)})
		}
		return moves
	}

	for point := range b.points {
		if b.countOf(point, player) == 0 {
			continue
		}
		target := point + player.Direction()*value
		if models.ValidPoint(target) {
			if b.CanMoveFromTo(point, target, player) {
				moves = append(moves, models.Move{From: models.Point(point), To: models.Point(target)})
			}
		} else if b.CanBearOffFrom(point, player, value) {
			moves = append(moves, models.Move{From: models.Point(point), To: models.Off})
		}
	}
	return sortedMoves(moves)
}
