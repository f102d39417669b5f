// Package board holds the backgammon point model and every rule that can
// be decided from the position alone: movement, capture, bar entry and
// bearing off. It has no notion of turns.
package board

import (
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// BarPips is the pip distance counted for a checker on the bar
const BarPips = 25

// Board is an arena of checker records plus the piles that reference them
// by ID. A checker ID appears in exactly one pile at a time.
type Board struct {
	checkers []models.Checker
	points   [models.NumPoints][]int
	bar      [2][]int
	off      [2][]int
}

// New creates an empty board
func New() *Board {
	return &Board{}
}

// InitialLayout returns the standard opening position
func InitialLayout() models.Layout {
	var layout models.Layout
	set := func(point int, owner models.PlayerID, count int) {
		layout.Points[point] = models.Stack{Owner: owner, Count: count}
	}

	set(23, models.Player1, 2)
	set(12, models.Player1, 5)
	set(7, models.Player1, 3)
	set(5, models.Player1, 5)

	set(0, models.Player2, 2)
	set(11, models.Player2, 5)
	set(16, models.Player2, 3)
	set(18, models.Player2, 5)

	return layout
}

// SetupInitialPosition places all 30 checkers in the opening position
func (b *Board) SetupInitialPosition() {
	// The opening layout is always valid.
	_ = b.SetLayout(InitialLayout())
}

// Clear removes every checker from the board
func (b *Board) Clear() {
	b.checkers = nil
	for i := range b.points {
		b.points[i] = nil
	}
	b.bar = [2][]int{}
	b.off = [2][]int{}
}

// SetLayout replaces the position with the given layout. Each player must
// have exactly 15 checkers and every point a single owner.
func (b *Board) SetLayout(layout models.Layout) error {
	if err := validateLayout(&layout); err != nil {
		return err
	}

	b.Clear()
	b.checkers = make([]models.Checker, 2*models.CheckersPerPlayer)
	next := [2]int{0, models.CheckersPerPlayer}
	place := func(owner models.PlayerID, location models.Endpoint) int {
		id := next[owner.Index()]
		next[owner.Index()]++
		b.checkers[id] = models.Checker{
			ID:       id,
			Owner:    owner,
			Location: location,
		}
		return id
	}

	for point, stack := range layout.Points {
		for i := 0; i < stack.Count; i++ {
			b.points[point] = append(b.points[point], place(stack.Owner, models.Point(point)))
		}
	}
	for _, player := range []models.PlayerID{models.Player1, models.Player2} {
		idx := player.Index()
		for i := 0; i < layout.Bar[idx]; i++ {
			b.bar[idx] = append(b.bar[idx], place(player, models.Bar))
		}
		for i := 0; i < layout.Off[idx]; i++ {
			b.off[idx] = append(b.off[idx], place(player, models.Off))
		}
	}

	return nil
}

func validateLayout(layout *models.Layout) error {
	for point, stack := range layout.Points {
		if stack.Count < 0 {
			return fmt.Errorf("%w: negative count on point %d", models.ErrInvalidLayout, point)
		}
		if stack.Count > 0 && !stack.Owner.Valid() {
			return fmt.Errorf("%w: point %d has no valid owner", models.ErrInvalidLayout, point)
		}
	}
	for _, player := range []models.PlayerID{models.Player1, models.Player2} {
		idx := player.Index()
		if layout.Bar[idx] < 0 || layout.Off[idx] < 0 {
			return fmt.Errorf("%w: negative bar or off count for %s", models.ErrInvalidLayout, player)
		}
		if total := layout.Total(player); total != models.CheckersPerPlayer {
			return fmt.Errorf("%w: %s has %d checkers", models.ErrInvalidLayout, player, total)
		}
	}
	return nil
}

// Layout returns a value description of the current position
func (b *Board) Layout() models.Layout {
	var layout models.Layout
	for point := range b.points {
		layout.Points[point] = models.Stack{
			Owner: b.owner(point),
			Count: len(b.points[point]),
		}
	}
	for i := 0; i < 2; i++ {
		layout.Bar[i] = len(b.bar[i])
		layout.Off[i] = len(b.off[i])
	}
	return layout
}

// Checker returns a copy of the checker with the given ID
func (b *Board) Checker(id int) (models.Checker, bool) {
	if id < 0 || id >= len(b.checkers) {
		return models.Checker{}, false
	}
	return b.checkers[id], true
}

// Checkers returns copies of every checker a player owns
func (b *Board) Checkers(player models.PlayerID) []models.Checker {
	var checkers []models.Checker
	for _, c := range b.checkers {
		if c.Owner == player {
			checkers = append(checkers, c)
		}
	}
	return checkers
}

// PointCheckers returns copies of the checkers on a point, bottom first
func (b *Board) PointCheckers(point int) ([]models.Checker, error) {
	if !models.ValidPoint(point) {
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidPoint, point)
	}
	checkers := make([]models.Checker, 0, len(b.points[point]))
	for _, id := range b.points[point] {
		checkers = append(checkers, b.checkers[id])
	}
	return checkers, nil
}

// PointOwner returns who holds a point, or NoPlayer when it is empty
func (b *Board) PointOwner(point int) (models.PlayerID, error) {
	if !models.ValidPoint(point) {
		return models.NoPlayer, fmt.Errorf("%w: %d", models.ErrInvalidPoint, point)
	}
	return b.owner(point), nil
}

// PointCount returns the number of checkers on a point
func (b *Board) PointCount(point int) (int, error) {
	if !models.ValidPoint(point) {
		return 0, fmt.Errorf("%w: %d", models.ErrInvalidPoint, point)
	}
	return len(b.points[point]), nil
}

func (b *Board) owner(point int) models.PlayerID {
	if len(b.points[point]) == 0 {
		return models.NoPlayer
	}
	return b.checkers[b.points[point][0]].Owner
}

// countOf returns how many of player's checkers rest on point
func (b *Board) countOf(point int, player models.PlayerID) int {
	if b.owner(point) != player {
		return 0
	}
	return len(b.points[point])
}

// IsPointOpen reports whether player may land on point: it is empty, holds
// the player's own checkers, or holds a single opposing checker.
func (b *Board) IsPointOpen(point int, player models.PlayerID) bool {
	if !models.ValidPoint(point) || !player.Valid() {
		return false
	}
	owner := b.owner(point)
	if owner == models.NoPlayer || owner == player {
		return true
	}
	return len(b.points[point]) == 1
}

// BarCount returns the number of a player's checkers on the bar
func (b *Board) BarCount(player models.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	return len(b.bar[player.Index()])
}

// HasCheckersOnBar reports whether a player must enter before moving
func (b *Board) HasCheckersOnBar(player models.PlayerID) bool {
	return b.BarCount(player) > 0
}

// BorneOffCount returns the number of a player's checkers borne off
func (b *Board) BorneOffCount(player models.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	return len(b.off[player.Index()])
}

// CheckersInPlay returns the number of a player's checkers not yet borne off
func (b *Board) CheckersInPlay(player models.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	return models.CheckersPerPlayer - b.BorneOffCount(player)
}

// IsGameWon reports whether a player has borne off all 15 checkers
func (b *Board) IsGameWon(player models.PlayerID) bool {
	return player.Valid() && b.BorneOffCount(player) == models.CheckersPerPlayer
}

// PipCount sums the distance every checker still has to travel. Checkers on
// the bar count 25.
func (b *Board) PipCount(player models.PlayerID) int {
	if !player.Valid() {
		return 0
	}
	pips := b.BarCount(player) * BarPips
	for point := range b.points {
		pips += b.countOf(point, player) * player.DistanceOff(point)
	}
	return pips
}

// LongestPrime returns the longest run of contiguous points each holding
// at least two of the player's checkers.
func (b *Board) LongestPrime(player models.PlayerID) int {
	longest, run := 0, 0
	for point := range b.points {
		if b.countOf(point, player) >= 2 {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// pop removes the top checker ID from a pile
func pop(pile *[]int) int {
	n := len(*pile)
	id := (*pile)[n-1]
	*pile = (*pile)[:n-1]
	return id
}

// capture sends a lone opposing checker on point to its owner's bar
func (b *Board) capture(point int, player models.PlayerID) *models.Checker {
	owner := b.owner(point)
	if owner == models.NoPlayer || owner == player || len(b.points[point]) != 1 {
		return nil
	}
	id := pop(&b.points[point])
	b.checkers[id].MoveToBar()
	b.bar[owner.Index()] = append(b.bar[owner.Index()], id)
	captured := b.checkers[id]
	return &captured
}

// String returns a plain dump of the position for diagnostics
func (b *Board) String() string {
	var sb strings.Builder
	write := func(points []int) {
		cells := make([]string, 0, len(points))
		for _, point := range points {
			switch b.owner(point) {
			case models.Player1:
				cells = append(cells, fmt.Sprintf("%2d:X(%d)", point, len(b.points[point])))
			case models.Player2:
				cells = append(cells, fmt.Sprintf("%2d:O(%d)", point, len(b.points[point])))
			default:
				cells = append(cells, fmt.Sprintf("%2d:    ", point))
			}
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteByte('\n')
	}

	upper := make([]int, 0, 12)
	for point := 12; point < models.NumPoints; point++ {
		upper = append(upper, point)
	}
	lower := make([]int, 0, 12)
	for point := 11; point >= 0; point-- {
		lower = append(lower, point)
	}

	write(upper)
	fmt.Fprintf(&sb, "bar: X(%d) O(%d) | off: X(%d) O(%d)\n",
		len(b.bar[0]), len(b.bar[1]), len(b.off[0]), len(b.off[1]))
	write(lower)
	return sb.String()
}

// sortedMoves orders moves by source then destination for stable output
func sortedMoves(moves []models.Move) []models.Move {
	key := func(e models.Endpoint) int {
		switch {
		case e.IsBar():
			return -2
		case e.IsOff():
			return models.NumPoints
		default:
			return e.Index()
		}
	}
	slices.SortStableFunc(moves, func(a, b models.Move) int {
		if d := key(a.From) - key(b.From); d != 0 {
			return d
		}
		return key(a.To) - key(b.To)
	})
	return moves
}
