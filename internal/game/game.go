// Package game sequences turns over a board and a pair of dice. It is the
// only component that knows whose turn it is.
//
// A Game is not safe for concurrent use; callers that share one must
// serialize access themselves.
package game

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/backgammon/internal/board"
	"github.com/KirkDiggler/backgammon/internal/dice"
	"github.com/KirkDiggler/backgammon/internal/models"
)

// Config holds the options for a new game
type Config struct {
	// Display names, defaulting to "Player 1" and "Player 2"
	Player1Name string
	Player2Name string

	// DiceRoller produces the dice values. A time-seeded roller is used
	// when nil.
	DiceRoller dice.Roller
}

// Game orchestrates the board, the dice and two players
type Game struct {
	board   *board.Board
	dice    *dice.Dice
	players [2]*models.Player

	status        models.GameStatus
	currentPlayer models.PlayerID
	winner        models.PlayerID
	turn          int
	history       []models.MoveRecord
}

// New creates a game that has not been started
func New(cfg *Config) *Game {
	if cfg == nil {
		cfg = &Config{}
	}
	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.New(nil)
	}

	// Player IDs are constants, so NewPlayer cannot fail here.
	p1, _ := models.NewPlayer(models.Player1, cfg.Player1Name)
	p2, _ := models.NewPlayer(models.Player2, cfg.Player2Name)

	return &Game{
		board:         board.New(),
		dice:          dice.NewDice(roller),
		players:       [2]*models.Player{p1, p2},
		status:        models.GameStatusNotStarted,
		currentPlayer: models.Player1,
	}
}

// StartGame sets up the opening position. Player 1 always moves first.
func (g *Game) StartGame() error {
	switch g.status {
	case models.GameStatusInProgress:
		return models.ErrGameAlreadyStarted
	case models.GameStatusFinished:
		return models.ErrGameAlreadyFinished
	}

	g.board.SetupInitialPosition()
	g.dice.Reset()
	g.status = models.GameStatusInProgress
	g.currentPlayer = models.Player1
	g.winner = models.NoPlayer
	g.turn = 0
	g.history = nil
	return nil
}

// ResetGame returns the game to the not-started state with an empty board
func (g *Game) ResetGame() {
	g.board.Clear()
	g.dice.Reset()
	g.status = models.GameStatusNotStarted
	g.currentPlayer = models.Player1
	g.winner = models.NoPlayer
	g.turn = 0
	g.history = nil
}

func (g *Game) validateInProgress() error {
	switch g.status {
	case models.GameStatusNotStarted:
		return models.ErrGameNotStarted
	case models.GameStatusFinished:
		return models.ErrGameAlreadyFinished
	}
	return nil
}

// RollDice rolls for the current player. Rolling again is refused while
// values from the previous roll remain.
func (g *Game) RollDice() (int, int, error) {
	if err := g.validateInProgress(); err != nil {
		return 0, 0, err
	}
	if g.dice.IsRolled() && g.dice.HasAvailableMoves() {
		return 0, 0, fmt.Errorf("%w: dice already rolled with %v still available", models.ErrInvalidMove, g.dice.Available())
	}

	d1, d2 := g.dice.Roll()
	return d1, d2, nil
}

// EndTurn passes play to the other player. The engine never ends a turn on
// its own; deciding when to call this is up to the caller.
func (g *Game) EndTurn() error {
	if err := g.validateInProgress(); err != nil {
		return err
	}

	g.currentPlayer = g.currentPlayer.Opponent()
	g.dice.Reset()
	g.turn++
	return nil
}

// Status returns the state of the game
func (g *Game) Status() models.GameStatus {
	return g.status
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *models.Player {
	return g.players[g.currentPlayer.Index()]
}

// Opponent returns the player waiting for their turn
func (g *Game) Opponent() *models.Player {
	return g.players[g.currentPlayer.Opponent().Index()]
}

// Player returns the player with the given ID
func (g *Game) Player(id models.PlayerID) (*models.Player, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return g.players[id.Index()], nil
}

// Winner returns the winning player, or nil while undecided
func (g *Game) Winner() *models.Player {
	if !g.winner.Valid() {
		return nil
	}
	return g.players[g.winner.Index()]
}

// TurnCount returns the number of completed turns
func (g *Game) TurnCount() int {
	return g.turn
}

// History returns a copy of the moves made so far
func (g *Game) History() []models.MoveRecord {
	return slices.Clone(g.history)
}

// Board exposes the board for queries. Callers must not mutate it.
func (g *Game) Board() *board.Board {
	return g.board
}

// Dice exposes the dice for queries. Callers must not mutate them.
func (g *Game) Dice() *dice.Dice {
	return g.dice
}
