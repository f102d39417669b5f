package session

import (
	"github.com/KirkDiggler/backgammon/internal/common/clock"
	"github.com/KirkDiggler/backgammon/internal/common/uuid"
	"github.com/KirkDiggler/backgammon/internal/dice"
	"github.com/KirkDiggler/backgammon/internal/game"
	"github.com/KirkDiggler/backgammon/internal/models"
	gameRepo "github.com/KirkDiggler/backgammon/internal/repositories/game"
	playerRepo "github.com/KirkDiggler/backgammon/internal/repositories/player"
)

// Config holds configuration for the session service
type Config struct {
	// AutoEndTurn passes the turn automatically once the current player
	// has nothing left to play
	AutoEndTurn bool

	// Repository dependencies
	GameRepo   gameRepo.Repository
	PlayerRepo playerRepo.Repository

	// Service dependencies
	DiceRoller    dice.Roller
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// CreateGameInput contains parameters for creating a new game
type CreateGameInput struct {
	// Display names, defaulting to "Player 1" and "Player 2"
	Player1Name string
	Player2Name string

	// Start sets up the opening position straight away
	Start bool
}

// CreateGameOutput contains the result of creating a new game
type CreateGameOutput struct {
	// GameID is the unique identifier for the created game
	GameID string

	Summary game.Summary
}

// StartGameInput contains parameters for starting a game
type StartGameInput struct {
	GameID string
}

// StartGameOutput contains the state after the game started
type StartGameOutput struct {
	Summary game.Summary
}

// RollDiceInput contains parameters for rolling dice
type RollDiceInput struct {
	GameID string

	// Player is checked against the player to move when set
	Player models.PlayerID
}

// RollDiceOutput contains the result of a roll
type RollDiceOutput struct {
	Dice1 int
	Dice2 int

	// ValidMoves lists what the roll allows
	ValidMoves []models.Move

	// TurnEnded is set when the roll allowed no move and the turn was passed
	TurnEnded bool

	Summary game.Summary
}

// GetValidMovesInput contains parameters for listing moves
type GetValidMovesInput struct {
	GameID string
}

// GetValidMovesOutput lists the legal single moves
type GetValidMovesOutput struct {
	Player    models.PlayerID
	Available []int
	Moves     []models.Move
}

// MakeMoveInput contains parameters for moving a checker
type MakeMoveInput struct {
	GameID string
	Player models.PlayerID
	From   models.Endpoint
	To     models.Endpoint
}

// MakeMoveOutput contains the result of a move
type MakeMoveOutput struct {
	Move     models.MoveRecord
	Captured bool

	// Remaining lists the dice values still available after the move
	Remaining []int

	// Won is set when the move ended the game; Winner holds the name
	Won    bool
	Winner string

	// TurnEnded is set when the turn was passed after the move
	TurnEnded bool

	Summary game.Summary
}

// EndTurnInput contains parameters for ending a turn
type EndTurnInput struct {
	GameID string
	Player models.PlayerID
}

// EndTurnOutput contains the state after the turn passed
type EndTurnOutput struct {
	NextPlayer models.PlayerID
	Summary    game.Summary
}

// GetGameInput contains parameters for retrieving a game
type GetGameInput struct {
	GameID string
}

// GetGameOutput contains a game with its derived status
type GetGameOutput struct {
	Game    *models.Game
	Summary game.Summary

	// Board is a plain text rendering of the position
	Board string
}

// ResetGameInput contains parameters for resetting a game
type ResetGameInput struct {
	GameID string
}

// ResetGameOutput contains the state after the reset
type ResetGameOutput struct {
	Summary game.Summary
}

// DeleteGameInput contains parameters for deleting a game
type DeleteGameInput struct {
	GameID string
}

// DeleteGameOutput contains the result of deleting a game
type DeleteGameOutput struct {
	Success bool
}

// ListActiveGamesInput contains parameters for listing games in progress
type ListActiveGamesInput struct {
}

// ListActiveGamesOutput lists games in progress, oldest first
type ListActiveGamesOutput struct {
	Games []*models.Game
}

// ListFinishedGamesInput contains parameters for listing finished games
type ListFinishedGamesInput struct {
	Limit int
}

// ListFinishedGamesOutput lists finished games, newest first
type ListFinishedGamesOutput struct {
	Games []*models.Game
}

// GetLeaderboardInput contains parameters for the rating leaderboard
type GetLeaderboardInput struct {
	Limit int
}

// GetLeaderboardOutput lists players by rating, highest first
type GetLeaderboardOutput struct {
	Players []*models.PlayerRecord
}
