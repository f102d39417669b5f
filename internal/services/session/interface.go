package session

import "context"

// Service defines the interface for playing persisted backgammon games
type Service interface {
	// CreateGame creates a new game, optionally starting it
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)

	// StartGame sets up the opening position
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// RollDice rolls for the current player
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// GetValidMoves lists the legal single moves for the current player
	GetValidMoves(ctx context.Context, input *GetValidMovesInput) (*GetValidMovesOutput, error)

	// MakeMove moves one checker for the current player
	MakeMove(ctx context.Context, input *MakeMoveInput) (*MakeMoveOutput, error)

	// EndTurn passes play to the other player
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)

	// GetGame returns a game and its status
	GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error)

	// ResetGame returns a game to the not-started state
	ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error)

	// DeleteGame removes a game
	DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error)

	// ListActiveGames lists games in progress
	ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error)

	// ListFinishedGames lists the most recently finished games
	ListFinishedGames(ctx context.Context, input *ListFinishedGamesInput) (*ListFinishedGamesOutput, error)

	// GetLeaderboard lists players by rating
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)
}
