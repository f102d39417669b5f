package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/KirkDiggler/backgammon/internal/common/clock"
	"github.com/KirkDiggler/backgammon/internal/common/uuid"
	"github.com/KirkDiggler/backgammon/internal/dice"
	"github.com/KirkDiggler/backgammon/internal/game"
	"github.com/KirkDiggler/backgammon/internal/models"
	gameRepo "github.com/KirkDiggler/backgammon/internal/repositories/game"
	playerRepo "github.com/KirkDiggler/backgammon/internal/repositories/player"
	"golang.org/x/text/cases"
)

// service implements the Service interface
type service struct {
	autoEndTurn   bool
	gameRepo      gameRepo.Repository
	playerRepo    playerRepo.Repository
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID

	// locks holds one mutex per game ID while any call on it is in flight
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a new session service with the provided configuration
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.GameRepo == nil {
		return nil, ErrNilGameRepo
	}

	if cfg.PlayerRepo == nil {
		return nil, ErrNilPlayerRepo
	}

	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		autoEndTurn:   cfg.AutoEndTurn,
		gameRepo:      cfg.GameRepo,
		playerRepo:    cfg.PlayerRepo,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		locks:         make(map[string]*gameLock),
	}, nil
}

// lock serializes every call on one game and returns the unlock function.
// The entry is dropped once no call holds or waits on it.
func (s *service) lock(gameID string) func() {
	s.mu.Lock()
	l, ok := s.locks[gameID]
	if !ok {
		l = &gameLock{}
		s.locks[gameID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, gameID)
		}
		s.mu.Unlock()
	}
}

// load fetches a game and rebuilds its engine
func (s *service) load(ctx context.Context, gameID string) (*models.Game, *game.Game, error) {
	if gameID == "" {
		return nil, nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}

	record, err := s.gameRepo.GetGame(ctx, &gameRepo.GetGameInput{
		GameID: gameID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, nil, ErrGameNotFound
		}
		return nil, nil, fmt.Errorf("failed to get game: %w", err)
	}

	g, err := game.Restore(record.State, &game.Config{
		DiceRoller: s.diceRoller,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to restore game %s: %w", gameID, err)
	}

	return record, g, nil
}

// save writes the engine state back to the record
func (s *service) save(ctx context.Context, record *models.Game, g *game.Game) error {
	now := s.clock.Now()
	record.State = g.Snapshot()
	record.UpdatedAt = now
	switch {
	case g.Status() == models.GameStatusFinished && record.FinishedAt == nil:
		record.FinishedAt = &now
	case g.Status() != models.GameStatusFinished:
		record.FinishedAt = nil
	}

	if err := s.gameRepo.SaveGame(ctx, &gameRepo.SaveGameInput{
		Game: record,
	}); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// checkTurn rejects a call made on behalf of the player not to move
func checkTurn(g *game.Game, player models.PlayerID) error {
	if player == models.NoPlayer {
		return nil
	}
	if err := player.Validate(); err != nil {
		return err
	}
	if current := g.CurrentPlayer().ID; player != current {
		return fmt.Errorf("%w: %s to move", ErrNotPlayersTurn, current)
	}
	return nil
}

// CreateGame creates a new game
func (s *service) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidInput)
	}

	g := game.New(&game.Config{
		Player1Name: input.Player1Name,
		Player2Name: input.Player2Name,
		DiceRoller:  s.diceRoller,
	})

	// Ratings are keyed by folded name
	summary := g.Summary()
	fold := cases.Fold()
	if fold.String(strings.TrimSpace(summary.Player1.Name)) == fold.String(strings.TrimSpace(summary.Player2.Name)) {
		return nil, fmt.Errorf("%w: players must have different names", ErrInvalidInput)
	}

	if input.Start {
		if err := g.StartGame(); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	record := &models.Game{
		ID:        s.uuidGenerator.NewUUID(),
		CreatedAt: now,
	}
	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	return &CreateGameOutput{
		GameID:  record.ID,
		Summary: g.Summary(),
	}, nil
}

// StartGame sets up the opening position
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	if err := g.StartGame(); err != nil {
		return nil, err
	}

	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	return &StartGameOutput{
		Summary: g.Summary(),
	}, nil
}

// RollDice rolls for the current player. With AutoEndTurn set, a roll that
// allows no move passes the turn.
func (s *service) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if err := checkTurn(g, input.Player); err != nil {
		return nil, err
	}

	d1, d2, err := g.RollDice()
	if err != nil {
		return nil, err
	}

	output := &RollDiceOutput{
		Dice1:      d1,
		Dice2:      d2,
		ValidMoves: g.ValidMoves(),
	}
	if s.autoEndTurn && len(output.ValidMoves) == 0 {
		if err := g.EndTurn(); err != nil {
			return nil, err
		}
		output.TurnEnded = true
	}

	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	output.Summary = g.Summary()
	return output, nil
}

// GetValidMoves lists the legal single moves for the current player
func (s *service) GetValidMoves(ctx context.Context, input *GetValidMovesInput) (*GetValidMovesOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	_, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetValidMovesOutput{
		Player:    g.CurrentPlayer().ID,
		Available: g.Dice().Available(),
		Moves:     g.ValidMoves(),
	}, nil
}

// MakeMove moves one checker. A win is recorded against both players'
// ratings; with AutoEndTurn set, the turn passes once nothing is left to
// play.
func (s *service) MakeMove(ctx context.Context, input *MakeMoveInput) (*MakeMoveOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if err := checkTurn(g, input.Player); err != nil {
		return nil, err
	}

	result, err := g.MakeMove(input.From, input.To)
	if err != nil {
		return nil, err
	}

	output := &MakeMoveOutput{
		Move:      result.Move,
		Captured:  result.Captured != nil,
		Remaining: result.Remaining,
		Won:       result.Won,
	}
	if !result.Won && s.autoEndTurn && !g.HasValidMoves() {
		if err := g.EndTurn(); err != nil {
			return nil, err
		}
		output.TurnEnded = true
	}

	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	if result.Won {
		winner := g.Winner()
		output.Winner = winner.Name
		s.recordResult(ctx, record, g)
	}

	output.Summary = g.Summary()
	return output, nil
}

// recordResult updates player ratings. The game is already saved, so a
// failure here is logged rather than returned.
func (s *service) recordResult(ctx context.Context, record *models.Game, g *game.Game) {
	winner := g.Winner()
	loser, err := g.Player(winner.ID.Opponent())
	if err != nil {
		log.Printf("Error finding loser for game %s: %v", record.ID, err)
		return
	}

	finishedAt := record.UpdatedAt
	if record.FinishedAt != nil {
		finishedAt = *record.FinishedAt
	}

	output, err := s.playerRepo.RecordResult(ctx, &playerRepo.RecordResultInput{
		GameID:     record.ID,
		WinnerName: winner.Name,
		LoserName:  loser.Name,
		FinishedAt: finishedAt,
	})
	if err != nil {
		log.Printf("Error recording result for game %s: %v", record.ID, err)
		return
	}

	log.Printf("Game %s won by %s (rating %.0f), %s now %.0f",
		record.ID, output.Winner.Name, output.Winner.Rating, output.Loser.Name, output.Loser.Rating)
}

// EndTurn passes play to the other player
func (s *service) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	if err := checkTurn(g, input.Player); err != nil {
		return nil, err
	}

	if err := g.EndTurn(); err != nil {
		return nil, err
	}

	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	return &EndTurnOutput{
		NextPlayer: g.CurrentPlayer().ID,
		Summary:    g.Summary(),
	}, nil
}

// GetGame returns a game and its status
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetGameOutput{
		Game:    record,
		Summary: g.Summary(),
		Board:   g.String(),
	}, nil
}

// ResetGame returns a game to the not-started state
func (s *service) ResetGame(ctx context.Context, input *ResetGameInput) (*ResetGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	record, g, err := s.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	g.ResetGame()

	if err := s.save(ctx, record, g); err != nil {
		return nil, err
	}

	return &ResetGameOutput{
		Summary: g.Summary(),
	}, nil
}

// DeleteGame removes a game
func (s *service) DeleteGame(ctx context.Context, input *DeleteGameInput) (*DeleteGameOutput, error) {
	if input == nil || input.GameID == "" {
		return nil, fmt.Errorf("%w: game ID is required", ErrInvalidInput)
	}
	defer s.lock(input.GameID)()

	err := s.gameRepo.DeleteGame(ctx, &gameRepo.DeleteGameInput{
		GameID: input.GameID,
	})
	if err != nil {
		if errors.Is(err, gameRepo.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	return &DeleteGameOutput{
		Success: true,
	}, nil
}

// ListActiveGames lists games in progress
func (s *service) ListActiveGames(ctx context.Context, input *ListActiveGamesInput) (*ListActiveGamesOutput, error) {
	output, err := s.gameRepo.GetActiveGames(ctx, &gameRepo.GetActiveGamesInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	return &ListActiveGamesOutput{
		Games: output.Games,
	}, nil
}

// ListFinishedGames lists the most recently finished games
func (s *service) ListFinishedGames(ctx context.Context, input *ListFinishedGamesInput) (*ListFinishedGamesOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	output, err := s.gameRepo.GetFinishedGames(ctx, &gameRepo.GetFinishedGamesInput{
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list finished games: %w", err)
	}

	return &ListFinishedGamesOutput{
		Games: output.Games,
	}, nil
}

// GetLeaderboard lists players by rating
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	limit := 0
	if input != nil {
		limit = input.Limit
	}

	output, err := s.playerRepo.GetTopPlayers(ctx, &playerRepo.GetTopPlayersInput{
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return &GetLeaderboardOutput{
		Players: output.Players,
	}, nil
}
