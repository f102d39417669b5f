package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/KirkDiggler/backgammon/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	gameKeyPrefix    = "game:"
	activeGamesKey   = "active_games"
	finishedGamesKey = "finished_games" // sorted by finish time
)

// ErrGameNotFound is returned when a game is not found
var ErrGameNotFound = errors.New("game not found")

// Config holds configuration for the Redis game repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed game repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func gameKey(gameID string) string {
	return gameKeyPrefix + gameID
}

// SaveGame persists a game snapshot and keeps the status indexes in step
func (r *redisRepository) SaveGame(ctx context.Context, input *SaveGameInput) error {
	if input == nil || input.Game == nil {
		return errors.New("input and game cannot be nil")
	}
	if input.Game.ID == "" {
		return errors.New("game ID cannot be empty")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, gameKey(input.Game.ID), gameJSON, 0)

	switch input.Game.State.Status {
	case models.GameStatusInProgress:
		pipe.SAdd(ctx, activeGamesKey, input.Game.ID)
		pipe.ZRem(ctx, finishedGamesKey, input.Game.ID)
	case models.GameStatusFinished:
		pipe.SRem(ctx, activeGamesKey, input.Game.ID)
		finishedAt := input.Game.UpdatedAt
		if input.Game.FinishedAt != nil {
			finishedAt = *input.Game.FinishedAt
		}
		pipe.ZAdd(ctx, finishedGamesKey, redis.Z{
			Score:  float64(finishedAt.UnixNano()),
			Member: input.Game.ID,
		})
	default:
		pipe.SRem(ctx, activeGamesKey, input.Game.ID)
		pipe.ZRem(ctx, finishedGamesKey, input.Game.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

// GetGame retrieves a game by ID from Redis
func (r *redisRepository) GetGame(ctx context.Context, input *GetGameInput) (*models.Game, error) {
	if input == nil || input.GameID == "" {
		return nil, errors.New("input and game ID cannot be empty")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GameID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var game models.Game
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// DeleteGame removes a game and its index entries
func (r *redisRepository) DeleteGame(ctx context.Context, input *DeleteGameInput) error {
	if input == nil || input.GameID == "" {
		return errors.New("input and game ID cannot be empty")
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, gameKey(input.GameID))
	pipe.SRem(ctx, activeGamesKey, input.GameID)
	pipe.ZRem(ctx, finishedGamesKey, input.GameID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if del.Val() == 0 {
		return ErrGameNotFound
	}

	return nil
}

// GetActiveGames retrieves all games in progress
func (r *redisRepository) GetActiveGames(ctx context.Context, input *GetActiveGamesInput) (*GetActiveGamesOutput, error) {
	gameIDs, err := r.client.SMembers(ctx, activeGamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active game IDs: %w", err)
	}

	games, err := r.getGames(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	// Sets are unordered
	slices.SortFunc(games, func(a, b *models.Game) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return &GetActiveGamesOutput{
		Games: games,
	}, nil
}

// GetFinishedGames retrieves finished games, newest first
func (r *redisRepository) GetFinishedGames(ctx context.Context, input *GetFinishedGamesInput) (*GetFinishedGamesOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	gameIDs, err := r.client.ZRevRange(ctx, finishedGamesKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get finished game IDs: %w", err)
	}

	games, err := r.getGames(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	return &GetFinishedGamesOutput{
		Games: games,
	}, nil
}

// getGames fetches games in one pipeline, keeping the order of gameIDs and
// skipping games deleted since the index was read
func (r *redisRepository) getGames(ctx context.Context, gameIDs []string) ([]*models.Game, error) {
	if len(gameIDs) == 0 {
		return []*models.Game{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(gameIDs))
	for i, gameID := range gameIDs {
		cmds[i] = pipe.Get(ctx, gameKey(gameID))
	}

	// A missing key fails the pipeline with redis.Nil; those are handled per command
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	games := make([]*models.Game, 0, len(gameIDs))
	for i, cmd := range cmds {
		gameJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get game %s: %w", gameIDs[i], err)
		}

		var game models.Game
		if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameIDs[i], err)
		}

		games = append(games, &game)
	}

	return games, nil
}
