package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/backgammon/internal/models"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/cases"
)

const (
	// Key prefixes for Redis
	playerKeyPrefix = "player:"
	ratingsKey      = "player_ratings"

	// maxRetries bounds optimistic transaction retries in RecordResult
	maxRetries = 5
)

var (
	// ErrPlayerNotFound is returned when a player is not found
	ErrPlayerNotFound = errors.New("player not found")

	// ErrSamePlayer is returned when a result names one player twice
	ErrSamePlayer = errors.New("winner and loser are the same player")
)

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
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

// playerKey folds the name so "Alice" and "ALICE" share a record
func playerKey(name string) string {
	return playerKeyPrefix + cases.Fold().String(strings.TrimSpace(name))
}

// getter is the read side shared by the client and a watched transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func loadRecord(ctx context.Context, g getter, key string) (*models.PlayerRecord, error) {
	playerJSON, err := g.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var record models.PlayerRecord
	if err := json.Unmarshal([]byte(playerJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &record, nil
}

func writeRecord(ctx context.Context, pipe redis.Pipeliner, record *models.PlayerRecord) error {
	playerJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	key := playerKey(record.Name)
	pipe.Set(ctx, key, playerJSON, 0)
	pipe.ZAdd(ctx, ratingsKey, redis.Z{
		Score:  record.Rating,
		Member: key,
	})
	return nil
}

// SavePlayer persists a player record to Redis
func (r *redisRepository) SavePlayer(ctx context.Context, input *SavePlayerInput) error {
	if input == nil || input.Player == nil {
		return errors.New("input and player cannot be nil")
	}
	if strings.TrimSpace(input.Player.Name) == "" {
		return errors.New("player name cannot be empty")
	}

	pipe := r.client.TxPipeline()
	if err := writeRecord(ctx, pipe, input.Player); err != nil {
		return err
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player record by name from Redis
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.PlayerRecord, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("input and player name cannot be empty")
	}

	return loadRecord(ctx, r.client, playerKey(input.Name))
}

// RecordResult updates both records inside a WATCH transaction so that two
// results for the same player never overwrite each other. Unknown players
// start from the default rating.
func (r *redisRepository) RecordResult(ctx context.Context, input *RecordResultInput) (*RecordResultOutput, error) {
	if input == nil || strings.TrimSpace(input.WinnerName) == "" || strings.TrimSpace(input.LoserName) == "" {
		return nil, errors.New("input, winner and loser names cannot be empty")
	}

	winnerKey := playerKey(input.WinnerName)
	loserKey := playerKey(input.LoserName)
	if winnerKey == loserKey {
		return nil, ErrSamePlayer
	}

	var output *RecordResultOutput
	txf := func(tx *redis.Tx) error {
		winner, err := loadOrNew(ctx, tx, winnerKey, input.WinnerName)
		if err != nil {
			return err
		}
		loser, err := loadOrNew(ctx, tx, loserKey, input.LoserName)
		if err != nil {
			return err
		}

		rate(winner, loser)
		for _, record := range []*models.PlayerRecord{winner, loser} {
			record.GamesPlayed++
			record.LastGameID = input.GameID
			record.UpdatedAt = input.FinishedAt
		}
		winner.Wins++
		loser.Losses++

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if err := writeRecord(ctx, pipe, winner); err != nil {
				return err
			}
			return writeRecord(ctx, pipe, loser)
		})
		if err != nil {
			return err
		}

		output = &RecordResultOutput{
			Winner: winner,
			Loser:  loser,
		}
		return nil
	}

	for i := 0; i < maxRetries; i++ {
		err := r.client.Watch(ctx, txf, winnerKey, loserKey)
		if err == nil {
			return output, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, fmt.Errorf("failed to record result: %w", err)
		}
	}

	return nil, fmt.Errorf("failed to record result: %w", redis.TxFailedErr)
}

func loadOrNew(ctx context.Context, g getter, key, name string) (*models.PlayerRecord, error) {
	record, err := loadRecord(ctx, g, key)
	if errors.Is(err, ErrPlayerNotFound) {
		return newRecord(strings.TrimSpace(name)), nil
	}
	return record, err
}

// GetTopPlayers retrieves players ordered by rating, highest first
func (r *redisRepository) GetTopPlayers(ctx context.Context, input *GetTopPlayersInput) (*GetTopPlayersOutput, error) {
	stop := int64(-1)
	if input != nil && input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	keys, err := r.client.ZRevRange(ctx, ratingsKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player ratings: %w", err)
	}
	if len(keys) == 0 {
		return &GetTopPlayersOutput{
			Players: []*models.PlayerRecord{},
		}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}

	players := make([]*models.PlayerRecord, 0, len(keys))
	for i, cmd := range cmds {
		playerJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get player %s: %w", keys[i], err)
		}

		var record models.PlayerRecord
		if err := json.Unmarshal([]byte(playerJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal player %s: %w", keys[i], err)
		}
		players = append(players, &record)
	}

	return &GetTopPlayersOutput{
		Players: players,
	}, nil
}
