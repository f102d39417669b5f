package player

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/backgammon/internal/repositories/player Repository

import (
	"context"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// Repository defines the interface for player record persistence. Players
// are keyed by name, compared without regard to case.
type Repository interface {
	// SavePlayer persists a player record
	SavePlayer(ctx context.Context, input *SavePlayerInput) error

	// GetPlayer retrieves a player record by name
	GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.PlayerRecord, error)

	// RecordResult applies a finished game to both players' records and ratings
	RecordResult(ctx context.Context, input *RecordResultInput) (*RecordResultOutput, error)

	// GetTopPlayers retrieves the highest rated players
	GetTopPlayers(ctx context.Context, input *GetTopPlayersInput) (*GetTopPlayersOutput, error)
}
