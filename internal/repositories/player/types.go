package player

import (
	"time"

	"github.com/KirkDiggler/backgammon/internal/models"
)

// SavePlayerInput contains parameters for saving a player
type SavePlayerInput struct {
	Player *models.PlayerRecord
}

// GetPlayerInput contains parameters for retrieving a player
type GetPlayerInput struct {
	Name string
}

// RecordResultInput describes a finished game
type RecordResultInput struct {
	GameID     string
	WinnerName string
	LoserName  string
	FinishedAt time.Time
}

// RecordResultOutput contains both records after the update
type RecordResultOutput struct {
	Winner *models.PlayerRecord
	Loser  *models.PlayerRecord
}

// GetTopPlayersInput contains parameters for the rating leaderboard
type GetTopPlayersInput struct {
	// Limit caps the number of players returned; zero means all
	Limit int
}

// GetTopPlayersOutput lists players by rating, highest first
type GetTopPlayersOutput struct {
	Players []*models.PlayerRecord
}
