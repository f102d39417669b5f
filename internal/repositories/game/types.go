package game

import "github.com/KirkDiggler/backgammon/internal/models"

type SaveGameInput struct {
	Game *models.Game
}

type GetGameInput struct {
	GameID string
}

type DeleteGameInput struct {
	GameID string
}

type GetActiveGamesInput struct {
}

type GetActiveGamesOutput struct {
	Games []*models.Game
}

type GetFinishedGamesInput struct {
	// Limit caps the number of games returned; zero means all
	Limit int
}

type GetFinishedGamesOutput struct {
	Games []*models.Game
}
