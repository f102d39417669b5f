package messaging

import (
	"github.com/KirkDiggler/backgammon/internal/game"
	"github.com/KirkDiggler/backgammon/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneSarcastic is a sarcastic tone
	ToneSarcastic MessageTone = "sarcastic"

	// ToneEncouraging is an encouraging tone
	ToneEncouraging MessageTone = "encouraging"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes message selection for testing; zero seeds from the clock
	Seed int64
}

// GetRollMessageInput contains parameters for getting a roll message
type GetRollMessageInput struct {
	PlayerName string
	Dice1      int
	Dice2      int

	// MoveCount is the number of legal single moves the roll allows
	MoveCount int
}

// GetRollMessageOutput contains the result of getting a roll message
type GetRollMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetMoveMessageInput contains parameters for getting a move message
type GetMoveMessageInput struct {
	PlayerName   string
	OpponentName string
	Move         models.MoveRecord
	Won          bool
}

// GetMoveMessageOutput contains the result of getting a move message
type GetMoveMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameStatusMessageInput contains parameters for getting a status message
type GetGameStatusMessageInput struct {
	Summary game.Summary
}

// GetGameStatusMessageOutput contains the result of getting a status message
type GetGameStatusMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	Err error
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	Message string
	Tone    MessageTone
}
