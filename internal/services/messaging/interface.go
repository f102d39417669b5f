package messaging

import "context"

// Service is the interface for the messaging service
type Service interface {
	// GetRollMessage returns a message for a player's roll
	GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error)

	// GetMoveMessage returns a message describing a move
	GetMoveMessage(ctx context.Context, input *GetMoveMessageInput) (*GetMoveMessageOutput, error)

	// GetGameStatusMessage returns a message describing the race and position
	GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error)

	// GetErrorMessage returns a user-friendly explanation of a rule error
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
