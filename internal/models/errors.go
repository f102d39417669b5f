package models

import "fmt"

// GameError is a custom error type for rule violations
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidMove          GameError = "invalid move"
	ErrGameNotStarted       GameError = "game not started"
	ErrGameAlreadyStarted   GameError = "game already started"
	ErrGameAlreadyFinished  GameError = "game already finished"
	ErrInvalidPlayer        GameError = "invalid player"
	ErrInvalidDiceValue     GameError = "invalid dice value"
	ErrDiceNotRolled        GameError = "dice not rolled"
	ErrDiceValueUnavailable GameError = "dice value not available"
	ErrCannotBearOff        GameError = "cannot bear off"
	ErrInvalidPoint         GameError = "invalid point"
	ErrCheckerBorneOff      GameError = "checker already borne off"
	ErrCheckerNotOnBar      GameError = "checker not on bar"
	ErrInvalidLayout        GameError = "invalid layout"
	ErrInvalidSnapshot      GameError = "invalid snapshot"
)

// MoveError describes why a specific move was rejected. It unwraps to its
// Kind so callers can match with errors.Is.
type MoveError struct {
	Kind   GameError
	From   Endpoint
	To     Endpoint
	Reason string
}

// NewMoveError builds an ErrInvalidMove for the given endpoints
func NewMoveError(from, to Endpoint, reason string) *MoveError {
	return &MoveError{
		Kind:   ErrInvalidMove,
		From:   from,
		To:     to,
		Reason: reason,
	}
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s from %s to %s: %s", e.Kind, e.From, e.To, e.Reason)
}

// Unwrap returns the error kind
func (e *MoveError) Unwrap() error {
	return e.Kind
}
