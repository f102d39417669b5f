package session

// SessionError is a custom error type for session-level errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGameNotFound     SessionError = "game not found"
	ErrNotPlayersTurn   SessionError = "not this player's turn"
	ErrInvalidInput     SessionError = "invalid input"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilGameRepo      SessionError = "game repository cannot be nil"
	ErrNilPlayerRepo    SessionError = "player repository cannot be nil"
	ErrNilDiceRoller    SessionError = "dice roller cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
)
