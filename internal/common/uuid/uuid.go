package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/backgammon/internal/common/uuid UUID

type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random version 4 identifiers for games

type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
