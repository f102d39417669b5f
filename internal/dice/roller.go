package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/backgammon/internal/dice Roller

// Roller produces single die values
type Roller interface {
	// Roll returns a value in [1, sides]
	Roll(sides int) int
}

// RandomRoller provides dice rolling functionality. It is safe to share
// between games.
type RandomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new dice roller
func New(cfg *Config) *RandomRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &RandomRoller{
		random: random,
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *RandomRoller) Roll(sides int) int {
	if sides < 1 {
		sides = Sides
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}
