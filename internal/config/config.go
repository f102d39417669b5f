// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings for the self-play command
type Config struct {
	// Redis connection
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// DiceSeed fixes the dice sequence; zero seeds from the clock
	DiceSeed int64 `env:"DICE_SEED"`

	// Games is the number of games to play
	Games int `env:"GAMES" envDefault:"1"`

	Player1Name string `env:"PLAYER1_NAME" envDefault:"White"`
	Player2Name string `env:"PLAYER2_NAME" envDefault:"Black"`

	// AutoEndTurn passes the turn once nothing is left to play
	AutoEndTurn bool `env:"AUTO_END_TURN" envDefault:"true"`

	// MaxTurns abandons a game that runs longer than this
	MaxTurns int `env:"MAX_TURNS" envDefault:"2000"`

	// Verbose logs every roll and move
	Verbose bool `env:"VERBOSE"`
}

// Load reads the given .env files, or ./.env when none are named, and then
// parses the environment. Missing files are ignored and variables already
// set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the values make sense together
func (c *Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("GAMES must be at least 1, got %d", c.Games)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("MAX_TURNS must be at least 1, got %d", c.MaxTurns)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB cannot be negative, got %d", c.RedisDB)
	}
	if c.Player1Name == c.Player2Name {
		return fmt.Errorf("player names must differ, both are %q", c.Player1Name)
	}
	return nil
}
