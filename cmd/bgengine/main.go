package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/backgammon/internal/common/clock"
	"github.com/KirkDiggler/backgammon/internal/common/uuid"
	"github.com/KirkDiggler/backgammon/internal/config"
	"github.com/KirkDiggler/backgammon/internal/dice"
	"github.com/KirkDiggler/backgammon/internal/repositories/game"
	"github.com/KirkDiggler/backgammon/internal/repositories/player"
	"github.com/KirkDiggler/backgammon/internal/services/messaging"
	"github.com/KirkDiggler/backgammon/internal/services/session"
	"github.com/redis/go-redis/v9"
)

// errTurnLimit is returned when a game does not finish within MaxTurns
var errTurnLimit = errors.New("turn limit reached")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize repositories
	gameRepo, err := game.NewRedis(&game.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create game repository: %v", err)
	}

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create player repository: %v", err)
	}

	// Initialize services
	sessionSvc, err := session.New(&session.Config{
		AutoEndTurn:   cfg.AutoEndTurn,
		GameRepo:      gameRepo,
		PlayerRepo:    playerRepo,
		DiceRoller:    dice.New(&dice.Config{Seed: cfg.DiceSeed}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create session service: %v", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Seed: cfg.DiceSeed,
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	d := &driver{
		cfg:      cfg,
		sessions: sessionSvc,
		messages: messagingSvc,
	}

	for i := 1; i <= cfg.Games; i++ {
		if ctx.Err() != nil {
			break
		}

		gameID, err := d.playGame(ctx)
		if err != nil {
			log.Printf("Game %d (%s) stopped: %v", i, gameID, err)
			d.explain(ctx, err)
			continue
		}
		d.logStatus(ctx, gameID)
	}

	leaderboard, err := sessionSvc.GetLeaderboard(context.Background(), &session.GetLeaderboardInput{Limit: 10})
	if err != nil {
		log.Fatalf("Failed to get leaderboard: %v", err)
	}
	for rank, p := range leaderboard.Players {
		log.Printf("%2d. %-16s %4.0f (±%.0f) %d-%d", rank+1, p.Name, p.Rating, p.RatingDeviation, p.Wins, p.Losses)
	}
}

// driver plays games through the session service by always choosing the
// first legal move
type driver struct {
	cfg      *config.Config
	sessions session.Service
	messages messaging.Service
}

// playGame plays one game to the end and returns its ID
func (d *driver) playGame(ctx context.Context) (string, error) {
	created, err := d.sessions.CreateGame(ctx, &session.CreateGameInput{
		Player1Name: d.cfg.Player1Name,
		Player2Name: d.cfg.Player2Name,
		Start:       true,
	})
	if err != nil {
		return "", err
	}
	gameID := created.GameID

	for turn := 0; turn < d.cfg.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return gameID, err
		}

		won, err := d.playTurn(ctx, gameID)
		if err != nil {
			return gameID, err
		}
		if won {
			return gameID, nil
		}
	}

	return gameID, errTurnLimit
}

// playTurn rolls and moves until the turn passes, reporting whether the
// game ended
func (d *driver) playTurn(ctx context.Context, gameID string) (bool, error) {
	roll, err := d.sessions.RollDice(ctx, &session.RollDiceInput{GameID: gameID})
	if err != nil {
		return false, err
	}

	if d.cfg.Verbose {
		// Once the turn has passed the summary belongs to the next player
		isPlayer1 := roll.Summary.CurrentPlayer == roll.Summary.Player1.ID
		if roll.TurnEnded {
			isPlayer1 = !isPlayer1
		}
		mover := roll.Summary.Player2.Name
		if isPlayer1 {
			mover = roll.Summary.Player1.Name
		}
		d.logRoll(ctx, mover, roll)
	}
	if roll.TurnEnded {
		return false, nil
	}

	for {
		moves, err := d.sessions.GetValidMoves(ctx, &session.GetValidMovesInput{GameID: gameID})
		if err != nil {
			return false, err
		}
		if len(moves.Moves) == 0 {
			break
		}

		move, err := d.sessions.MakeMove(ctx, &session.MakeMoveInput{
			GameID: gameID,
			Player: moves.Player,
			From:   moves.Moves[0].From,
			To:     moves.Moves[0].To,
		})
		if err != nil {
			return false, err
		}
		if d.cfg.Verbose {
			d.logMove(ctx, move)
		}
		if move.Won {
			return true, nil
		}
		if move.TurnEnded {
			return false, nil
		}
	}

	if !d.cfg.AutoEndTurn {
		if _, err := d.sessions.EndTurn(ctx, &session.EndTurnInput{GameID: gameID}); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (d *driver) logRoll(ctx context.Context, mover string, roll *session.RollDiceOutput) {
	output, err := d.messages.GetRollMessage(ctx, &messaging.GetRollMessageInput{
		PlayerName: mover,
		Dice1:      roll.Dice1,
		Dice2:      roll.Dice2,
		MoveCount:  len(roll.ValidMoves),
	})
	if err != nil {
		log.Printf("Error getting roll message: %v", err)
		return
	}
	log.Println(output.Message)
}

func (d *driver) logMove(ctx context.Context, move *session.MakeMoveOutput) {
	names := map[bool]string{
		true:  move.Summary.Player1.Name,
		false: move.Summary.Player2.Name,
	}
	isPlayer1 := move.Move.Player == move.Summary.Player1.ID

	output, err := d.messages.GetMoveMessage(ctx, &messaging.GetMoveMessageInput{
		PlayerName:   names[isPlayer1],
		OpponentName: names[!isPlayer1],
		Move:         move.Move,
		Won:          move.Won,
	})
	if err != nil {
		log.Printf("Error getting move message: %v", err)
		return
	}
	log.Println(output.Message)
}

func (d *driver) logStatus(ctx context.Context, gameID string) {
	current, err := d.sessions.GetGame(ctx, &session.GetGameInput{GameID: gameID})
	if err != nil {
		log.Printf("Error getting game %s: %v", gameID, err)
		return
	}

	output, err := d.messages.GetGameStatusMessage(ctx, &messaging.GetGameStatusMessageInput{
		Summary: current.Summary,
	})
	if err != nil {
		log.Printf("Error getting status message: %v", err)
		return
	}
	log.Printf("Game %s: %s", gameID, output.Message)
}

func (d *driver) explain(ctx context.Context, err error) {
	output, msgErr := d.messages.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		return
	}
	log.Println(output.Message)
}
