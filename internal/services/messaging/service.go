package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/KirkDiggler/backgammon/internal/models"
	"github.com/KirkDiggler/backgammon/internal/services/session"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	mu   sync.Mutex
	rand *rand.Rand

	printer *message.Printer
}

// NewService creates a new messaging service. It is safe for concurrent use.
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand:    rand.New(rand.NewSource(seed)),
		printer: message.NewPrinter(language.English),
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// GetRollMessage returns a message for a player's roll
func (s *service) GetRollMessage(ctx context.Context, input *GetRollMessageInput) (*GetRollMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	roll := fmt.Sprintf("%d-%d", input.Dice1, input.Dice2)

	switch {
	case input.MoveCount == 0:
		return &GetRollMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s rolls %s and is shut out. Nothing to play.", name, roll),
				fmt.Sprintf("%s rolls %s. Every door is closed.", name, roll),
				fmt.Sprintf("%s rolls %s and watches the turn pass by.", name, roll),
			}),
			Tone: ToneSarcastic,
		}, nil
	case input.Dice1 == input.Dice2 && input.Dice1 >= 5:
		return &GetRollMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("Double %ds for %s! That's %d pips to spend.", input.Dice1, name, 4*input.Dice1),
				fmt.Sprintf("%s rolls %s. The dice are smiling today.", name, roll),
			}),
			Tone: ToneCelebration,
		}, nil
	case input.Dice1 == input.Dice2:
		return &GetRollMessageOutput{
			Message: fmt.Sprintf("%s rolls doubles, %s. Four moves to make.", name, roll),
			Tone:    ToneEncouraging,
		}, nil
	default:
		return &GetRollMessageOutput{
			Message: fmt.Sprintf("%s rolls %s.", name, roll),
			Tone:    ToneNeutral,
		}, nil
	}
}

// GetMoveMessage returns a message describing a move
func (s *service) GetMoveMessage(ctx context.Context, input *GetMoveMessageInput) (*GetMoveMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	name := input.PlayerName
	move := input.Move

	switch {
	case input.Won:
		return &GetMoveMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s bears off the last checker and wins!", name),
				fmt.Sprintf("Game over. %s clears the board and takes it.", name),
				fmt.Sprintf("%s is home free. Better luck next time, %s.", name, input.OpponentName),
			}),
			Tone: ToneCelebration,
		}, nil
	case move.Captured:
		return &GetMoveMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s hits on %s! %s goes to the bar.", name, move.To, input.OpponentName),
				fmt.Sprintf("Ouch. %s plays %s/%s and sends %s back to start.", name, move.From, move.To, input.OpponentName),
			}),
			Tone: ToneSarcastic,
		}, nil
	case move.From.IsBar():
		return &GetMoveMessageOutput{
			Message: fmt.Sprintf("%s enters from the bar on %s with a %d.", name, move.To, move.DiceValue),
			Tone:    ToneEncouraging,
		}, nil
	case move.To.IsOff():
		return &GetMoveMessageOutput{
			Message: fmt.Sprintf("%s bears off from %s with a %d.", name, move.From, move.DiceValue),
			Tone:    ToneNeutral,
		}, nil
	default:
		return &GetMoveMessageOutput{
			Message: fmt.Sprintf("%s plays %s/%s.", name, move.From, move.To),
			Tone:    ToneNeutral,
		}, nil
	}
}

// GetGameStatusMessage returns a message describing the race and position
func (s *service) GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	summary := input.Summary
	p1, p2 := summary.Player1, summary.Player2

	switch summary.Status {
	case models.GameStatusNotStarted:
		return &GetGameStatusMessageOutput{
			Message: fmt.Sprintf("%s and %s are waiting to start.", p1.Name, p2.Name),
			Tone:    ToneNeutral,
		}, nil
	case models.GameStatusFinished:
		winner, loser := p1, p2
		if summary.Winner == models.Player2 {
			winner, loser = p2, p1
		}
		return &GetGameStatusMessageOutput{
			Message: s.printer.Sprintf("%s won after %d turns with %s still %d pips from home.",
				winner.Name, summary.TurnCount, loser.Name, loser.PipCount),
			Tone: ToneCelebration,
		}, nil
	}

	leader, trailer := p1, p2
	if p2.PipCount < p1.PipCount {
		leader, trailer = p2, p1
	}
	lead := trailer.PipCount - leader.PipCount

	var msg string
	switch {
	case lead == 0:
		msg = s.printer.Sprintf("Turn %d: dead even race at %d pips each.", summary.TurnCount, leader.PipCount)
	case lead*10 >= trailer.PipCount:
		msg = s.printer.Sprintf("Turn %d: %s is well ahead, %d to %d in the race.", summary.TurnCount, leader.Name, leader.PipCount, trailer.PipCount)
	default:
		msg = s.printer.Sprintf("Turn %d: %s leads by %d pips (%d to %d).", summary.TurnCount, leader.Name, lead, leader.PipCount, trailer.PipCount)
	}
	if p1.OnBar+p2.OnBar > 0 {
		msg += s.printer.Sprintf(" On the bar: %s %d, %s %d.", p1.Name, p1.OnBar, p2.Name, p2.OnBar)
	}

	return &GetGameStatusMessageOutput{
		Message: msg,
		Tone:    ToneNeutral,
	}, nil
}

// GetErrorMessage returns a user-friendly explanation of a rule error
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	var moveErr *models.MoveError
	err := input.Err

	var msg string
	switch {
	case errors.Is(err, models.ErrGameNotStarted):
		msg = "The game hasn't started yet."
	case errors.Is(err, models.ErrGameAlreadyStarted):
		msg = "The game is already underway."
	case errors.Is(err, models.ErrGameAlreadyFinished):
		msg = "That game is over. Start another one?"
	case errors.Is(err, session.ErrNotPlayersTurn):
		msg = "Easy there, it's not your turn."
	case errors.Is(err, session.ErrGameNotFound):
		msg = "That game doesn't exist."
	case errors.Is(err, models.ErrDiceNotRolled):
		msg = "Roll the dice first."
	case errors.Is(err, models.ErrCannotBearOff):
		msg = "You can't bear off that checker yet. Bring everyone home first, and play the far checkers before using a high die."
	case errors.Is(err, models.ErrInvalidPoint):
		msg = "That point isn't on the board. Points run from 0 to 23."
	case errors.As(err, &moveErr):
		msg = fmt.Sprintf("You can't move from %s to %s: %s.", moveErr.From, moveErr.To, moveErr.Reason)
	case errors.Is(err, models.ErrInvalidMove):
		msg = "That move isn't allowed right now."
	default:
		return &GetErrorMessageOutput{
			Message: "Something went wrong. Try again in a moment.",
			Tone:    ToneNeutral,
		}, nil
	}

	return &GetErrorMessageOutput{
		Message: msg,
		Tone:    ToneSarcastic,
	}, nil
}
