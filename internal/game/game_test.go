package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/KirkDiggler/backgammon/internal/dice"
	diceMocks "github.com/KirkDiggler/backgammon/internal/dice/mocks"
	"github.com/KirkDiggler/backgammon/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type GameTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockDiceRoller *diceMocks.MockRoller
	game           *Game
}

func (s *GameTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.game = New(&Config{
		Player1Name: "White",
		Player2Name: "Black",
		DiceRoller:  s.mockDiceRoller,
	})
}

func (s *GameTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// roll makes the next RollDice return d1 and d2
func (s *GameTestSuite) roll(d1, d2 int) {
	gomock.InOrder(
		s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(d1),
		s.mockDiceRoller.EXPECT().Roll(dice.Sides).Return(d2),
	)
	got1, got2, err := s.game.RollDice()
	s.Require().NoError(err)
	s.Require().Equal(d1, got1)
	s.Require().Equal(d2, got2)
}

// position starts the game and replaces the opening with the given
// checkers. Checkers not placed are borne off.
func (s *GameTestSuite) position(p1, p2 map[int]int) {
	s.Require().NoError(s.game.StartGame())

	var layout models.Layout
	for player, points := range map[models.PlayerID]map[int]int{models.Player1: p1, models.Player2: p2} {
		placed := 0
		for point, count := range points {
			layout.Points[point] = models.Stack{Owner: player, Count: count}
			placed += count
		}
		layout.Off[player.Index()] = models.CheckersPerPlayer - placed
	}
	s.Require().NoError(s.game.Board().SetLayout(layout))
}

func (s *GameTestSuite) count(point int) int {
	n, err := s.game.PointCount(point)
	s.Require().NoError(err)
	return n
}

func (s *GameTestSuite) TestNewGame() {
	s.Equal(models.GameStatusNotStarted, s.game.Status())
	s.Equal("White", s.game.CurrentPlayer().Name)
	s.Nil(s.game.Winner())
	s.Empty(s.game.ValidMoves())

	defaults := New(nil)
	p2, err := defaults.Player(models.Player2)
	s.Require().NoError(err)
	s.Equal("Player 2", p2.Name)
}

func (s *GameTestSuite) TestStartGame() {
	s.Require().NoError(s.game.StartGame())

	s.Equal(models.GameStatusInProgress, s.game.Status())
	s.Equal(models.Player1, s.game.CurrentPlayer().ID)
	s.Equal(models.Player2, s.game.Opponent().ID)
	s.Equal(2, s.count(23))
	s.Equal(5, s.count(5))

	pips, err := s.game.PipCount(models.Player1)
	s.Require().NoError(err)
	s.Equal(167, pips)

	s.ErrorIs(s.game.StartGame(), models.ErrGameAlreadyStarted)
}

func (s *GameTestSuite) TestOperationsBeforeStart() {
	_, _, err := s.game.RollDice()
	s.ErrorIs(err, models.ErrGameNotStarted)

	_, err = s.game.MakeMove(models.Point(12), models.Point(7))
	s.ErrorIs(err, models.ErrGameNotStarted)

	s.ErrorIs(s.game.EndTurn(), models.ErrGameNotStarted)
}

func (s *GameTestSuite) TestRollDice() {
	s.Require().NoError(s.game.StartGame())
	s.roll(3, 5)

	s.ElementsMatch([]int{3, 5}, s.game.Dice().Available())

	_, _, err := s.game.RollDice()
	s.ErrorIs(err, models.ErrInvalidMove)
}

func (s *GameTestSuite) TestRollDoubles() {
	s.Require().NoError(s.game.StartGame())
	s.roll(2, 2)

	s.Equal([]int{2, 2, 2, 2}, s.game.Dice().Available())
	s.True(s.game.HasValidMoves())
}

func (s *GameTestSuite) TestOpeningSixFive() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)

	result, err := s.game.MakeMove(models.Point(23), models.Point(17))
	s.Require().NoError(err)
	s.Equal(6, result.Move.DiceValue)
	s.Nil(result.Captured)
	s.Equal([]int{5}, result.Remaining)

	result, err = s.game.MakeMove(models.Point(12), models.Point(7))
	s.Require().NoError(err)
	s.Equal(5, result.Move.DiceValue)
	s.Empty(result.Remaining)

	s.Equal(1, s.count(23))
	s.Equal(1, s.count(17))
	s.Equal(4, s.count(12))
	s.Equal(4, s.count(7))
	s.False(s.game.Dice().HasAvailableMoves())
	s.Len(s.game.History(), 2)

	// The engine leaves the turn with the mover until EndTurn.
	s.Equal(models.Player1, s.game.CurrentPlayer().ID)
}

func (s *GameTestSuite) TestCapture() {
	s.position(map[int]int{23: 1, 5: 14}, map[int]int{20: 1, 0: 14})
	s.roll(3, 1)

	result, err := s.game.MakeMove(models.Point(23), models.Point(20))
	s.Require().NoError(err)
	s.Require().NotNil(result.Captured)
	s.Equal(models.Player2, result.Captured.Owner)
	s.True(result.Captured.IsOnBar())
	s.True(result.Move.Captured)

	owner, err := s.game.PointOwner(20)
	s.Require().NoError(err)
	s.Equal(models.Player1, owner)

	onBar, err := s.game.BarCount(models.Player2)
	s.Require().NoError(err)
	s.Equal(1, onBar)
}

func (s *GameTestSuite) TestBarEntryHasPriority() {
	s.position(map[int]int{5: 15}, map[int]int{0: 13, 10: 1})
	layout := s.game.Board().Layout()
	layout.Points[10] = models.Stack{}
	layout.Bar[models.Player2.Index()] = 1
	layout.Off[models.Player2.Index()] = 1
	s.Require().NoError(s.game.Board().SetLayout(layout))

	s.Require().NoError(s.game.EndTurn())
	s.roll(6, 2)

	// Point 5 is blocked, so only the 2 enters.
	s.Equal([]models.Move{{From: models.Bar, To: models.Point(1)}}, s.game.ValidMoves())

	_, err := s.game.MakeMove(models.Point(0), models.Point(2))
	s.ErrorIs(err, models.ErrInvalidMove)

	_, err = s.game.MakeMove(models.Bar, models.Point(5))
	s.ErrorIs(err, models.ErrInvalidMove)

	result, err := s.game.MakeMove(models.Bar, models.Point(1))
	s.Require().NoError(err)
	s.Equal(2, result.Move.DiceValue)
	s.Equal([]int{6}, result.Remaining)

	onBar, err := s.game.BarCount(models.Player2)
	s.Require().NoError(err)
	s.Zero(onBar)
}

func (s *GameTestSuite) TestBearOffNotAllowedOutsideHome() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)
	before := s.game.Board().Layout()

	_, err := s.game.MakeMove(models.Point(5), models.Off)
	s.ErrorIs(err, models.ErrCannotBearOff)

	s.Equal(before, s.game.Board().Layout())
	s.ElementsMatch([]int{6, 5}, s.game.Dice().Available())
}

func (s *GameTestSuite) TestMoveWithoutRoll() {
	s.Require().NoError(s.game.StartGame())

	_, err := s.game.MakeMove(models.Point(12), models.Point(7))
	s.ErrorIs(err, models.ErrInvalidMove)
	s.Equal(5, s.count(12))
}

func (s *GameTestSuite) TestMoveWithUnavailableDie() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)

	_, err := s.game.MakeMove(models.Point(12), models.Point(8))
	var moveErr *models.MoveError
	s.Require().True(errors.As(err, &moveErr))
	s.Equal(models.ErrInvalidMove, moveErr.Kind)
	s.Equal(models.Point(12), moveErr.From)
}

func (s *GameTestSuite) TestMoveInvalidPoint() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)

	_, err := s.game.MakeMove(models.Point(24), models.Point(18))
	s.ErrorIs(err, models.ErrInvalidPoint)

	_, err = s.game.MakeMove(models.Point(12), models.Bar)
	s.ErrorIs(err, models.ErrInvalidMove)

	_, err = s.game.MakeMove(models.Off, models.Point(3))
	s.ErrorIs(err, models.ErrInvalidMove)
}

func (s *GameTestSuite) TestMoveOpponentChecker() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)

	// Player 2 holds point 0.
	_, err := s.game.MakeMove(models.Point(0), models.Point(6))
	s.ErrorIs(err, models.ErrInvalidMove)
}

func (s *GameTestSuite) TestBearOffWithHigherDieAndWin() {
	s.position(map[int]int{2: 1, 1: 1}, map[int]int{18: 15})
	s.roll(6, 4)

	// No exact 3, so the smallest larger die is used.
	result, err := s.game.MakeMove(models.Point(2), models.Off)
	s.Require().NoError(err)
	s.Equal(4, result.Move.DiceValue)
	s.False(result.Won)

	result, err = s.game.MakeMove(models.Point(1), models.Off)
	s.Require().NoError(err)
	s.Equal(6, result.Move.DiceValue)
	s.True(result.Won)

	s.Equal(models.GameStatusFinished, s.game.Status())
	s.Require().NotNil(s.game.Winner())
	s.Equal("White", s.game.Winner().Name)

	_, _, err = s.game.RollDice()
	s.ErrorIs(err, models.ErrGameAlreadyFinished)
	s.ErrorIs(s.game.EndTurn(), models.ErrGameAlreadyFinished)
	s.ErrorIs(s.game.StartGame(), models.ErrGameAlreadyFinished)
}

func (s *GameTestSuite) TestBearOffHigherDieBlockedByFurtherChecker() {
	s.position(map[int]int{4: 1, 1: 1}, map[int]int{18: 15})
	s.roll(6, 6)

	// 6 from point 1 is an overage while point 4 is still occupied.
	_, err := s.game.MakeMove(models.Point(1), models.Off)
	s.ErrorIs(err, models.ErrCannotBearOff)

	_, err = s.game.MakeMove(models.Point(4), models.Off)
	s.Require().NoError(err)
	_, err = s.game.MakeMove(models.Point(1), models.Off)
	s.Require().NoError(err)
}

func (s *GameTestSuite) TestPlayerTwoBearsOff() {
	s.position(map[int]int{5: 15}, map[int]int{23: 1, 20: 1})
	s.Require().NoError(s.game.EndTurn())
	s.roll(1, 4)

	_, err := s.game.MakeMove(models.Point(23), models.Off)
	s.Require().NoError(err)
	result, err := s.game.MakeMove(models.Point(20), models.Off)
	s.Require().NoError(err)
	s.True(result.Won)
	s.Equal(models.Player2, s.game.Winner().ID)
}

func (s *GameTestSuite) TestEndTurnAlternates() {
	s.Require().NoError(s.game.StartGame())
	s.roll(4, 2)

	s.Require().NoError(s.game.EndTurn())
	s.Equal(models.Player2, s.game.CurrentPlayer().ID)
	s.Equal(1, s.game.TurnCount())
	s.False(s.game.Dice().IsRolled())

	s.Require().NoError(s.game.EndTurn())
	s.Equal(models.Player1, s.game.CurrentPlayer().ID)
	s.Equal(2, s.game.TurnCount())
}

func (s *GameTestSuite) TestResetGame() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)
	_, err := s.game.MakeMove(models.Point(23), models.Point(17))
	s.Require().NoError(err)

	s.game.ResetGame()

	s.Equal(models.GameStatusNotStarted, s.game.Status())
	s.Empty(s.game.History())
	s.Zero(s.count(23))
	s.Require().NoError(s.game.StartGame())
	s.Equal(2, s.count(23))
}

func (s *GameTestSuite) TestInvalidPlayer() {
	_, err := s.game.Player(models.PlayerID(3))
	s.ErrorIs(err, models.ErrInvalidPlayer)

	_, err = s.game.PipCount(models.NoPlayer)
	s.ErrorIs(err, models.ErrInvalidPlayer)

	_, err = s.game.PointCount(24)
	s.ErrorIs(err, models.ErrInvalidPoint)
}

func (s *GameTestSuite) TestSnapshotRoundTrip() {
	s.Require().NoError(s.game.StartGame())
	s.roll(3, 3)
	_, err := s.game.MakeMove(models.Point(12), models.Point(9))
	s.Require().NoError(err)

	data, err := json.Marshal(s.game.Snapshot())
	s.Require().NoError(err)

	var snapshot models.GameSnapshot
	s.Require().NoError(json.Unmarshal(data, &snapshot))

	restored, err := Restore(snapshot, &Config{DiceRoller: s.mockDiceRoller})
	s.Require().NoError(err)

	s.Equal(s.game.Snapshot(), restored.Snapshot())
	s.Equal("Black", restored.Opponent().Name)
	s.Equal([]int{3, 3, 3}, restored.Dice().Available())

	_, err = restored.MakeMove(models.Point(9), models.Point(6))
	s.NoError(err)
}

func (s *GameTestSuite) TestRestoreInvalid() {
	s.Require().NoError(s.game.StartGame())
	good := s.game.Snapshot()

	bad := good
	bad.Status = "paused"
	_, err := Restore(bad, nil)
	s.ErrorIs(err, models.ErrInvalidSnapshot)

	bad = good
	bad.Layout.Points[23].Count = 3
	_, err = Restore(bad, nil)
	s.ErrorIs(err, models.ErrInvalidSnapshot)

	bad = good
	bad.Status = models.GameStatusFinished
	bad.Winner = models.Player1
	_, err = Restore(bad, nil)
	s.ErrorIs(err, models.ErrInvalidSnapshot)

	bad = good
	bad.CurrentPlayer = models.NoPlayer
	_, err = Restore(bad, nil)
	s.ErrorIs(err, models.ErrInvalidSnapshot)
}

func (s *GameTestSuite) TestSummary() {
	s.Require().NoError(s.game.StartGame())
	s.roll(6, 5)

	summary := s.game.Summary()
	s.Equal(models.GameStatusInProgress, summary.Status)
	s.Equal(models.Player1, summary.CurrentPlayer)
	s.True(summary.DiceRolled)
	s.Equal([2]int{6, 5}, summary.DiceValues)
	s.Equal(167, summary.Player1.PipCount)
	s.Equal(15, summary.Player2.InPlay)
	s.False(summary.Player1.CanBearOff)
	s.Positive(summary.AvailableMoves)

	s.Contains(s.game.String(), "White")
	s.Contains(s.game.String(), "dice 6-5")
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameTestSuite))
}
