package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChecker(t *testing.T) {
	tests := []struct {
		name    string
		owner   PlayerID
		point   int
		wantErr error
	}{
		{name: "player 1", owner: Player1, point: 23},
		{name: "player 2", owner: Player2, point: 0},
		{name: "no owner", owner: NoPlayer, point: 5, wantErr: ErrInvalidPlayer},
		{name: "point too low", owner: Player1, point: -1, wantErr: ErrInvalidPoint},
		{name: "point too high", owner: Player2, point: NumPoints, wantErr: ErrInvalidPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChecker(3, tt.owner, tt.point)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, c.ID)
			assert.Equal(t, tt.owner, c.Owner)
			assert.Equal(t, Point(tt.point), c.Location)
			assert.True(t, c.IsMovable())
			assert.False(t, c.IsOnBar())
			assert.False(t, c.IsBorneOff())
		})
	}
}

func TestChecker_MoveTo(t *testing.T) {
	c, err := NewChecker(0, Player1, 12)
	require.NoError(t, err)

	require.NoError(t, c.MoveTo(7))
	assert.Equal(t, Point(7), c.Location)

	assert.ErrorIs(t, c.MoveTo(24), ErrInvalidPoint)
	assert.Equal(t, Point(7), c.Location)

	c.BearOff()
	assert.True(t, c.IsBorneOff())
	assert.False(t, c.IsMovable())

	assert.ErrorIs(t, c.MoveTo(3), ErrCheckerBorneOff)
	assert.Equal(t, Off, c.Location)
}

func TestChecker_MoveFromBarTo(t *testing.T) {
	c, err := NewChecker(20, Player2, 4)
	require.NoError(t, err)

	assert.ErrorIs(t, c.MoveFromBarTo(2), ErrCheckerNotOnBar)
	assert.Equal(t, Point(4), c.Location)

	c.MoveToBar()
	assert.True(t, c.IsOnBar())
	assert.True(t, c.IsMovable())
	assert.False(t, c.IsInHomeBoard())

	assert.ErrorIs(t, c.MoveFromBarTo(-1), ErrInvalidPoint)
	assert.True(t, c.IsOnBar())

	require.NoError(t, c.MoveFromBarTo(2))
	assert.Equal(t, Point(2), c.Location)

	// borne-off checkers never come back through the bar either
	c.BearOff()
	assert.ErrorIs(t, c.MoveFromBarTo(2), ErrCheckerNotOnBar)
}

func TestChecker_IsInHomeBoard(t *testing.T) {
	tests := []struct {
		name  string
		owner PlayerID
		point int
		want  bool
	}{
		{name: "player 1 ace point", owner: Player1, point: 0, want: true},
		{name: "player 1 six point", owner: Player1, point: 5, want: true},
		{name: "player 1 bar point", owner: Player1, point: 6, want: false},
		{name: "player 1 in opponent home", owner: Player1, point: 20, want: false},
		{name: "player 2 ace point", owner: Player2, point: 23, want: true},
		{name: "player 2 six point", owner: Player2, point: 18, want: true},
		{name: "player 2 bar point", owner: Player2, point: 17, want: false},
		{name: "player 2 in opponent home", owner: Player2, point: 3, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewChecker(0, tt.owner, tt.point)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.IsInHomeBoard())
		})
	}

	c, err := NewChecker(0, Player1, 2)
	require.NoError(t, err)
	c.BearOff()
	assert.False(t, c.IsInHomeBoard())
}
