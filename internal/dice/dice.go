package dice

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/backgammon/internal/models"
)

const (
	// Sides is the number of faces on a backgammon die
	Sides = 6

	// MaxMoves is the number of move values granted by doubles
	MaxMoves = 4
)

// Dice tracks one roll of the two dice and which move values are still
// usable this turn.
type Dice struct {
	roller    Roller
	values    [2]int
	available []int
	used      []int
	rolled    bool
}

// NewDice creates dice in the not-rolled state
func NewDice(roller Roller) *Dice {
	return &Dice{
		roller: roller,
	}
}

// Roll draws two values. Doubles grant four copies of the value.
func (d *Dice) Roll() (int, int) {
	d1 := d.roller.Roll(Sides)
	d2 := d.roller.Roll(Sides)
	d.set(d1, d2)
	return d1, d2
}

func (d *Dice) set(d1, d2 int) {
	d.values = [2]int{d1, d2}
	if d1 == d2 {
		d.available = []int{d1, d1, d1, d1}
	} else {
		d.available = []int{d1, d2}
	}
	d.used = nil
	d.rolled = true
}

// UseValue consumes one instance of v
func (d *Dice) UseValue(v int) error {
	if v < 1 || v > Sides {
		return fmt.Errorf("%w: %d", models.ErrInvalidDiceValue, v)
	}
	if !d.rolled {
		return models.ErrDiceNotRolled
	}
	i := slices.Index(d.available, v)
	if i < 0 {
		return fmt.Errorf("%w: %d", models.ErrDiceValueUnavailable, v)
	}
	d.available = slices.Delete(d.available, i, i+1)
	d.used = append(d.used, v)
	return nil
}

// Reset returns the dice to the not-rolled state
func (d *Dice) Reset() {
	d.values = [2]int{}
	d.available = nil
	d.used = nil
	d.rolled = false
}

// IsRolled reports whether the dice have been rolled this turn
func (d *Dice) IsRolled() bool {
	return d.rolled
}

// IsDouble reports whether both dice show the same value
func (d *Dice) IsDouble() bool {
	return d.rolled && d.values[0] == d.values[1]
}

// Values returns the two rolled values, or zeros before a roll
func (d *Dice) Values() (int, int) {
	return d.values[0], d.values[1]
}

// Available returns a copy of the unused move values
func (d *Dice) Available() []int {
	return slices.Clone(d.available)
}

// Used returns a copy of the consumed move values in the order they were used
func (d *Dice) Used() []int {
	return slices.Clone(d.used)
}

// HasAvailableMoves reports whether any move value is left
func (d *Dice) HasAvailableMoves() bool {
	return len(d.available) > 0
}

// CanUseValue reports whether v is available
func (d *Dice) CanUseValue(v int) bool {
	return slices.Contains(d.available, v)
}

// MaxAvailable returns the largest available value, or 0
func (d *Dice) MaxAvailable() int {
	if len(d.available) == 0 {
		return 0
	}
	return slices.Max(d.available)
}

// MinAvailable returns the smallest available value, or 0
func (d *Dice) MinAvailable() int {
	if len(d.available) == 0 {
		return 0
	}
	return slices.Min(d.available)
}

// CanUseValueOrHigher reports whether any available value is at least minimum
func (d *Dice) CanUseValueOrHigher(minimum int) bool {
	for _, v := range d.available {
		if v >= minimum {
			return true
		}
	}
	return false
}

// UsableValueForBearOff picks the die to bear off with when the exact
// distance is required: the exact value if available, otherwise the
// smallest larger value.
func (d *Dice) UsableValueForBearOff(required int) (int, bool) {
	if d.CanUseValue(required) {
		return required, true
	}
	best := 0
	for _, v := range d.available {
		if v > required && (best == 0 || v < best) {
			best = v
		}
	}
	return best, best != 0
}

// DistinctAvailable returns the available values without repeats, ascending
func (d *Dice) DistinctAvailable() []int {
	values := slices.Clone(d.available)
	slices.Sort(values)
	return slices.Compact(values)
}

// State returns the serializable state
func (d *Dice) State() models.DiceState {
	return models.DiceState{
		Rolled: d.rolled,
		Values: d.values,
		Used:   slices.Clone(d.used),
	}
}

// Load restores a state produced by State
func (d *Dice) Load(state models.DiceState) error {
	if !state.Rolled {
		if len(state.Used) != 0 || state.Values != [2]int{} {
			return fmt.Errorf("%w: unrolled dice with values", models.ErrInvalidSnapshot)
		}
		d.Reset()
		return nil
	}

	for _, v := range state.Values {
		if v < 1 || v > Sides {
			return fmt.Errorf("%w: %d", models.ErrInvalidDiceValue, v)
		}
	}

	loaded := &Dice{roller: d.roller}
	loaded.set(state.Values[0], state.Values[1])
	for _, v := range state.Used {
		if err := loaded.UseValue(v); err != nil {
			return fmt.Errorf("%w: used value %d: %w", models.ErrInvalidSnapshot, v, err)
		}
	}

	*d = *loaded
	return nil
}
