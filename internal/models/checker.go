package models

import "fmt"

// Checker is a single piece. It only guards its own state transitions;
// board legality is the board's concern.
type Checker struct {
	// ID is stable for the lifetime of a board
	ID int `json:"id"`

	// Owner is the player the checker belongs to
	Owner PlayerID `json:"owner"`

	// Location is a point, the bar, or off
	Location Endpoint `json:"location"`
}

// NewChecker creates a checker on a point
func NewChecker(id int, owner PlayerID, point int) (*Checker, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if !ValidPoint(point) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPoint, point)
	}
	return &Checker{
		ID:       id,
		Owner:    owner,
		Location: Point(point),
	}, nil
}

// IsOnBar reports whether the checker has been captured
func (c *Checker) IsOnBar() bool {
	return c.Location.IsBar()
}

// IsBorneOff reports whether the checker has left the board for good
func (c *Checker) IsBorneOff() bool {
	return c.Location.IsOff()
}

// IsMovable reports whether the checker is still in play
func (c *Checker) IsMovable() bool {
	return !c.IsBorneOff()
}

// IsInHomeBoard reports whether the checker sits on its owner's home board
func (c *Checker) IsInHomeBoard() bool {
	if !c.Location.IsPoint() {
		return false
	}
	return c.Owner.InHome(c.Location.Index())
}

// MoveTo places the checker on a point
func (c *Checker) MoveTo(point int) error {
	if c.IsBorneOff() {
		return ErrCheckerBorneOff
	}
	if !ValidPoint(point) {
		return fmt.Errorf("%w: %d", ErrInvalidPoint, point)
	}
	c.Location = Point(point)
	return nil
}

// MoveToBar marks the checker as captured
func (c *Checker) MoveToBar() {
	c.Location = Bar
}

// MoveFromBarTo re-enters a captured checker onto a point
func (c *Checker) MoveFromBarTo(point int) error {
	if !c.IsOnBar() {
		return ErrCheckerNotOnBar
	}
	if !ValidPoint(point) {
		return fmt.Errorf("%w: %d", ErrInvalidPoint, point)
	}
	c.Location = Point(point)
	return nil
}

// BearOff removes the checker from play
func (c *Checker) BearOff() {
	c.Location = Off
}

// String implements fmt.Stringer
func (c *Checker) String() string {
	return fmt.Sprintf("checker %d (%s, %s)", c.ID, c.Owner, c.Location)
}
