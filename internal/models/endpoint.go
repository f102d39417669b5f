package models

import (
	"fmt"
	"strconv"
)

const (
	// NumPoints is the number of points on the board
	NumPoints = 24

	// SentinelPoint is the legacy integer used for both the bar (as a
	// source) and bearing off (as a destination)
	SentinelPoint = -1
)

// EndpointKind distinguishes the three places a move can start or end
type EndpointKind uint8

const (
	// EndpointPoint is one of the 24 board points
	EndpointPoint EndpointKind = iota

	// EndpointBar is the bar, only valid as a move source
	EndpointBar

	// EndpointOff is the borne-off pile, only valid as a move destination
	EndpointOff
)

// Endpoint is the source or destination of a move
type Endpoint struct {
	kind  EndpointKind
	point int
}

var (
	// Bar is the bar endpoint
	Bar = Endpoint{kind: EndpointBar, point: SentinelPoint}

	// Off is the bear-off endpoint
	Off = Endpoint{kind: EndpointOff, point: SentinelPoint}
)

// Point returns the endpoint for a board point. The index is not validated
// here; use Valid to check it.
func Point(n int) Endpoint {
	return Endpoint{kind: EndpointPoint, point: n}
}

// EndpointFromInt converts the legacy integer convention. The sentinel maps
// to Bar when used as a source and to Off when used as a destination.
func EndpointFromInt(n int, asSource bool) Endpoint {
	if n == SentinelPoint {
		if asSource {
			return Bar
		}
		return Off
	}
	return Point(n)
}

// Kind returns the endpoint kind
func (e Endpoint) Kind() EndpointKind {
	return e.kind
}

// IsBar reports whether the endpoint is the bar
func (e Endpoint) IsBar() bool {
	return e.kind == EndpointBar
}

// IsOff reports whether the endpoint is the borne-off pile
func (e Endpoint) IsOff() bool {
	return e.kind == EndpointOff
}

// IsPoint reports whether the endpoint is a board point
func (e Endpoint) IsPoint() bool {
	return e.kind == EndpointPoint
}

// Index returns the point index, or SentinelPoint for the bar and off
func (e Endpoint) Index() int {
	if e.kind != EndpointPoint {
		return SentinelPoint
	}
	return e.point
}

// Valid reports whether a point endpoint is within 0-23. Bar and Off are
// always valid.
func (e Endpoint) Valid() bool {
	if e.kind != EndpointPoint {
		return true
	}
	return ValidPoint(e.point)
}

// String implements fmt.Stringer
func (e Endpoint) String() string {
	switch e.kind {
	case EndpointBar:
		return "bar"
	case EndpointOff:
		return "off"
	default:
		return strconv.Itoa(e.point)
	}
}

// MarshalText encodes the endpoint as "bar", "off" or the point index
func (e Endpoint) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText decodes an endpoint written by MarshalText
func (e *Endpoint) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case "bar":
		*e = Bar
	case "off":
		*e = Off
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", s, err)
		}
		if !ValidPoint(n) {
			return fmt.Errorf("%w: %d", ErrInvalidPoint, n)
		}
		*e = Point(n)
	}
	return nil
}

// ValidPoint reports whether n is a board point index
func ValidPoint(n int) bool {
	return n >= 0 && n < NumPoints
}
