package direction

import "fmt"

// Direction identifies one of the nine joystick zones: the rest
// position, the four cardinals and the four diagonals.
type Direction int

const (
	Center Direction = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// Label returns the short display code for a direction, suitable for a
// 16x2 character display. Values outside the nine variants map to "?";
// callers should treat that as a display case, not a fault.
func (d Direction) Label() string {
	switch d {
	case Center:
		return "C"
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	case SouthEast:
		return "SE"
	case SouthWest:
		return "SW"
	default:
		return "?"
	}
}

// String returns the long lowercase name, for logs.
func (d Direction) String() string {
	switch d {
	case Center:
		return "center"
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case NorthEast:
		return "north-east"
	case NorthWest:
		return "north-west"
	case SouthEast:
		return "south-east"
	case SouthWest:
		return "south-west"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}
