package geometry

import "fmt"

// Direction uses the game's 8-way encoding; only the cardinal values are used.
type Direction uint8

const (
	Up    Direction = 0
	Right Direction = 2
	Down  Direction = 4
	Left  Direction = 6
)

// Cardinals in clockwise order starting at Up.
var Cardinals = [4]Direction{Up, Right, Down, Left}

func (d Direction) Opposite() Direction {
	return (d + 4) % 8
}

func (d Direction) Clockwise() Direction {
	return (d + 2) % 8
}

func (d Direction) CounterClockwise() Direction {
	return (d + 6) % 8
}

// Delta is the unit tile step. Y grows downwards.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection accepts both the lower-case names and the compass names.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up", "north", "UP", "NORTH":
		return Up, nil
	case "right", "east", "RIGHT", "EAST":
		return Right, nil
	case "down", "south", "DOWN", "SOUTH":
		return Down, nil
	case "left", "west", "LEFT", "WEST":
		return Left, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}
