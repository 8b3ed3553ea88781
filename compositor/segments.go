package compositor

import (
	"image"

	"github.com/pkg/errors"
)

// Dir is a direction on the board. Up is towards smaller Y.
type Dir int

const (
	Up Dir = iota
	Right
	Down
	Left
)

func (d Dir) String() string {
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
		return "invalid"
	}
}

// dirTo returns the direction of step from a to its neighbour b.
func dirTo(a, b image.Point) (Dir, error) {
	switch b.Sub(a) {
	case image.Pt(0, -1):
		return Up, nil
	case image.Pt(1, 0):
		return Right, nil
	case image.Pt(0, 1):
		return Down, nil
	case image.Pt(-1, 0):
		return Left, nil
	}
	return 0, errors.Errorf("%v and %v are not neighbours", a, b)
}

type sides struct{ a, b Dir }

func sidesOf(a, b Dir) sides {
	if a > b {
		a, b = b, a
	}
	return sides{a, b}
}

// Body pieces by the two sides they connect. Turn pieces are named after
// one of the two ways the snake can move through them.
var bodyPieces = map[sides]string{
	sidesOf(Left, Right): "body_horizontal",
	sidesOf(Up, Down):    "body_vertical",
	sidesOf(Right, Down): "body_turn_left_down",
	sidesOf(Down, Left):  "body_turn_up_left",
	sidesOf(Up, Right):   "body_turn_down_right",
	sidesOf(Left, Up):    "body_turn_right_up",
}

// SpriteIDs returns the sprite identifier for each segment of body, head
// first. Heads and tails face the direction of movement.
func SpriteIDs(body []image.Point) ([]string, error) {
	if len(body) < 2 {
		return nil, errors.Errorf("a snake needs a head and a tail, got %d segments", len(body))
	}
	ids := make([]string, len(body))

	d, err := dirTo(body[1], body[0])
	if err != nil {
		return nil, errors.Wrap(err, "head")
	}
	ids[0] = "head_" + d.String()

	for i := 1; i < len(body)-1; i++ {
		towardHead, err := dirTo(body[i], body[i-1])
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		towardTail, err := dirTo(body[i], body[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d", i)
		}
		id, ok := bodyPieces[sidesOf(towardHead, towardTail)]
		if !ok {
			return nil, errors.Errorf("segment %d at %v folds back on itself", i, body[i])
		}
		ids[i] = id
	}

	last := len(body) - 1
	d, err = dirTo(body[last], body[last-1])
	if err != nil {
		return nil, errors.Wrap(err, "tail")
	}
	ids[last] = "tail_" + d.String()
	return ids, nil
}

// DemoBoard and DemoSnake describe a small scene that uses every snake piece
// of the Greeny sheet at least once, with the apple just ahead of the head.
var DemoBoard = Board{Width: 6, Height: 5}

func DemoSnake() (body []image.Point, apple image.Point) {
	return []image.Point{
		{4, 2}, {4, 3}, {3, 3}, {3, 2}, {3, 1},
		{2, 1}, {1, 1}, {1, 2}, {1, 3},
	}, image.Pt(4, 0)
}
