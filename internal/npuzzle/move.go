package npuzzle

// Move labels the transition between a board and its successor. The label
// names the direction the swapped tile travels, not the blank: pulling the
// tile above the blank down is MoveDown, even though the blank moves up.
type Move int8

const (
	MoveNone Move = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
)

func (m Move) String() string {
	switch m {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	default:
		return ""
	}
}
