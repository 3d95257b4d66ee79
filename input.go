package gni

// Direction is a directional pad press sent back to the program driving
// the stream.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "l"
	case Right:
		return "r"
	case Up:
		return "u"
	case Down:
		return "d"
	}
	return "?"
}

// ActionKind identifies an Action.
type ActionKind int

const (
	ActionCursorLeft ActionKind = iota
	ActionCursorRight
	ActionDirection
	ActionLeft
	ActionRight
	ActionA
	ActionB
	ActionC
	ActionD
	ActionStart
	ActionSelect
	ActionQuit
)

var actionBytes = map[ActionKind]byte{
	ActionLeft:   '>',
	ActionRight:  '<',
	ActionA:      'a',
	ActionB:      'b',
	ActionC:      'c',
	ActionD:      'd',
	ActionStart:  '!',
	ActionSelect: '@',
	ActionQuit:   'q',
}

// Action is a user input event. X and Y are only used by the cursor
// actions and Direction only by ActionDirection.
type Action struct {
	Kind      ActionKind
	X, Y      int8
	Direction Direction
}

// CursorLeft returns a left button cursor action at x, y.
func CursorLeft(x, y int8) Action {
	return Action{Kind: ActionCursorLeft, X: x, Y: y}
}

// CursorRight returns a right button cursor action at x, y.
func CursorRight(x, y int8) Action {
	return Action{Kind: ActionCursorRight, X: x, Y: y}
}

// Press returns a directional action.
func Press(d Direction) Action {
	return Action{Kind: ActionDirection, Direction: d}
}

// String encodes the action as it is sent on the wire, for example "al12af"
// or "aq".
func (a Action) String() string {
	b := []byte{'a'}
	switch a.Kind {
	case ActionCursorLeft, ActionCursorRight:
		op := byte('l')
		if a.Kind == ActionCursorRight {
			op = 'r'
		}
		b = appendUint8(append(b, op), uint8(a.X))
		b = appendUint8(b, uint8(a.Y))
	case ActionDirection:
		b = append(append(b, 'd'), a.Direction.String()...)
	default:
		c, ok := actionBytes[a.Kind]
		if !ok {
			c = '?'
		}
		b = append(b, c)
	}
	return string(b)
}

// Resize reports a new window size in pixels.
type Resize struct {
	Width, Height uint16
}

// String encodes the event as it is sent on the wire, for example
// "r1234abef".
func (r Resize) String() string {
	return string(appendUint16(appendUint16([]byte{'r'}, r.Width), r.Height))
}
