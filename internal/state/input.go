package state

import "fmt"

// InputKind enumerates the discrete inputs the controller understands.
type InputKind int

const (
	InputQuit InputKind = iota
	InputCancel
	InputConfirm
	InputClick
)

func (k InputKind) String() string {
	switch k {
	case InputQuit:
		return "quit"
	case InputCancel:
		return "cancel"
	case InputConfirm:
		return "confirm"
	case InputClick:
		return "click"
	default:
		return fmt.Sprintf("input(%d)", int(k))
	}
}

// Input is one event from the presentation layer. X and Y are only set for clicks.
type Input struct {
	Kind InputKind
	X, Y int
}

func Quit() Input    { return Input{Kind: InputQuit} }
func Cancel() Input  { return Input{Kind: InputCancel} }
func Confirm() Input { return Input{Kind: InputConfirm} }

// Click is a point click in screen cells.
func Click(x, y int) Input {
	return Input{Kind: InputClick, X: x, Y: y}
}

// IsExitRequested reports whether a key string asks to leave the program outright.
func IsExitRequested(key string) bool {
	return key == "ctrl+c"
}

// InputForKey maps a key string to a controller input.
func InputForKey(key string) (Input, bool) {
	switch key {
	case "ctrl+c", "q":
		return Quit(), true
	case "esc":
		return Cancel(), true
	case "enter", " ", "space":
		return Confirm(), true
	}
	return Input{}, false
}
