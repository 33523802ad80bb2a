// Package input reads key presses from a raw terminal and decodes them into
// dashboard commands.
package input

// Command is a decoded key press.
type Command int

const (
	None Command = iota
	Quit
	ToggleHint
	ToggleList
	Next
	Previous
	Retest
)

// String returns the string representation of a command
func (c Command) String() string {
	switch c {
	case Quit:
		return "quit"
	case ToggleHint:
		return "toggle-hint"
	case ToggleList:
		return "toggle-list"
	case Next:
		return "next"
	case Previous:
		return "previous"
	case Retest:
		return "retest"
	default:
		return "none"
	}
}

const (
	keyCtrlC = 0x03
	keyLF    = '\n'
	keyCR    = '\r'
	keyEsc   = 0x1b
)

// Decode translates one read from the terminal into commands. A lone Esc
// byte is Quit; an Esc that starts an escape sequence (arrow keys, function
// keys) swallows the rest of the read. Unknown bytes are dropped.
func Decode(b []byte) []Command {
	var cmds []Command
	for i := 0; i < len(b); i++ {
		if b[i] == keyEsc {
			if i == len(b)-1 {
				cmds = append(cmds, Quit)
			}
			break
		}
		if cmd := decodeByte(b[i]); cmd != None {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func decodeByte(c byte) Command {
	switch c {
	case 'q', keyCtrlC:
		return Quit
	case 'h':
		return ToggleHint
	case 'l':
		return ToggleList
	case 'n':
		return Next
	case 'p':
		return Previous
	case 'r', keyCR, keyLF:
		return Retest
	default:
		return None
	}
}
