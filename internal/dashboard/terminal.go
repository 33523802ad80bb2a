package dashboard

import (
	"os"

	"github.com/charmbracelet/x/term"

	"github.com/mark3labs/oscamp/internal/apperr"
)

// Terminal switches the controlling terminal into raw mode. The returned
// restore function puts it back and must be called on every exit path.
type Terminal interface {
	MakeRaw() (restore func() error, err error)
}

// TTY is the Terminal backed by a real file descriptor, normally stdin.
type TTY struct {
	fd uintptr
}

// NewTTY wraps f.
func NewTTY(f *os.File) *TTY {
	return &TTY{fd: f.Fd()}
}

// MakeRaw enables raw mode.
func (t *TTY) MakeRaw() (func() error, error) {
	if !term.IsTerminal(t.fd) {
		return nil, apperr.Errorf(apperr.TerminalUnavailable, "stdin is not a terminal")
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, apperr.New(apperr.TerminalUnavailable, "enable raw mode", err)
	}
	return func() error {
		return term.Restore(t.fd, state)
	}, nil
}
