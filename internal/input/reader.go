package input

import (
	"errors"
	"io"
	"time"

	"github.com/mark3labs/oscamp/internal/logger"
	"github.com/muesli/cancelreader"
)

// Reader decodes key presses from a terminal on a background goroutine and
// publishes them on a channel. Only inert Command values cross the channel.
type Reader struct {
	cr       cancelreader.CancelReader
	commands chan Command
	done     chan struct{}
	stopped  chan struct{}
}

// NewReader starts reading from r, which is normally the raw-mode stdin.
func NewReader(r io.Reader) (*Reader, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, err
	}
	rd := &Reader{
		cr:       cr,
		commands: make(chan Command, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go rd.readLoop()
	return rd, nil
}

// Commands delivers decoded commands in key-press order.
func (r *Reader) Commands() <-chan Command {
	return r.commands
}

// Poll waits up to timeout for the next command. It is the blocking form of
// Commands for callers without their own select loop; the dashboard selects
// on Commands directly so one timer covers keys and file changes.
func (r *Reader) Poll(timeout time.Duration) (Command, bool) {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case cmd, ok := <-r.commands:
		return cmd, ok
	case <-t.C:
		return None, false
	}
}

// Close cancels the pending read and waits for the read loop to exit.
// Commands not yet consumed are discarded.
func (r *Reader) Close() error {
	close(r.done)
	r.cr.Cancel()
	<-r.stopped
	return r.cr.Close()
}

func (r *Reader) readLoop() {
	defer close(r.stopped)
	defer close(r.commands)

	buf := make([]byte, 64)
	for {
		n, err := r.cr.Read(buf)
		for _, cmd := range Decode(buf[:n]) {
			select {
			case r.commands <- cmd:
			case <-r.done:
				return
			}
		}
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				logger.Warn("input: read failed: %v", err)
			}
			return
		}
	}
}
