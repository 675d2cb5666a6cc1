// Package terminal drives an xterm-compatible terminal directly: raw mode,
// size query, poll-bounded single byte reads and ANSI output.
package terminal

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// PollTimeout bounds a single wait for input so cancellation is observed.
const PollTimeout = 100 // ms

// Terminal is the process terminal in raw mode.
type Terminal struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State
	w       *bufio.Writer
}

// Open puts stdin into raw mode. The returned Terminal must be closed to
// restore the previous mode.
func Open() (*Terminal, error) {
	return open(os.Stdin, os.Stdout)
}

func open(in, out *os.File) (*Terminal, error) {
	t := &Terminal{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
		w:     bufio.NewWriterSize(out, 64*1024),
	}
	if !term.IsTerminal(t.inFd) {
		return nil, errors.New("stdin is not a terminal")
	}
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return nil, errors.Wrap(err, "make raw")
	}
	t.oldTerm = old
	return t, nil
}

// Close shows the cursor, resets attributes and restores the terminal mode.
// Safe to call more than once.
func (t *Terminal) Close() error {
	if t.oldTerm == nil {
		return nil
	}
	WriteReset(t.w)
	WriteCursorShow(t.w)
	t.w.Flush()
	err := term.Restore(t.inFd, t.oldTerm)
	t.oldTerm = nil
	return errors.Wrap(err, "restore")
}

// Size returns the terminal width and height in cells.
func (t *Terminal) Size() (int, int, error) {
	w, h, err := term.GetSize(t.outFd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "get size")
	}
	return w, h, nil
}

// ReadKey blocks until one byte of input is available or ctx is done.
// End of input is reported as io.EOF.
func (t *Terminal) ReadKey(ctx context.Context) (byte, error) {
	var buf [1]byte
	fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := unix.Poll(fds, PollTimeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, errors.Wrap(err, "poll")
		}
		if n == 0 {
			continue // timeout
		}

		rn, err := unix.Read(t.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, errors.Wrap(err, "read")
		}
		if rn == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// Writer exposes the buffered output. Nothing is visible before Flush.
func (t *Terminal) Writer() *bufio.Writer {
	return t.w
}

// Flush writes the buffered output to the terminal.
func (t *Terminal) Flush() error {
	return errors.Wrap(t.w.Flush(), "flush")
}
