package view

import (
	"context"

	"github.com/pkg/errors"
)

// Surface is the terminal the session draws on and reads keys from.
// Draw and ReadKey may be called from different goroutines.
type Surface interface {
	// Size returns the dimensions sampled when the surface was opened.
	Size() (width, height int)
	// Draw applies the instructions and flushes them to the screen.
	Draw(ins []Instruction) error
	// ReadKey blocks for one raw input byte. It returns ctx.Err() once ctx is done.
	ReadKey(ctx context.Context) (byte, error)
	// Close restores the terminal.
	Close() error
}

// SurfaceError is a terminal I/O failure. It is never recovered from.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return "terminal " + e.Op + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err was caused by the terminal surface.
func IsFatal(err error) bool {
	var se *SurfaceError
	return errors.As(err, &se)
}

func fatal(op string, err error) error {
	if err == nil {
		return nil
	}
	return &SurfaceError{Op: op, Err: err}
}

// Backends maps the backend name to its constructor.
var Backends = map[string]func() (Surface, error){
	"ansi":  OpenANSI,
	"tcell": OpenTcell,
	"gocui": OpenGocui,
}
