package nuru

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Control sequences used around a render.
const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	fontReset   = "\x1b[0m"
)

// TermSize returns the dimensions of the terminal attached to f in
// character cells.
func TermSize(f *os.File) (cols, rows int, err error) {
	return term.GetSize(int(f.Fd()))
}

// Term wraps the terminal state juggling around a full screen display:
// hidden cursor while the image is up, everything restored afterwards.
type Term struct {
	in  *os.File
	out io.Writer
}

// TermSetup hides the cursor and optionally clears the screen. The caller
// must call Restore when done.
func TermSetup(in *os.File, out io.Writer, clear bool) *Term {
	io.WriteString(out, hideCursor)
	if clear {
		io.WriteString(out, clearScreen)
		io.WriteString(out, cursorHome)
	}
	return &Term{in: in, out: out}
}

// WaitKey blocks until a single key is pressed. Input is switched to raw
// mode for the duration so the key is neither echoed nor line buffered.
func (t *Term) WaitKey() error {
	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(t.in.Fd()), state)

	var b [1]byte
	_, err = t.in.Read(b[:])
	return err
}

// Restore puts the terminal back into its normal state.
func (t *Term) Restore() {
	io.WriteString(t.out, fontReset)
	io.WriteString(t.out, showCursor)
}
