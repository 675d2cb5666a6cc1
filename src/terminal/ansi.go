package terminal

import (
	"bufio"
	"strconv"
)

// Pre-allocated ANSI sequence fragments
var (
	csiReset      = []byte("\x1b[0m")
	csiClear      = []byte("\x1b[2J\x1b[H")
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH
)

// WriteClear erases the screen and homes the cursor.
func WriteClear(w *bufio.Writer) {
	w.Write(csiClear)
}

// WriteCursorPos moves the cursor. col and row are 1-based.
func WriteCursorPos(w *bufio.Writer, col, row int) {
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	w.Write(csiCursorPos)
	w.WriteString(strconv.Itoa(row))
	w.WriteByte(';')
	w.WriteString(strconv.Itoa(col))
	w.WriteByte('H')
}

// WriteReset resets all text attributes.
func WriteReset(w *bufio.Writer) {
	w.Write(csiReset)
}

// WriteCursorHide hides the cursor.
func WriteCursorHide(w *bufio.Writer) {
	w.Write(csiCursorHide)
}

// WriteCursorShow shows the cursor.
func WriteCursorShow(w *bufio.Writer) {
	w.Write(csiCursorShow)
}
