package view

import (
	"fmt"
	"unicode/utf8"

	"lifeterm/src/universe"
)

// Op is the kind of a draw instruction.
type Op uint8

const (
	OpClear Op = iota
	OpMoveTo
	OpWrite
	OpBold
	OpReset
	OpHideCursor
)

// Instruction is one step of drawing on a Surface.
// Col and Row are 1-based and used by OpMoveTo only, Text by OpWrite only.
type Instruction struct {
	Op   Op
	Col  int
	Row  int
	Text string
}

func Clear() Instruction { return Instruction{Op: OpClear} }
func MoveTo(col, row int) Instruction { return Instruction{Op: OpMoveTo, Col: col, Row: row} }
func Write(text string) Instruction { return Instruction{Op: OpWrite, Text: text} }
func Bold() Instruction { return Instruction{Op: OpBold} }
func Reset() Instruction { return Instruction{Op: OpReset} }
func HideCursor() Instruction { return Instruction{Op: OpHideCursor} }

func (in Instruction) String() string {
	switch in.Op {
	case OpClear:
		return "clear"
	case OpMoveTo:
		return fmt.Sprintf("goto(%d,%d)", in.Col, in.Row)
	case OpWrite:
		return fmt.Sprintf("write(%q)", in.Text)
	case OpBold:
		return "bold"
	case OpReset:
		return "reset"
	case OpHideCursor:
		return "hide-cursor"
	}
	return fmt.Sprintf("op(%d)", in.Op)
}

// DefGlyph marks a live cell.
const DefGlyph = "#"

const (
	Title        = "Conway's game of life."
	Author       = "by Sharp Rabbit"
	Instructions = "q to quit, s to start, p to pause, r to reset"
)

// Paint draws the live cells of g. Dead cells produce nothing, the leading
// clear erases them. Cells are visited row by row.
func Paint(g *universe.Grid, glyph string) []Instruction {
	ins := make([]Instruction, 0, 1+2*g.LiveCells())
	ins = append(ins, Clear())
	for row := range g.Cells {
		for col, c := range g.Cells[row] {
			if c {
				ins = append(ins, MoveTo(col+1, row+1), Write(glyph))
			}
		}
	}
	return ins
}

// Banner draws the idle screen centered on a width x height terminal.
func Banner(width, height int) []Instruction {
	return []Instruction{
		Clear(),
		Bold(),
		MoveTo(centered(width, Title), atLeastOne(height/2-2)),
		Write(Title),
		Reset(),
		MoveTo(centered(width, Author), atLeastOne(height/2)),
		Write(Author),
		MoveTo(centered(width, Instructions), atLeastOne(height/2+2)),
		Write(Instructions),
		HideCursor(),
	}
}

func centered(width int, text string) int {
	return atLeastOne((width - utf8.RuneCountInString(text)) / 2)
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
