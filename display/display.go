// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package display

import (
	"log"
	"strings"
)

const (
	SCREEN_WIDTH  = 64 // Pixels per row.
	SCREEN_HEIGHT = 32 // Rows.
	SPRITE_WIDTH  = 8  // Pixels per sprite row.
)

// Individual display pixel
type Cell struct {
	On      bool
	Changed bool
}

// Change is a single pixel flip, for renderers that redraw incrementally.
type Change struct {
	X  int
	Y  int
	On bool
}

// Monochrome framebuffer, drawn by XORing sprites.
type Display struct {
	Cell        [SCREEN_HEIGHT * SCREEN_WIDTH]Cell
	Verbose     bool
	BitsFlipped int

	changes []Change
}

// NewDisplay creates a new, blank display.
func NewDisplay() (dp *Display) {
	dp = &Display{}

	dp.Reset()

	return
}

// Reset blanks the display without recording changes.
func (dp *Display) Reset() {
	clear(dp.Cell[:])
	dp.changes = dp.changes[:0]
	dp.BitsFlipped = 0
}

func (dp *Display) cell(x, y int) *Cell {
	x = ((x % SCREEN_WIDTH) + SCREEN_WIDTH) % SCREEN_WIDTH
	y = ((y % SCREEN_HEIGHT) + SCREEN_HEIGHT) % SCREEN_HEIGHT
	return &dp.Cell[y*SCREEN_WIDTH+x]
}

// Pixel reports if the pixel at x, y is lit. Coordinates wrap.
func (dp *Display) Pixel(x, y int) bool {
	return dp.cell(x, y).On
}

// flip inverts a pixel and records the change.
func (dp *Display) flip(x, y int) (on bool) {
	cell := dp.cell(x, y)
	cell.On = !cell.On
	cell.Changed = true
	dp.BitsFlipped++
	dp.changes = append(dp.changes, Change{X: x, Y: y, On: cell.On})
	return cell.On
}

// Frame starts a new change list.
func (dp *Display) Frame() {
	for n := range dp.Cell {
		dp.Cell[n].Changed = false
	}
	dp.changes = dp.changes[:0]
}

// Changes lists the pixel flips since the last Frame.
func (dp *Display) Changes() []Change {
	return dp.changes
}

// Clear turns every pixel off, recording each lit pixel as a change.
func (dp *Display) Clear() {
	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			if dp.cell(x, y).On {
				dp.flip(x, y)
			}
		}
	}

	if dp.Verbose {
		log.Printf("display: clear (%d changed)", len(dp.changes))
	}
}

// Draw XORs a sprite onto the display at x, y, wrapping at the edges. Each
// sprite byte is one row, most significant bit leftmost. Collision is set
// if any lit pixel was turned off.
func (dp *Display) Draw(x, y int, sprite []byte) (collision bool) {
	for row, data := range sprite {
		for col := range SPRITE_WIDTH {
			if data&(0x80>>col) == 0 {
				continue
			}
			px := (x + col) % SCREEN_WIDTH
			py := (y + row) % SCREEN_HEIGHT
			if !dp.flip(px, py) {
				collision = true
			}
		}
	}

	if dp.Verbose {
		log.Printf("display: draw %d,%d % x collision:%v", x, y, sprite, collision)
	}

	return
}

// String draws the display as bordered text.
func (dp *Display) String() string {
	var sb strings.Builder

	border := "+" + strings.Repeat("-", SCREEN_WIDTH) + "+\n"
	sb.WriteString(border)
	for y := range SCREEN_HEIGHT {
		sb.WriteByte('|')
		for x := range SCREEN_WIDTH {
			if dp.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)

	return sb.String()
}
