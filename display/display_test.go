// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplay(t *testing.T) {
	assert := assert.New(t)

	dp := NewDisplay()
	for y := range SCREEN_HEIGHT {
		for x := range SCREEN_WIDTH {
			assert.False(dp.Pixel(x, y))
		}
	}
	assert.Empty(dp.Changes())
	assert.Equal(0, dp.BitsFlipped)
}

func TestDisplayDraw(t *testing.T) {
	assert := assert.New(t)

	dp := NewDisplay()

	collision := dp.Draw(0, 0, []byte{0b1010_0000, 0b0100_0000})
	assert.False(collision)
	assert.True(dp.Pixel(0, 0))
	assert.False(dp.Pixel(1, 0))
	assert.True(dp.Pixel(2, 0))
	assert.True(dp.Pixel(1, 1))
	assert.Equal([]Change{
		{X: 0, Y: 0, On: true},
		{X: 2, Y: 0, On: true},
		{X: 1, Y: 1, On: true},
	}, dp.Changes())

	dp.Frame()
	assert.Empty(dp.Changes())

	// Redraw part of the sprite: pixel 0,0 is erased.
	collision = dp.Draw(0, 0, []byte{0b1000_0000})
	assert.True(collision)
	assert.False(dp.Pixel(0, 0))
	assert.Equal([]Change{{X: 0, Y: 0, On: false}}, dp.Changes())
	assert.Equal(4, dp.BitsFlipped)
}

func TestDisplayDrawWrap(t *testing.T) {
	assert := assert.New(t)

	dp := NewDisplay()

	collision := dp.Draw(SCREEN_WIDTH-1, SCREEN_HEIGHT-1, []byte{0b1100_0000, 0b1000_0000})
	assert.False(collision)
	assert.True(dp.Pixel(SCREEN_WIDTH-1, SCREEN_HEIGHT-1))
	assert.True(dp.Pixel(0, SCREEN_HEIGHT-1))
	assert.True(dp.Pixel(SCREEN_WIDTH-1, 0))
	assert.Len(dp.Changes(), 3)

	// Coordinates past the edge wrap before drawing.
	dp.Reset()
	dp.Draw(SCREEN_WIDTH+2, SCREEN_HEIGHT+1, []byte{0x80})
	assert.True(dp.Pixel(2, 1))
}

func TestDisplayClear(t *testing.T) {
	assert := assert.New(t)

	dp := NewDisplay()
	dp.Draw(10, 10, []byte{0xff})
	dp.Frame()

	dp.Clear()
	assert.Len(dp.Changes(), 8)
	for _, change := range dp.Changes() {
		assert.False(change.On)
		assert.Equal(10, change.Y)
	}
	for x := range SCREEN_WIDTH {
		assert.False(dp.Pixel(x, 10))
	}
}

func TestDisplayString(t *testing.T) {
	assert := assert.New(t)

	dp := NewDisplay()
	dp.Draw(0, 0, []byte{0x80})

	lines := strings.Split(strings.TrimSuffix(dp.String(), "\n"), "\n")
	assert.Len(lines, SCREEN_HEIGHT+2)
	assert.Equal("+"+strings.Repeat("-", SCREEN_WIDTH)+"+", lines[0])
	assert.Equal("|#"+strings.Repeat(" ", SCREEN_WIDTH-1)+"|", lines[1])
	assert.Equal("|"+strings.Repeat(" ", SCREEN_WIDTH)+"|", lines[2])
}
