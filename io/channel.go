// Package io provides the devices attached to the CHIP-8 processor: the
// program ROM image and the sixteen key hex keypad.
package io

import (
	"iter"
)

// Channel is a byte oriented device.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields bytes from the channel.
	Receive() iter.Seq[byte]
	// Send writes a single byte to the channel.
	Send(value byte) error
}
