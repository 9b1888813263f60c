package io

import (
	"iter"
)

// SendAsUint16 sends a 16-bit unsigned integer as 2 bytes to the channel,
// most significant byte first.
func SendAsUint16(ch Channel, value uint16) (err error) {
	err = ch.Send(byte(value >> 8))
	if err != nil {
		return
	}
	err = ch.Send(byte(value))
	return
}

// ReceiveAsUint16 returns an iterator that reads bytes from the channel and
// yields complete 16-bit unsigned integers, most significant byte first.
// A trailing odd byte is dropped.
func ReceiveAsUint16(ch Channel) iter.Seq[uint16] {
	return func(yield func(value uint16) bool) {
		var n int
		var value uint16
		for data := range ch.Receive() {
			value = (value << 8) | uint16(data)
			if n == 1 {
				if !yield(value) {
					return
				}
				value = 0
				n = 0
			} else {
				n++
			}
		}
	}
}
