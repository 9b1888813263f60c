package io

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
)

const (
	KEY_COUNT = 16 // Keys 0x0 through 0xF.
)

var _keypad_defines = func() map[string]string {
	defines := make(map[string]string, KEY_COUNT)
	for key := range KEY_COUNT {
		defines[fmt.Sprintf("KEY_%X", key)] = fmt.Sprintf("0x%x", key)
	}
	return defines
}()

// Keypad tracks which of the sixteen hex keys are held down.
type Keypad struct {
	Verbose bool
	Pressed [KEY_COUNT]bool
}

// Defines for the keypad
func (kp *Keypad) Defines() iter.Seq2[string, string] {
	return maps.All(_keypad_defines)
}

// ParseKey reads a key name, a single hex digit.
func ParseKey(name string) (key uint8, err error) {
	value, err := strconv.ParseUint(name, 16, 8)
	if err != nil || value >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	key = uint8(value)
	return
}

// Down presses a key.
func (kp *Keypad) Down(key uint8) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	if kp.Verbose {
		log.Printf("keypad: %X down", key)
	}

	kp.Pressed[key] = true
	return
}

// Up releases a key.
func (kp *Keypad) Up(key uint8) (err error) {
	if key >= KEY_COUNT {
		err = ErrKeyInvalid
		return
	}

	if kp.Verbose {
		log.Printf("keypad: %X up", key)
	}

	kp.Pressed[key] = false
	return
}

// IsPressed reports if a key is held. Out of range keys are never held.
func (kp *Keypad) IsPressed(key uint8) bool {
	if key >= KEY_COUNT {
		return false
	}
	return kp.Pressed[key]
}

// Reset releases all keys.
func (kp *Keypad) Reset() {
	clear(kp.Pressed[:])
}
