package io

import (
	"errors"

	"github.com/Michael-Bianconi/chip8/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
	ErrRomTooLarge = errors.New(f("rom too large"))

	// Keypad errors
	ErrKeyInvalid = errors.New(f("key invalid"))
)
