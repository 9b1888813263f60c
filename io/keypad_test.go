package io

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypad(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	for key := range uint8(KEY_COUNT) {
		assert.False(kp.IsPressed(key))
	}

	assert.NoError(kp.Down(0xC))
	assert.True(kp.IsPressed(0xC))
	assert.False(kp.IsPressed(0xD))

	assert.NoError(kp.Down(0x1))
	assert.NoError(kp.Up(0xC))
	assert.False(kp.IsPressed(0xC))
	assert.True(kp.IsPressed(0x1))

	kp.Reset()
	assert.False(kp.IsPressed(0x1))
}

func TestKeypad_Invalid(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	assert.ErrorIs(kp.Down(KEY_COUNT), ErrKeyInvalid)
	assert.ErrorIs(kp.Up(0xFF), ErrKeyInvalid)
	assert.False(kp.IsPressed(KEY_COUNT))
}

func TestParseKey(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name string
		key  uint8
		err  error
	}{
		{"0", 0x0, nil},
		{"a", 0xA, nil},
		{"F", 0xF, nil},
		{"10", 0, ErrKeyInvalid},
		{"g", 0, ErrKeyInvalid},
		{"", 0, ErrKeyInvalid},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.name)
		if tt.err != nil {
			assert.ErrorIs(err, tt.err, tt.name)
			continue
		}
		assert.NoError(err, tt.name)
		assert.Equal(tt.key, key, tt.name)
	}
}

func TestKeypad_Defines(t *testing.T) {
	assert := assert.New(t)

	kp := &Keypad{}
	defines := maps.Collect(kp.Defines())
	assert.Len(defines, KEY_COUNT)
	assert.Equal("0x0", defines["KEY_0"])
	assert.Equal("0xf", defines["KEY_F"])
}
