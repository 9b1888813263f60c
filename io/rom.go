package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
)

const (
	ROM_START = 0x200          // Load address of program images.
	ROM_LIMIT = 0x1000 - 0x200 // Largest image that fits in memory.
)

var _rom_defines = map[string]string{
	"ROM_START": fmt.Sprintf("0x%03x", ROM_START),
	"ROM_LIMIT": fmt.Sprintf("0x%03x", ROM_LIMIT),
}

// Rom is a read-only program image.
type Rom struct {
	Data []byte
}

var _ Channel = (*Rom)(nil)

// Defines for the ROM
func (rc *Rom) Defines() iter.Seq2[string, string] {
	return maps.All(_rom_defines)
}

// Load replaces the image with the contents of a reader.
func (rc *Rom) Load(input io.Reader) (err error) {
	data, err := io.ReadAll(io.LimitReader(input, ROM_LIMIT+1))
	if err != nil {
		return
	}

	if len(data) > ROM_LIMIT {
		err = ErrRomTooLarge
		return
	}

	rc.Data = data
	return
}

func (rc *Rom) Rewind() {}

func (rc *Rom) Receive() iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		for _, data := range rc.Data {
			if !yield(data) {
				return
			}
		}
	}
}

func (rc *Rom) Send(value byte) error {
	return ErrChannelFull
}
