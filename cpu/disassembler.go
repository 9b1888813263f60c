package cpu

import (
	"encoding/binary"
	"io"
)

// Listing is one decoded word of a binary image.
type Listing struct {
	Address uint16
	Code    Code
	Text    string
}

// Disassemble renders a word as assembly text. Words that match no
// instruction return ok == false.
func Disassemble(code Code) (text string, ok bool) {
	inst, ok := Decode(code)
	if !ok {
		return
	}

	text = inst.Text(code)
	return
}

// DisassembleBinary lists every decodable word of an image loaded at
// PROGRAM_START. Undecodable words and a trailing odd byte are skipped.
func DisassembleBinary(data []byte) (listing []Listing) {
	return DisassembleAt(PROGRAM_START, data)
}

// DisassembleAt lists every decodable word of an image loaded at address.
func DisassembleAt(address uint16, data []byte) (listing []Listing) {
	for n := 0; n+1 < len(data); n += 2 {
		code := Code(binary.BigEndian.Uint16(data[n:]))
		text, ok := Disassemble(code)
		if !ok {
			continue
		}
		listing = append(listing, Listing{
			Address: address + uint16(n),
			Code:    code,
			Text:    text,
		})
	}

	return
}

// DisassembleText reads a binary image and returns the text of each
// decodable word.
func DisassembleText(input io.Reader) (lines []string, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	for _, entry := range DisassembleBinary(data) {
		lines = append(lines, entry.Text)
	}

	return
}
