package cpu

import (
	"encoding/binary"
	"iter"
)

// Opcode is a single assembled instruction.
type Opcode struct {
	LineNo  int    // Source line number.
	Address uint16 // Load address.
	Text    string // Preprocessed assembly text.
	Code    Code   // Encoded word.
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
}

// Debug finds the opcode loaded at an address.
func (prog *Program) Debug(address uint16) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Address == address {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the program image, big-endian words in address order.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, 0, len(prog.Opcodes)*2)
	for _, code := range prog.Codes() {
		bins = binary.BigEndian.AppendUint16(bins, uint16(code))
	}

	return
}

// Codes iterates over the address and word of every opcode.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	return func(yield func(address uint16, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Address, op.Code) {
				return
			}
		}
	}
}
