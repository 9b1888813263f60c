// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"io"
	"log"
	"strings"
)

// Format is one accepted operand signature of a mnemonic.
type Format struct {
	Mnemonic string
	Kinds    []OperandKind
	Op       CodeOp
}

// formatTable lists the formats of each mnemonic in the order they are
// tried. The first format whose operands all parse wins.
var formatTable = []Format{
	{"ADD", []OperandKind{KIND_I, KIND_V}, OP_ADD_I_V},
	{"ADD", []OperandKind{KIND_V, KIND_BYTE}, OP_ADD_V_BYTE},
	{"ADD", []OperandKind{KIND_V, KIND_V}, OP_ADD_V_V},
	{"AND", []OperandKind{KIND_V, KIND_V}, OP_AND},
	{"CALL", []OperandKind{KIND_ADDR}, OP_CALL},
	{"CLS", []OperandKind{}, OP_CLS},
	{"DRW", []OperandKind{KIND_V, KIND_V, KIND_NIBBLE}, OP_DRW},
	{"JP", []OperandKind{KIND_ADDR}, OP_JP},
	{"JP", []OperandKind{KIND_V0, KIND_ADDR}, OP_JP_V0},
	{"LD", []OperandKind{KIND_B, KIND_V}, OP_LD_B_V},
	{"LD", []OperandKind{KIND_DT, KIND_V}, OP_LD_DT_V},
	{"LD", []OperandKind{KIND_F, KIND_V}, OP_LD_F_V},
	{"LD", []OperandKind{KIND_I, KIND_ADDR}, OP_LD_I_ADDR},
	{"LD", []OperandKind{KIND_AI, KIND_V}, OP_LD_AI_V},
	{"LD", []OperandKind{KIND_ST, KIND_V}, OP_LD_ST_V},
	{"LD", []OperandKind{KIND_V, KIND_BYTE}, OP_LD_V_BYTE},
	{"LD", []OperandKind{KIND_V, KIND_DT}, OP_LD_V_DT},
	{"LD", []OperandKind{KIND_V, KIND_AI}, OP_LD_V_AI},
	{"LD", []OperandKind{KIND_V, KIND_K}, OP_LD_V_K},
	{"LD", []OperandKind{KIND_V, KIND_V}, OP_LD_V_V},
	{"OR", []OperandKind{KIND_V, KIND_V}, OP_OR},
	{"RET", []OperandKind{}, OP_RET},
	{"RND", []OperandKind{KIND_V, KIND_BYTE}, OP_RND},
	{"SE", []OperandKind{KIND_V, KIND_BYTE}, OP_SE_V_BYTE},
	{"SE", []OperandKind{KIND_V, KIND_V}, OP_SE_V_V},
	{"SHL", []OperandKind{KIND_V}, OP_SHL},
	{"SHL", []OperandKind{KIND_V, KIND_V}, OP_SHL},
	{"SHR", []OperandKind{KIND_V}, OP_SHR},
	{"SHR", []OperandKind{KIND_V, KIND_V}, OP_SHR},
	{"SKNP", []OperandKind{KIND_V}, OP_SKNP},
	{"SKP", []OperandKind{KIND_V}, OP_SKP},
	{"SNE", []OperandKind{KIND_V, KIND_BYTE}, OP_SNE_V_BYTE},
	{"SNE", []OperandKind{KIND_V, KIND_V}, OP_SNE_V_V},
	{"SUB", []OperandKind{KIND_V, KIND_V}, OP_SUB},
	{"SUBN", []OperandKind{KIND_V, KIND_V}, OP_SUBN},
	{"SYS", []OperandKind{KIND_ADDR}, OP_SYS},
	{"XOR", []OperandKind{KIND_V, KIND_V}, OP_XOR},
}

// Formats returns the formats of a mnemonic, in match order.
func Formats(mnemonic string) (formats []*Format) {
	for n := range formatTable {
		form := &formatTable[n]
		if strings.EqualFold(form.Mnemonic, mnemonic) {
			formats = append(formats, form)
		}
	}
	return
}

// Match parses the operands against the format's kinds.
func (form *Format) Match(operands []string) (values []Operand, err error) {
	if len(operands) != len(form.Kinds) {
		err = ErrOperandMismatch
		return
	}

	values = make([]Operand, len(operands))
	for n, kind := range form.Kinds {
		values[n], err = kind.Parse(operands[n])
		if err != nil {
			values = nil
			return
		}
	}

	return
}

// Encode builds the word for operands that matched the format.
func (form *Format) Encode(values []Operand) (code Code) {
	return encodeOperands(form.Op.Instruction().Pattern, form.Kinds, values)
}

// assembleWords encodes a split instruction.
func assembleWords(mnemonic string, operands []string) (code Code, err error) {
	formats := Formats(mnemonic)
	if len(formats) == 0 {
		err = ErrOpcodeUnrecognized
		return
	}

	for _, form := range formats {
		var values []Operand
		values, err = form.Match(operands)
		if errors.Is(err, ErrOperandMismatch) {
			continue
		}
		if err != nil {
			return
		}
		code = form.Encode(values)
		return
	}

	err = ErrFormatMismatch
	return
}

// AssembleLine encodes a single line of assembly, without labels, defines
// or comments.
func AssembleLine(line string) (code Code, err error) {
	mnemonic, operands := splitInstruction(line)
	if len(mnemonic) == 0 {
		err = ErrOpcodeUnrecognized
		return
	}

	return assembleWords(mnemonic, operands)
}

// Assembler is a two pass assembler for the CHIP-8 instruction set.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Preprocessor
}

// Assemble assembles an input stream into a Program.
//
// Assembly stops at the first failing line, returning an *ErrSyntax and no
// program.
func (asm *Assembler) Assemble(input io.Reader) (prog *Program, err error) {
	asm.Preprocessor.Verbose = asm.Verbose

	lines, err := asm.Preprocessor.Run(input)
	if err != nil {
		return
	}

	opcodes := make([]Opcode, 0, len(lines))
	for _, line := range lines {
		var code Code
		code, err = assembleWords(line.Mnemonic, line.Operands)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Source, Err: err}
			return
		}

		if asm.Verbose {
			log.Printf("%03x: %04x %v", line.Address, uint16(code), line)
		}

		opcodes = append(opcodes, Opcode{
			LineNo:  line.LineNo,
			Address: line.Address,
			Text:    line.String(),
			Code:    code,
		})
	}

	prog = &Program{
		Opcodes: opcodes,
	}

	return
}
