package cpu

import (
	"fmt"
	"strings"
)

// Code is a single 16-bit instruction word, stored big-endian in memory.
type Code uint16

// X is the first register nibble.
func (code Code) X() uint8 {
	return uint8(code>>8) & 0xf
}

// Y is the second register nibble.
func (code Code) Y() uint8 {
	return uint8(code>>4) & 0xf
}

// N is the low nibble.
func (code Code) N() uint8 {
	return uint8(code) & 0xf
}

// KK is the low byte.
func (code Code) KK() uint8 {
	return uint8(code)
}

// NNN is the low 12-bit address.
func (code Code) NNN() uint16 {
	return uint16(code) & 0xfff
}

// String returns the disassembly of the code, or its hex value when it
// does not decode.
func (code Code) String() string {
	text, ok := Disassemble(code)
	if !ok {
		return fmt.Sprintf("0x%04X", uint16(code))
	}
	return text
}

// CodeOp identifies one of the 35 instructions.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_CLS        = CodeOp(0)  // CLS
	OP_RET        = CodeOp(1)  // RET
	OP_SYS        = CodeOp(2)  // SYS
	OP_JP         = CodeOp(3)  // JP
	OP_CALL       = CodeOp(4)  // CALL
	OP_SE_V_BYTE  = CodeOp(5)  // SE
	OP_SNE_V_BYTE = CodeOp(6)  // SNE
	OP_SE_V_V     = CodeOp(7)  // SE
	OP_LD_V_BYTE  = CodeOp(8)  // LD
	OP_ADD_V_BYTE = CodeOp(9)  // ADD
	OP_LD_V_V     = CodeOp(10) // LD
	OP_OR         = CodeOp(11) // OR
	OP_AND        = CodeOp(12) // AND
	OP_XOR        = CodeOp(13) // XOR
	OP_ADD_V_V    = CodeOp(14) // ADD
	OP_SUB        = CodeOp(15) // SUB
	OP_SHR        = CodeOp(16) // SHR
	OP_SUBN       = CodeOp(17) // SUBN
	OP_SHL        = CodeOp(18) // SHL
	OP_SNE_V_V    = CodeOp(19) // SNE
	OP_LD_I_ADDR  = CodeOp(20) // LD
	OP_JP_V0      = CodeOp(21) // JP
	OP_RND        = CodeOp(22) // RND
	OP_DRW        = CodeOp(23) // DRW
	OP_SKP        = CodeOp(24) // SKP
	OP_SKNP       = CodeOp(25) // SKNP
	OP_LD_V_DT    = CodeOp(26) // LD
	OP_LD_V_K     = CodeOp(27) // LD
	OP_LD_DT_V    = CodeOp(28) // LD
	OP_LD_ST_V    = CodeOp(29) // LD
	OP_ADD_I_V    = CodeOp(30) // ADD
	OP_LD_F_V     = CodeOp(31) // LD
	OP_LD_B_V     = CodeOp(32) // LD
	OP_LD_AI_V    = CodeOp(33) // LD
	OP_LD_V_AI    = CodeOp(34) // LD
)

// Instruction is a single entry of the decode table.
// A word matches when (word ^ Pattern) & Mask == 0.
type Instruction struct {
	Op      CodeOp
	Pattern Code
	Mask    Code
	Kinds   []OperandKind // Canonical operand order, as listed.
}

var (
	kindsNone   = []OperandKind{}
	kindsAddr   = []OperandKind{KIND_ADDR}
	kindsV      = []OperandKind{KIND_V}
	kindsVV     = []OperandKind{KIND_V, KIND_V}
	kindsVByte  = []OperandKind{KIND_V, KIND_BYTE}
	kindsVVNibb = []OperandKind{KIND_V, KIND_V, KIND_NIBBLE}
)

// instructionTable is indexed by CodeOp, and is also the first-match decode
// order.
var instructionTable = [...]Instruction{
	{OP_CLS, 0x00E0, 0xFFFF, kindsNone},
	{OP_RET, 0x00EE, 0xFFFF, kindsNone},
	{OP_SYS, 0x0000, 0xF000, kindsAddr},
	{OP_JP, 0x1000, 0xF000, kindsAddr},
	{OP_CALL, 0x2000, 0xF000, kindsAddr},
	{OP_SE_V_BYTE, 0x3000, 0xF000, kindsVByte},
	{OP_SNE_V_BYTE, 0x4000, 0xF000, kindsVByte},
	{OP_SE_V_V, 0x5000, 0xF00F, kindsVV},
	{OP_LD_V_BYTE, 0x6000, 0xF000, kindsVByte},
	{OP_ADD_V_BYTE, 0x7000, 0xF000, kindsVByte},
	{OP_LD_V_V, 0x8000, 0xF00F, kindsVV},
	{OP_OR, 0x8001, 0xF00F, kindsVV},
	{OP_AND, 0x8002, 0xF00F, kindsVV},
	{OP_XOR, 0x8003, 0xF00F, kindsVV},
	{OP_ADD_V_V, 0x8004, 0xF00F, kindsVV},
	{OP_SUB, 0x8005, 0xF00F, kindsVV},
	{OP_SHR, 0x8006, 0xF00F, kindsVV},
	{OP_SUBN, 0x8007, 0xF00F, kindsVV},
	{OP_SHL, 0x800E, 0xF00F, kindsVV},
	{OP_SNE_V_V, 0x9000, 0xF00F, kindsVV},
	{OP_LD_I_ADDR, 0xA000, 0xF000, []OperandKind{KIND_I, KIND_ADDR}},
	{OP_JP_V0, 0xB000, 0xF000, []OperandKind{KIND_V0, KIND_ADDR}},
	{OP_RND, 0xC000, 0xF000, kindsVByte},
	{OP_DRW, 0xD000, 0xF000, kindsVVNibb},
	{OP_SKP, 0xE09E, 0xF0FF, kindsV},
	{OP_SKNP, 0xE0A1, 0xF0FF, kindsV},
	{OP_LD_V_DT, 0xF007, 0xF0FF, []OperandKind{KIND_V, KIND_DT}},
	{OP_LD_V_K, 0xF00A, 0xF0FF, []OperandKind{KIND_V, KIND_K}},
	{OP_LD_DT_V, 0xF015, 0xF0FF, []OperandKind{KIND_DT, KIND_V}},
	{OP_LD_ST_V, 0xF018, 0xF0FF, []OperandKind{KIND_ST, KIND_V}},
	{OP_ADD_I_V, 0xF01E, 0xF0FF, []OperandKind{KIND_I, KIND_V}},
	{OP_LD_F_V, 0xF029, 0xF0FF, []OperandKind{KIND_F, KIND_V}},
	{OP_LD_B_V, 0xF033, 0xF0FF, []OperandKind{KIND_B, KIND_V}},
	{OP_LD_AI_V, 0xF055, 0xF0FF, []OperandKind{KIND_AI, KIND_V}},
	{OP_LD_V_AI, 0xF065, 0xF0FF, []OperandKind{KIND_V, KIND_AI}},
}

// Instruction returns the decode table entry for an op.
func (op CodeOp) Instruction() (inst *Instruction) {
	if op < 0 || int(op) >= len(instructionTable) {
		return
	}
	inst = &instructionTable[op]
	return
}

// Mnemonic is the assembler mnemonic of the op.
func (op CodeOp) Mnemonic() string {
	return op.String()
}

// Decode finds the first table entry matching a word.
func Decode(code Code) (inst *Instruction, ok bool) {
	for n := range instructionTable {
		entry := &instructionTable[n]
		if (code^entry.Pattern)&entry.Mask == 0 {
			inst = entry
			ok = true
			return
		}
	}

	return
}

// Operands extracts the operands of a word, in the instruction's canonical
// order.
func (inst *Instruction) Operands(code Code) (operands []Operand) {
	return decodeOperands(code, inst.Kinds)
}

// Encode places operands into the instruction's pattern, in the
// instruction's canonical order.
func (inst *Instruction) Encode(operands []Operand) (code Code) {
	return encodeOperands(inst.Pattern, inst.Kinds, operands)
}

// Text renders the canonical assembly text for a word matching the
// instruction.
func (inst *Instruction) Text(code Code) string {
	mnemonic := inst.Op.Mnemonic()
	if len(inst.Kinds) == 0 {
		return mnemonic
	}

	operands := inst.Operands(code)
	args := make([]string, len(operands))
	for n, operand := range operands {
		args[n] = inst.Kinds[n].Format(operand)
	}

	return mnemonic + " " + strings.Join(args, ", ")
}

// decodeOperands pulls fields out of a word. The first register is X, the
// second Y; numbers take the low nibble, byte or address.
func decodeOperands(code Code, kinds []OperandKind) (operands []Operand) {
	operands = make([]Operand, len(kinds))
	regs := 0
	for n, kind := range kinds {
		switch kind {
		case KIND_V:
			if regs == 0 {
				operands[n] = Register(code.X())
			} else {
				operands[n] = Register(code.Y())
			}
			regs++
		case KIND_NIBBLE:
			operands[n] = Literal(code.N())
		case KIND_BYTE:
			operands[n] = Literal(code.KK())
		case KIND_ADDR:
			operands[n] = Literal(code.NNN())
		default:
			operands[n] = Keyword(kind)
		}
	}

	return
}

// encodeOperands is the inverse of decodeOperands.
func encodeOperands(pattern Code, kinds []OperandKind, operands []Operand) (code Code) {
	code = pattern
	regs := 0
	for n, kind := range kinds {
		if n >= len(operands) {
			break
		}
		switch operand := operands[n].(type) {
		case Register:
			if regs == 0 {
				code |= Code(operand&0xf) << 8
			} else {
				code |= Code(operand&0xf) << 4
			}
			regs++
		case Literal:
			code |= Code(operand) & kind.fieldMask()
		}
	}

	return
}
