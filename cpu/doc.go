// Package cpu implements the CHIP-8 virtual processor, its assembler and
// its disassembler.
//
// The processor has sixteen 8-bit registers (V0-VF, with VF used as the
// flag register), a 12-bit index register (I), delay and sound timers, a
// sixteen entry call stack and 4KiB of memory. Programs are loaded at
// 0x200; the hexadecimal font glyphs live at 0x000.
//
// The assembler, disassembler and interpreter share a single instruction
// table, so an opcode word decodes the same way whether it is being
// executed or listed, and every listed instruction reassembles to the same
// word.
package cpu
