// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/Michael-Bianconi/chip8/cpu"
	"github.com/Michael-Bianconi/chip8/display"
	"github.com/Michael-Bianconi/chip8/internal"
	"github.com/Michael-Bianconi/chip8/io"
)

const (
	CYCLES_PER_FRAME = 10     // Instructions per 60Hz timer tick.
	RUN_LIMIT        = 100000 // Default instruction budget for Run.
)

var _emulator_defines = map[string]string{
	"CYCLES_PER_FRAME": fmt.Sprintf("%d", CYCLES_PER_FRAME),
	"SCREEN_WIDTH":     fmt.Sprintf("%d", display.SCREEN_WIDTH),
	"SCREEN_HEIGHT":    fmt.Sprintf("%d", display.SCREEN_HEIGHT),
}

// Emulator state. CPU + ROM + breakpoints.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Rom io.Rom // Program image, reloaded on every reset.

	Paused         bool // Set when a breakpoint is reached.
	CyclesPerFrame int  // Instructions per timer tick; zero disables the timers.

	breakpoints map[uint16]bool
	cycles      int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	// An empty image always fits.
	cp, _ := cpu.NewCpu(nil)

	emu = &Emulator{
		Cpu:            cp,
		Program:        &cpu.Program{},
		CyclesPerFrame: CYCLES_PER_FRAME,
		breakpoints:    map[uint16]bool{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(internal.IterMapSorted(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Rom.Defines(),
		emu.Cpu.Keypad.Defines(),
	)
}

// Load an assembled program as the ROM, and reset.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	emu.Program = prog
	emu.Rom.Data = prog.Binary()

	err = emu.Reset()
	return
}

// Reset the CPU and reload the ROM. Breakpoints are kept.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	emu.Rom.Rewind()
	err = emu.Cpu.Load(slices.Collect(emu.Rom.Receive()))
	if err != nil {
		return
	}

	emu.Paused = false
	emu.cycles = 0

	return
}

// Code returns the current instruction code.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.Fetch()
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// SetBreakpoint pauses the emulator when the program counter reaches addr.
// Addresses outside of memory are refused.
func (emu *Emulator) SetBreakpoint(addr int) (ok bool) {
	if addr < 0 || addr > cpu.ADDRESS_MASK {
		return
	}

	emu.breakpoints[uint16(addr)] = true
	ok = true
	return
}

// RemoveBreakpoint clears a breakpoint, if set.
func (emu *Emulator) RemoveBreakpoint(addr int) {
	if addr < 0 || addr > cpu.ADDRESS_MASK {
		return
	}

	delete(emu.breakpoints, uint16(addr))
}

// Breakpoints returns the breakpoint addresses, in order.
func (emu *Emulator) Breakpoints() []uint16 {
	return slices.Sorted(maps.Keys(emu.breakpoints))
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	running, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	if !running {
		done = true
		return
	}

	emu.cycles++
	if emu.CyclesPerFrame > 0 && emu.cycles >= emu.CyclesPerFrame {
		emu.cycles = 0
		emu.Cpu.TickTimers()
	}

	if emu.breakpoints[emu.Cpu.Pc] {
		if emu.Verbose {
			log.Printf("emulator: breakpoint 0x%03x", emu.Cpu.Pc)
		}
		emu.Paused = true
	}

	return
}

// Run unpauses the emulator and ticks until it halts, reaches a breakpoint,
// waits for a key, or has executed limit instructions.
func (emu *Emulator) Run(limit int) (done bool, err error) {
	emu.Paused = false

	for range limit {
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
		if emu.Paused || emu.Cpu.WaitingForKey {
			return
		}
	}

	return
}

// Listing disassembles the ROM.
func (emu *Emulator) Listing() (listing []cpu.Listing) {
	emu.Rom.Rewind()

	addr := uint16(io.ROM_START)
	for word := range io.ReceiveAsUint16(&emu.Rom) {
		code := cpu.Code(word)
		text, ok := cpu.Disassemble(code)
		if ok {
			listing = append(listing, cpu.Listing{Address: addr, Code: code, Text: text})
		}
		addr += 2
	}

	return
}
