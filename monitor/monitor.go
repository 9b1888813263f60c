// Package monitor is a line oriented debugger for the emulator.
package monitor

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Michael-Bianconi/chip8/cpu"
	"github.com/Michael-Bianconi/chip8/emulator"
	"github.com/Michael-Bianconi/chip8/io"
	"github.com/Michael-Bianconi/chip8/translate"
)

var f = translate.From

const (
	DIS_COUNT = 8 // Default instructions listed by DIS.
)

var (
	msgInvalidBreakpoint = f("Breakpoints must be in the range of [0, 0xFFF]")
	msgInvalidAddress    = f("Addresses must be in the range of [0, 0xFFF]")
	msgUnknownCommand    = f("Unknown command. Type HELP for options.")

	helpText = []string{
		f("Chip-8 Interpreter"),
		f("HELP: Show help text"),
		f("RUN: Start (or resume) emulation"),
		f("STEP: Execute the current instruction"),
		f("RESET: Reload the program"),
		f("SET (<register> | mem[<i>] | stack[<i>]) <value>: Set data to value"),
		f("BREAKPOINT <address>: Pause emulator when the program counter reaches this point"),
		f("NOBREAKPOINT <address>: Remove breakpoint at given address"),
		f("REGS: Show the registers"),
		f("DIS [<address> [<count>]]: Disassemble memory"),
		f("SCREEN: Show the display"),
		f("KEY (DOWN | UP) <key>: Press or release a key"),
	}
)

var reIndexed = regexp.MustCompile(`^(MEM|STACK)\[([0-9A-FX]+)\]$`)

// Monitor interprets debugger commands against an emulator.
type Monitor struct {
	Emulator *emulator.Emulator
	RunLimit int // Instruction budget for each RUN.
}

// NewMonitor creates a monitor for an emulator.
func NewMonitor(emu *emulator.Emulator) (mon *Monitor) {
	mon = &Monitor{
		Emulator: emu,
		RunLimit: emulator.RUN_LIMIT,
	}

	return
}

// parseValue reads '0x' prefixed hex, or decimal.
func parseValue(text string) (value uint64, err error) {
	text = strings.ToUpper(text)
	if hex, ok := strings.CutPrefix(text, "0X"); ok {
		value, err = strconv.ParseUint(hex, 16, 64)
	} else {
		value, err = strconv.ParseUint(text, 10, 64)
	}

	return
}

// Interpret a single command line, returning the lines of output.
func (mon *Monitor) Interpret(line string) (output []string) {
	words := strings.Fields(strings.ToUpper(line))
	if len(words) == 0 {
		return
	}

	command, args := words[0], words[1:]

	switch {
	case command == "HELP" && len(args) == 0:
		output = helpText
	case command == "RUN" && len(args) == 0:
		output = mon.run()
	case command == "STEP" && len(args) == 0:
		output = mon.step()
	case command == "RESET" && len(args) == 0:
		output = mon.reset()
	case command == "REGS" && len(args) == 0:
		output = lines(mon.Emulator.Cpu.String())
	case command == "SCREEN" && len(args) == 0:
		output = lines(mon.Emulator.Cpu.Display.String())
	case command == "BREAKPOINT" && len(args) == 1:
		addr, err := parseValue(args[0])
		if err != nil || !mon.Emulator.SetBreakpoint(int(min(addr, cpu.MEMORY_SIZE))) {
			output = []string{msgInvalidBreakpoint}
		}
	case command == "NOBREAKPOINT" && len(args) == 1:
		addr, err := parseValue(args[0])
		if err != nil || addr > cpu.ADDRESS_MASK {
			output = []string{msgInvalidBreakpoint}
			break
		}
		mon.Emulator.RemoveBreakpoint(int(addr))
	case command == "SET" && len(args) == 2:
		output = mon.set(args[0], args[1])
	case command == "DIS" && len(args) <= 2:
		output = mon.dis(args)
	case command == "KEY" && len(args) == 2:
		output = mon.key(args[0], args[1])
	default:
		output = []string{msgUnknownCommand}
	}

	return
}

func lines(text string) []string {
	return strings.Split(strings.TrimRight(text, "\n"), "\n")
}

func (mon *Monitor) status(done bool, err error) (output []string) {
	emu := mon.Emulator

	switch {
	case err != nil:
		output = []string{err.Error()}
	case done:
		output = []string{f("Halted at 0x%03X", emu.Cpu.Pc)}
	case emu.Paused:
		output = []string{f("Breakpoint at 0x%03X", emu.Cpu.Pc)}
	case emu.Cpu.WaitingForKey:
		output = []string{f("Waiting for key into V%X", emu.Cpu.KeyRegister)}
	}

	return
}

func (mon *Monitor) run() []string {
	done, err := mon.Emulator.Run(mon.RunLimit)
	return mon.status(done, err)
}

func (mon *Monitor) step() []string {
	if mon.Emulator.Cpu.WaitingForKey {
		return mon.status(false, nil)
	}

	done, err := mon.Emulator.Tick()
	return mon.status(done, err)
}

func (mon *Monitor) reset() (output []string) {
	err := mon.Emulator.Reset()
	if err != nil {
		output = []string{err.Error()}
	}
	return
}

func (mon *Monitor) set(target string, text string) (output []string) {
	value, err := parseValue(text)
	if err != nil {
		return []string{f("Invalid value: %v", text)}
	}

	if match := reIndexed.FindStringSubmatch(target); match != nil {
		index, err := parseValue(match[2])
		if err != nil {
			return []string{f("Invalid index: %v", match[2])}
		}
		if match[1] == "MEM" {
			return mon.setMemory(index, value)
		}
		return mon.setStack(index, value)
	}

	return mon.setRegister(target, value)
}

func outOfRange(target string, value uint64) []string {
	return []string{f("Value 0x%X out of range for %v", value, target)}
}

func (mon *Monitor) setRegister(name string, value uint64) (output []string) {
	cp := mon.Emulator.Cpu

	if reg, ok := strings.CutPrefix(name, "V"); ok && len(reg) == 1 {
		n, err := strconv.ParseUint(reg, 16, 8)
		if err != nil {
			return []string{msgUnknownCommand}
		}
		if value > 0xFF {
			return outOfRange(name, value)
		}
		cp.V[n] = uint8(value)
		return
	}

	switch name {
	case "I", "PC":
		if value > cpu.ADDRESS_MASK {
			return outOfRange(name, value)
		}
		if name == "I" {
			cp.I = uint16(value)
		} else {
			cp.Pc = uint16(value)
		}
	case "DT", "ST":
		if value > 0xFF {
			return outOfRange(name, value)
		}
		if name == "DT" {
			cp.DT = uint8(value)
		} else {
			cp.ST = uint8(value)
		}
	case "SP":
		if value > cpu.STACK_LIMIT {
			return outOfRange(name, value)
		}
		cp.Stack.SetSp(int(value))
	default:
		output = []string{msgUnknownCommand}
	}

	return
}

// setMemory writes value big-endian from addr, using as few bytes as hold it.
func (mon *Monitor) setMemory(addr uint64, value uint64) (output []string) {
	if addr > cpu.ADDRESS_MASK {
		return []string{msgInvalidAddress}
	}

	data := bytes.TrimLeft(binary.BigEndian.AppendUint64(nil, value), "\x00")
	if len(data) == 0 {
		data = []byte{0}
	}

	for n, b := range data {
		mon.Emulator.Cpu.Write(uint16(addr)+uint16(n), b)
	}

	return
}

func (mon *Monitor) setStack(index uint64, value uint64) (output []string) {
	if value > cpu.ADDRESS_MASK {
		return outOfRange("STACK", value)
	}

	err := mon.Emulator.Cpu.Stack.Set(int(min(index, cpu.STACK_LIMIT)), uint16(value))
	if err != nil {
		output = []string{err.Error()}
	}

	return
}

func (mon *Monitor) dis(args []string) (output []string) {
	cp := mon.Emulator.Cpu

	addr := uint64(cp.Pc)
	count := uint64(DIS_COUNT)

	var err error
	if len(args) > 0 {
		addr, err = parseValue(args[0])
		if err != nil || addr > cpu.ADDRESS_MASK {
			return []string{msgInvalidAddress}
		}
	}
	if len(args) > 1 {
		count, err = parseValue(args[1])
		if err != nil {
			return []string{f("Invalid value: %v", args[1])}
		}
		count = min(count, cpu.MEMORY_SIZE/2)
	}

	pc := uint16(addr)
	for range count {
		code := cpu.Code(uint16(cp.Read(pc))<<8 | uint16(cp.Read(pc+1)))
		mark := " "
		if pc == cp.Pc {
			mark = ">"
		}
		output = append(output, fmt.Sprintf("%v %03X: %04X  %v", mark, pc, uint16(code), code))
		pc = (pc + 2) & cpu.ADDRESS_MASK
	}

	return
}

func (mon *Monitor) key(action string, name string) (output []string) {
	key, err := io.ParseKey(name)
	if err != nil {
		return []string{err.Error()}
	}

	switch action {
	case "DOWN":
		err = mon.Emulator.Cpu.KeyDown(key)
	case "UP":
		err = mon.Emulator.Cpu.KeyUp(key)
	default:
		return []string{msgUnknownCommand}
	}

	if err != nil {
		output = []string{err.Error()}
	}

	return
}
