package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"math/rand/v2"

	"github.com/Michael-Bianconi/chip8/display"
	"github.com/Michael-Bianconi/chip8/io"
)

const (
	MEMORY_SIZE    = 0x1000         // Bytes of addressable memory.
	ADDRESS_MASK   = 0x0fff         // Memory addresses wrap at 4KiB.
	PROGRAM_START  = uint16(0x200)  // Load address of program images.
	FONT_BASE      = uint16(0x000)  // Address of the font glyphs.
	FONT_HEIGHT    = 5              // Bytes per font glyph.
	REGISTER_COUNT = 16             // V0 through VF.
	REG_VF         = 0xf            // Flag register.
	IMAGE_LIMIT    = MEMORY_SIZE - 0x200
)

var _cpu_defines = map[string]string{
	"PROGRAM_START": fmt.Sprintf("0x%03x", PROGRAM_START),
	"FONT_BASE":     fmt.Sprintf("0x%03x", FONT_BASE),
	"FONT_HEIGHT":   fmt.Sprintf("%d", FONT_HEIGHT),
	"MEMORY_SIZE":   fmt.Sprintf("0x%x", MEMORY_SIZE),
	"STACK_LIMIT":   fmt.Sprintf("%d", STACK_LIMIT),
}

// Cpu is the simulation context of the CHIP-8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	V      [REGISTER_COUNT]uint8 // General purpose registers; VF is the flag.
	I      uint16                // Index register.
	DT     uint8                 // Delay timer.
	ST     uint8                 // Sound timer.
	Pc     uint16                // Program counter.
	Stack  Stack                 // Return address stack.
	Memory [MEMORY_SIZE]uint8    // Font, program and data.

	Display *display.Display // Framebuffer.
	Keypad  *io.Keypad       // Hex keypad.

	WaitingForKey bool  // Set by LD Vx, K until a key is pressed.
	KeyRegister   uint8 // Register to receive the key.

	Rand  *rand.Rand // Source for RND.
	Ticks int        // Instructions executed since reset.
}

// NewCpu creates a CPU with an image loaded at PROGRAM_START.
func NewCpu(image []byte) (cpu *Cpu, err error) {
	cpu = &Cpu{
		Display: display.NewDisplay(),
		Keypad:  &io.Keypad{},
	}

	cpu.Seed(rand.Uint64())
	cpu.Reset()

	err = cpu.Load(image)
	if err != nil {
		cpu = nil
		return
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Seed makes RND deterministic.
func (cpu *Cpu) Seed(seed uint64) {
	cpu.Rand = rand.New(rand.NewPCG(seed, seed^0x5eed))
}

// Reset the CPU state.
// - Clears the registers, timers, stack and memory.
// - Installs the font at FONT_BASE.
// - Blanks the display and releases all keys.
// - Sets the program counter to PROGRAM_START.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.V[:])
	cpu.I = 0
	cpu.DT = 0
	cpu.ST = 0
	cpu.Pc = PROGRAM_START
	cpu.Stack.Reset()
	clear(cpu.Memory[:])
	copy(cpu.Memory[FONT_BASE:], fontGlyphs[:])
	cpu.WaitingForKey = false
	cpu.KeyRegister = 0
	cpu.Ticks = 0

	if cpu.Display != nil {
		cpu.Display.Reset()
	}
	if cpu.Keypad != nil {
		cpu.Keypad.Reset()
	}
}

// Load copies an image into memory at PROGRAM_START.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > IMAGE_LIMIT {
		err = ErrImageTooLarge
		return
	}

	copy(cpu.Memory[PROGRAM_START:], image)
	return
}

// Read a byte of memory. Addresses wrap.
func (cpu *Cpu) Read(address uint16) uint8 {
	return cpu.Memory[address&ADDRESS_MASK]
}

// Write a byte of memory. Addresses wrap.
func (cpu *Cpu) Write(address uint16, value uint8) {
	cpu.Memory[address&ADDRESS_MASK] = value
}

// Fetch the big-endian word at the program counter.
func (cpu *Cpu) Fetch() (code Code) {
	return Code(uint16(cpu.Read(cpu.Pc))<<8 | uint16(cpu.Read(cpu.Pc+1)))
}

// Running reports if the program counter still addresses a whole word.
func (cpu *Cpu) Running() bool {
	return int(cpu.Pc)+1 < MEMORY_SIZE
}

// KeyDown presses a key. A pending LD Vx, K receives it.
func (cpu *Cpu) KeyDown(key uint8) (err error) {
	err = cpu.Keypad.Down(key)
	if err != nil {
		return
	}

	if cpu.WaitingForKey {
		cpu.V[cpu.KeyRegister] = key
		cpu.WaitingForKey = false
	}

	return
}

// KeyUp releases a key.
func (cpu *Cpu) KeyUp(key uint8) (err error) {
	return cpu.Keypad.Up(key)
}

// TickTimers counts down the delay and sound timers. The caller drives it,
// normally at 60Hz.
func (cpu *Cpu) TickTimers() {
	if cpu.DT > 0 {
		cpu.DT--
	}
	if cpu.ST > 0 {
		cpu.ST--
	}
}

// Sound reports if the buzzer is on.
func (cpu *Cpu) Sound() bool {
	return cpu.ST > 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "i", "dt", "st", "sp", "stack", "key"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("0x%03X", cpu.Pc)
		case "i":
			strval = fmt.Sprintf("0x%03X", cpu.I)
		case "dt":
			strval = fmt.Sprintf("0x%02X", cpu.DT)
		case "st":
			strval = fmt.Sprintf("0x%02X", cpu.ST)
		case "sp":
			strval = fmt.Sprintf("%d", cpu.Stack.Sp)
		case "stack":
			val, ok := cpu.Stack.Peek()
			if ok {
				strval = fmt.Sprintf("0x%03X", val)
			} else {
				strval = "-----"
			}
		case "key":
			strval = "-"
			if cpu.WaitingForKey {
				strval = fmt.Sprintf("V%X", cpu.KeyRegister)
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	for n, val := range cpu.V {
		text += fmt.Sprintf("% 5s: 0x%02X\n", fmt.Sprintf("V%X", n), val)
	}

	return
}

// Step executes the instruction at the program counter.
//
// Running is false once the program counter has left memory. While the
// CPU is waiting for a key, Step does nothing.
func (cpu *Cpu) Step() (running bool, err error) {
	if cpu.Display != nil {
		cpu.Display.Frame()
	}

	if !cpu.Running() {
		return
	}

	running = true

	if cpu.WaitingForKey {
		return
	}

	err = cpu.Execute(cpu.Fetch())
	return
}

// Execute a single instruction word as if it were at the program counter.
//
// On error the program counter and stack are unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	inst, ok := Decode(code)
	if cpu.Verbose {
		if ok {
			log.Printf("%03x: %04x %v", cpu.Pc, uint16(code), inst.Text(code))
		} else {
			log.Printf("%03x: %04x ???", cpu.Pc, uint16(code))
		}
	}

	next := cpu.Pc + 2
	if !ok {
		// Unknown words do nothing.
		cpu.Pc = next
		cpu.Ticks++
		return
	}

	x := code.X()
	y := code.Y()
	vx := &cpu.V[x]
	vy := &cpu.V[y]
	vf := &cpu.V[REG_VF]

	switch inst.Op {
	case OP_CLS:
		cpu.Display.Clear()
	case OP_RET:
		addr, ok := cpu.Stack.Pop()
		if !ok {
			err = ErrStackEmpty
			return
		}
		next = addr
	case OP_SYS:
		// Machine code routines are not supported.
	case OP_JP:
		next = code.NNN()
	case OP_CALL:
		if !cpu.Stack.Push(next) {
			err = ErrStackFull
			return
		}
		next = code.NNN()
	case OP_SE_V_BYTE:
		if *vx == code.KK() {
			next += 2
		}
	case OP_SNE_V_BYTE:
		if *vx != code.KK() {
			next += 2
		}
	case OP_SE_V_V:
		if *vx == *vy {
			next += 2
		}
	case OP_LD_V_BYTE:
		*vx = code.KK()
	case OP_ADD_V_BYTE:
		*vx += code.KK()
	case OP_LD_V_V:
		*vx = *vy
	case OP_OR:
		*vx |= *vy
	case OP_AND:
		*vx &= *vy
	case OP_XOR:
		*vx ^= *vy
	case OP_ADD_V_V:
		*vx += *vy
	case OP_SUB:
		*vf = flag(*vx > *vy)
		*vx -= *vy
	case OP_SHR:
		*vf = *vx & 1
		*vx >>= 1
	case OP_SUBN:
		*vf = flag(*vy > *vx)
		*vx = *vy - *vx
	case OP_SHL:
		*vf = *vx >> 7
		*vx <<= 1
	case OP_SNE_V_V:
		if *vx != *vy {
			next += 2
		}
	case OP_LD_I_ADDR:
		cpu.I = code.NNN()
	case OP_JP_V0:
		next = (uint16(cpu.V[0]) + code.NNN()) & ADDRESS_MASK
	case OP_RND:
		*vx = uint8(cpu.Rand.UintN(256)) & code.KK()
	case OP_DRW:
		sprite := make([]byte, code.N())
		for n := range sprite {
			sprite[n] = cpu.Read(cpu.I + uint16(n))
		}
		collision := cpu.Display.Draw(int(*vx), int(*vy), sprite)
		*vf = flag(collision)
	case OP_SKP:
		if cpu.Keypad.IsPressed(*vx) {
			next += 2
		}
	case OP_SKNP:
		if !cpu.Keypad.IsPressed(*vx) {
			next += 2
		}
	case OP_LD_V_DT:
		*vx = cpu.DT
	case OP_LD_V_K:
		cpu.WaitingForKey = true
		cpu.KeyRegister = x
	case OP_LD_DT_V:
		cpu.DT = *vx
	case OP_LD_ST_V:
		cpu.ST = *vx
	case OP_ADD_I_V:
		cpu.I = (cpu.I + uint16(*vx)) & ADDRESS_MASK
	case OP_LD_F_V:
		cpu.I = FONT_BASE + uint16(*vx&0xf)*FONT_HEIGHT
	case OP_LD_B_V:
		cpu.Write(cpu.I, *vx/100)
		cpu.Write(cpu.I+1, *vx%100/10)
		cpu.Write(cpu.I+2, *vx%10)
	case OP_LD_AI_V:
		for n := range x + 1 {
			cpu.Write(cpu.I+uint16(n), cpu.V[n])
		}
	case OP_LD_V_AI:
		for n := range x + 1 {
			cpu.V[n] = cpu.Read(cpu.I + uint16(n))
		}
	}

	cpu.Pc = next
	cpu.Ticks++

	return
}

func flag(cond bool) uint8 {
	if cond {
		return 1
	}
	return 0
}
