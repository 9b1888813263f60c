package cpu

import (
	"errors"

	"github.com/Michael-Bianconi/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackEmpty    = errors.New(f("stack empty"))
	ErrStackFull     = errors.New(f("stack full"))
	ErrStackIndex    = errors.New(f("stack index invalid"))
	ErrImageTooLarge = errors.New(f("image too large"))
	ErrRegister      = errors.New(f("register invalid"))

	// Operand decode errors
	ErrOperandMismatch = errors.New(f("operand mismatch"))

	// Assembler errors
	ErrOpcodeUnrecognized   = errors.New(f("opcode unrecognized"))
	ErrFormatMismatch       = errors.New(f("no format matches operands"))
	ErrLabelInvalid         = errors.New(f("label invalid"))
	ErrDefineInvalid        = errors.New(f("define invalid"))
	ErrDeclarationDuplicate = errors.New(f("declaration duplicated"))
)

// ErrOpcode tags an interpreter error with the word being executed.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	text, ok := Disassemble(Code(eo))
	if !ok {
		text = "???"
	}
	return f("bad opcode 0x%04x %v", uint16(eo), text)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrOperandRange is returned when a numeric operand does not fit its field.
type ErrOperandRange struct {
	Kind  OperandKind
	Token string
}

func (err *ErrOperandRange) Error() string {
	return f("'%v' out of range for %v", err.Token, err.Kind)
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrDuplicate string

func (err ErrDuplicate) Error() string {
	return f("'%v' already declared", string(err))
}

func (err ErrDuplicate) Unwrap() error {
	return ErrDeclarationDuplicate
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
