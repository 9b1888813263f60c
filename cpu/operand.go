package cpu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OperandKind is the syntactic class of an instruction operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	KIND_V      = OperandKind(0)  // V
	KIND_V0     = OperandKind(1)  // V0
	KIND_B      = OperandKind(2)  // B
	KIND_F      = OperandKind(3)  // F
	KIND_DT     = OperandKind(4)  // DT
	KIND_ST     = OperandKind(5)  // ST
	KIND_I      = OperandKind(6)  // I
	KIND_K      = OperandKind(7)  // K
	KIND_AI     = OperandKind(8)  // [I]
	KIND_NIBBLE = OperandKind(9)  // nibble
	KIND_BYTE   = OperandKind(10) // byte
	KIND_ADDR   = OperandKind(11) // addr
)

// Keyword reports if the kind matches only its own name.
func (kind OperandKind) Keyword() bool {
	return kind >= KIND_V0 && kind <= KIND_AI
}

// Numeric reports if the kind is an immediate value.
func (kind OperandKind) Numeric() bool {
	return kind >= KIND_NIBBLE && kind <= KIND_ADDR
}

// Limit is one past the largest value a numeric kind holds.
func (kind OperandKind) Limit() (limit uint64) {
	switch kind {
	case KIND_NIBBLE:
		limit = 0x10
	case KIND_BYTE:
		limit = 0x100
	case KIND_ADDR:
		limit = 0x1000
	}
	return
}

func (kind OperandKind) fieldMask() Code {
	return Code(kind.Limit() - 1)
}

// Operand is a decoded operand: a Register, a Literal or a Keyword.
type Operand interface {
	operand()
}

// Register is a general purpose register index, 0x0 to 0xF.
type Register uint8

// Literal is an immediate nibble, byte or address.
type Literal uint16

// Keyword is an operand that is only its name, such as DT or [I].
type Keyword OperandKind

func (Register) operand() {}
func (Literal) operand()  {}
func (Keyword) operand()  {}

func (reg Register) String() string {
	return fmt.Sprintf("V%X", uint8(reg)&0xf)
}

func (kw Keyword) String() string {
	return OperandKind(kw).String()
}

// Parse an assembly token as this kind of operand.
//
// A token that is not of this kind returns ErrOperandMismatch, so the
// caller may try the next format. A number that is of this kind but too
// large returns an *ErrOperandRange.
func (kind OperandKind) Parse(token string) (operand Operand, err error) {
	switch {
	case kind == KIND_V:
		var reg uint8
		reg, err = parseRegister(token)
		if err != nil {
			return
		}
		operand = Register(reg)
	case kind.Keyword():
		if !strings.EqualFold(token, kind.String()) {
			err = ErrOperandMismatch
			return
		}
		operand = Keyword(kind)
	case kind.Numeric():
		var value uint64
		value, err = parseNumber(token)
		if errors.Is(err, strconv.ErrRange) {
			err = &ErrOperandRange{Kind: kind, Token: token}
			return
		}
		if err != nil {
			err = ErrOperandMismatch
			return
		}
		if value >= kind.Limit() {
			err = &ErrOperandRange{Kind: kind, Token: token}
			return
		}
		operand = Literal(value)
	default:
		err = ErrOperandMismatch
	}

	return
}

// Format renders an operand as canonical assembly text.
func (kind OperandKind) Format(operand Operand) (text string) {
	switch value := operand.(type) {
	case Register:
		text = value.String()
	case Keyword:
		text = value.String()
	case Literal:
		switch kind {
		case KIND_NIBBLE:
			text = fmt.Sprintf("0x%X", uint16(value))
		case KIND_BYTE:
			text = fmt.Sprintf("0x%02X", uint16(value))
		default:
			text = fmt.Sprintf("0x%03X", uint16(value))
		}
	}

	return
}

func isHex(text string) bool {
	if len(text) == 0 {
		return false
	}
	for _, c := range text {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func isDecimal(text string) bool {
	if len(text) == 0 {
		return false
	}
	for _, c := range text {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseRegister accepts V or v followed by hex digits that, once leading
// zeros are removed, name a single register.
func parseRegister(token string) (reg uint8, err error) {
	if len(token) < 2 || (token[0] != 'V' && token[0] != 'v') || !isHex(token[1:]) {
		err = ErrOperandMismatch
		return
	}

	digits := strings.TrimLeft(token[1:], "0")
	switch len(digits) {
	case 0:
		reg = 0
	case 1:
		var value uint64
		value, err = strconv.ParseUint(digits, 16, 8)
		if err != nil {
			err = ErrOperandMismatch
			return
		}
		reg = uint8(value)
	default:
		err = ErrOperandMismatch
	}

	return
}

// parseNumber accepts decimal, 0x-prefixed hex or #-prefixed hex.
// A token of valid digits too large for 64 bits returns strconv.ErrRange.
func parseNumber(token string) (value uint64, err error) {
	var digits string
	base := 16
	switch {
	case strings.HasPrefix(token, "0x"), strings.HasPrefix(token, "0X"):
		digits = token[2:]
	case strings.HasPrefix(token, "#"):
		digits = token[1:]
	case isDecimal(token):
		digits = token
		base = 10
	default:
		err = ErrOperandMismatch
		return
	}

	if !isHex(digits) {
		err = ErrOperandMismatch
		return
	}

	value, err = strconv.ParseUint(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
	}

	return
}
