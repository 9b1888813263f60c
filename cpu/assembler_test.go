package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Assemble(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
	assert.Empty(prog.Binary())
}

func TestAssembleLine(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Line string
		Code Code
	}{
		{"ADD I, V4", 0xF41E},
		{"adD I, V04", 0xF41E},
		{"ADD i, v0004", 0xF41E},
		{"ADD V4, 5", 0x7405},
		{"ADD V0, 0xf6", 0x70F6},
		{"ADD V4, V5", 0x8454},
		{"ADD  V4, V00005", 0x8454},
		{"ADD Va, V1", 0x8A14},
		{"DRW V1, V2, 3", 0xD123},
		{"drw  v0 ,  v0 ,  0x00000F", 0xD00F},
		{"CLS", 0x00E0},
		{"RET", 0x00EE},
		{"SYS 0x123", 0x0123},
		{"JP 0xFFF", 0x1FFF},
		{"CALL #208", 0x2208},
		{"SE V3, 0x42", 0x3342},
		{"SNE V3, 66", 0x4342},
		{"SE V1, V2", 0x5120},
		{"LD V4, 0xFF", 0x64FF},
		{"LD V1, V2", 0x8120},
		{"OR V1, V2", 0x8121},
		{"AND V1, V2", 0x8122},
		{"XOR V1, V2", 0x8123},
		{"SUB V1, V2", 0x8125},
		{"SHR V1", 0x8106},
		{"SHR V1, V2", 0x8126},
		{"SUBN V1, V2", 0x8127},
		{"SHL V1", 0x810E},
		{"SHL V1, V2", 0x812E},
		{"SNE V1, V2", 0x9120},
		{"LD I, 0x300", 0xA300},
		{"JP V0, 0x300", 0xB300},
		{"RND V2, 0x0F", 0xC20F},
		{"SKP V3", 0xE39E},
		{"SKNP V3", 0xE3A1},
		{"LD V5, DT", 0xF507},
		{"LD V5, K", 0xF50A},
		{"LD DT, V5", 0xF515},
		{"LD ST, V5", 0xF518},
		{"LD F, V5", 0xF529},
		{"LD B, V5", 0xF533},
		{"LD [I], V4", 0xF455},
		{"LD V4, [I]", 0xF465},
	}

	for _, entry := range table {
		code, err := AssembleLine(entry.Line)
		assert.NoError(err, entry.Line)
		assert.Equal(entry.Code, code, entry.Line)
	}
}

func TestAssembleLine_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Line string
		Err  error
	}{
		{"ADD I, F", ErrFormatMismatch},
		{"ADD I  V6", ErrFormatMismatch},
		{"ADD I, Vx", ErrFormatMismatch},
		{"ADD I, V-4", ErrFormatMismatch},
		{"ADD V0x4, 0xffa", ErrFormatMismatch},
		{"ADD V1,", ErrFormatMismatch},
		{"CLS V1", ErrFormatMismatch},
		{"JP V1, 0x300", ErrFormatMismatch},
		{"LD K, V1", ErrFormatMismatch},
		{"FOO V1", ErrOpcodeUnrecognized},
		{"", ErrOpcodeUnrecognized},
	}

	for _, entry := range table {
		_, err := AssembleLine(entry.Line)
		assert.ErrorIs(err, entry.Err, entry.Line)
	}

	for _, line := range []string{"ADD V4, 0xffa", "JP 0x1000", "DRW V1, V2, 16", "LD V1, 256"} {
		_, err := AssembleLine(line)
		var rangeErr *ErrOperandRange
		assert.ErrorAs(err, &rangeErr, line)
	}
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; count to fourteen",
		"start:  LD V0, 0x05",
		"define COUNT 3",
		"loop: ADD V0, COUNT   ; step",
		"      SE V0, 0x0E",
		"      JP loop",
		"      JP start",
	}

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{LineNo: 2, Address: 0x200, Text: "LD V0, 0x05", Code: 0x6005},
		{LineNo: 4, Address: 0x202, Text: "ADD V0, 3", Code: 0x7003},
		{LineNo: 5, Address: 0x204, Text: "SE V0, 0x0E", Code: 0x300E},
		{LineNo: 6, Address: 0x206, Text: "JP 0x202", Code: 0x1202},
		{LineNo: 7, Address: 0x208, Text: "JP 0x200", Code: 0x1200},
	}
	assert.Equal(expected, prog.Opcodes)

	assert.Equal([]byte{0x60, 0x05, 0x70, 0x03, 0x30, 0x0E, 0x12, 0x02, 0x12, 0x00}, prog.Binary())

	assert.Equal("0x200", asm.Symbol["start"])
	assert.Equal("0x202", asm.Symbol["loop"])
	assert.Equal("3", asm.Symbol["COUNT"])
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SPRITE", "0x300")
	asm.Predefine("ROW", "V7")

	prog, err := asm.Assemble(strings.NewReader("LD I, SPRITE\nADD ROW, 1\n"))
	assert.NoError(err)
	assert.Equal([]byte{0xA3, 0x00, 0x77, 0x01}, prog.Binary())

	// Predefines survive into every run.
	prog, err = asm.Assemble(strings.NewReader("JP SPRITE\n"))
	assert.NoError(err)
	assert.Equal([]byte{0x13, 0x00}, prog.Binary())

	// ... and cannot be redeclared.
	_, err = asm.Assemble(strings.NewReader("define SPRITE 0x400\n"))
	assert.ErrorIs(err, ErrDeclarationDuplicate)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"define BASE 0x300",
		"start: LD I, $(BASE + 2)",
		"DRW V1, V2, $(min(3, 4))",
		"JP $(start + 4)",
	}

	asm := &Assembler{}
	prog, err := asm.Assemble(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]byte{0xA3, 0x02, 0xD1, 0x23, 0x12, 0x04}, prog.Binary())

	_, err = asm.Assemble(strings.NewReader("LD I, $(NOWHERE + 1)\n"))
	var exprErr ErrParseExpression
	assert.ErrorAs(err, &exprErr)

	_, err = asm.Assemble(strings.NewReader("LD I, $(\"text\")\n"))
	assert.ErrorAs(err, &exprErr)

	_, err = asm.Assemble(strings.NewReader("LD I, $(0 - 1)\n"))
	assert.ErrorAs(err, &exprErr)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Program []string
		LineNo  int
		Err     error
	}{
		{[]string{"CLS", "FOO", "RET"}, 2, ErrOpcodeUnrecognized},
		{[]string{"CLS", "", "ADD I, F"}, 3, ErrFormatMismatch},
		{[]string{"a: CLS", "a: RET"}, 2, ErrDeclarationDuplicate},
		{[]string{"define X 1", "X: CLS"}, 2, ErrDeclarationDuplicate},
		{[]string{"define X 1", "define X 2"}, 2, ErrDeclarationDuplicate},
		{[]string{"1abc: CLS"}, 1, ErrLabelInvalid},
		{[]string{"my label: CLS"}, 1, ErrLabelInvalid},
		{[]string{": CLS"}, 1, ErrLabelInvalid},
		{[]string{"define X"}, 1, ErrDefineInvalid},
		{[]string{"define 1X 3"}, 1, ErrDefineInvalid},
		{[]string{"define X 3 4"}, 1, ErrDefineInvalid},
		{[]string{"JP missing"}, 1, ErrFormatMismatch},
	}

	asm := &Assembler{}
	for _, entry := range table {
		text := strings.Join(entry.Program, "\n")
		prog, err := asm.Assemble(strings.NewReader(text))
		assert.Nil(prog, text)
		assert.ErrorIs(err, entry.Err, text)

		var syntaxErr *ErrSyntax
		assert.ErrorAs(err, &syntaxErr, text)
		if syntaxErr != nil {
			assert.Equal(entry.LineNo, syntaxErr.LineNo, text)
		}
	}

	// Range errors abort the file.
	prog, err := asm.Assemble(strings.NewReader("CLS\nLD V1, 0x100\n"))
	assert.Nil(prog)
	var rangeErr *ErrOperandRange
	assert.ErrorAs(err, &rangeErr)
	var syntaxErr *ErrSyntax
	assert.ErrorAs(err, &syntaxErr)
	assert.Equal(2, syntaxErr.LineNo)
	assert.Equal("LD V1, 0x100", syntaxErr.Line)
}
