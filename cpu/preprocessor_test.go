package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessor(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; header comment",
		"",
		"define SPEED v3",
		"DEFINE DELAY 0x20",
		"start:",
		"  CLS            ; wipe",
		"wait:  LD  DT , DELAY",
		"  ADD SPEED, 1",
		"end: JP end",
	}

	pp := &Preprocessor{}
	lines, err := pp.Run(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Line{
		{LineNo: 6, Address: 0x200, Source: "CLS", Mnemonic: "CLS"},
		{LineNo: 7, Address: 0x202, Source: "LD  DT , DELAY", Mnemonic: "LD", Operands: []string{"DT", "0x20"}},
		{LineNo: 8, Address: 0x204, Source: "ADD SPEED, 1", Mnemonic: "ADD", Operands: []string{"v3", "1"}},
		{LineNo: 9, Address: 0x206, Source: "JP end", Mnemonic: "JP", Operands: []string{"0x206"}},
	}
	assert.Equal(expected, lines)

	assert.Equal("CLS", lines[0].String())
	assert.Equal("LD DT, 0x20", lines[1].String())

	assert.Equal(map[string]string{
		"SPEED": "v3",
		"DELAY": "0x20",
		"start": "0x200",
		"wait":  "0x202",
		"end":   "0x206",
	}, pp.Symbol)
}

func TestPreprocessor_Reset(t *testing.T) {
	assert := assert.New(t)

	pp := &Preprocessor{}
	_, err := pp.Run(strings.NewReader("a: CLS\n"))
	assert.NoError(err)

	// A second run starts from an empty table.
	_, err = pp.Run(strings.NewReader("a: CLS\n"))
	assert.NoError(err)
	assert.Equal(map[string]string{"a": "0x200"}, pp.Symbol)
}

func TestPreprocessor_CaseSensitive(t *testing.T) {
	assert := assert.New(t)

	pp := &Preprocessor{}
	lines, err := pp.Run(strings.NewReader("Loop: CLS\nloop: JP Loop\n"))
	assert.NoError(err)
	assert.Equal([]string{"0x200"}, lines[1].Operands)
	assert.Equal("0x202", pp.Symbol["loop"])
}

func TestPreprocessor_PartialMatch(t *testing.T) {
	assert := assert.New(t)

	pp := &Preprocessor{}
	lines, err := pp.Run(strings.NewReader("define X 5\nLD V1, XX\nLD V1, X\n"))
	assert.NoError(err)
	assert.Equal([]string{"V1", "XX"}, lines[0].Operands)
	assert.Equal([]string{"V1", "5"}, lines[1].Operands)
}

func TestPreprocessor_Error(t *testing.T) {
	assert := assert.New(t)

	pp := &Preprocessor{}
	lines, err := pp.Run(strings.NewReader("CLS\nbad label: RET\n"))
	assert.Nil(lines)
	assert.ErrorIs(err, ErrLabelInvalid)

	var syntaxErr *ErrSyntax
	assert.ErrorAs(err, &syntaxErr)
	assert.Equal(2, syntaxErr.LineNo)
	assert.Equal("bad label: RET", syntaxErr.Line)

	_, err = pp.Run(strings.NewReader("x: CLS\nx: RET\n"))
	var dupErr ErrDuplicate
	assert.ErrorAs(err, &dupErr)
	assert.Equal(ErrDuplicate("x"), dupErr)
}

func TestSplitOperands(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		Text     string
		Operands []string
	}{
		{"", nil},
		{"   ", nil},
		{"V1", []string{"V1"}},
		{"V1 , V2", []string{"V1", "V2"}},
		{"V1,", []string{"V1", ""}},
		{"V1, $(max(1, 2)), 3", []string{"V1", "$(max(1, 2))", "3"}},
	}

	for _, entry := range table {
		assert.Equal(entry.Operands, splitOperands(entry.Text), entry.Text)
	}
}
