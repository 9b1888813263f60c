// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DIRECTIVE_DEFINE starts a `define NAME VALUE` line.
const DIRECTIVE_DEFINE = "define"

var (
	reSymbol = regexp.MustCompile(`^[a-zA-Z_][0-9a-zA-Z_]*$`)
	reDefine = regexp.MustCompile(`^(?i:define)\s+([a-zA-Z_][0-9a-zA-Z_]*)\s+(\S+)$`)
)

// Line is a single instruction after preprocessing.
type Line struct {
	LineNo   int      // Source line number, from 1.
	Address  uint16   // Address the instruction assembles to.
	Source   string   // Source text, without label or comment.
	Mnemonic string   // Instruction mnemonic, as written.
	Operands []string // Operands, with symbols substituted.
}

// String renders the line in canonical `MNEMONIC op1, op2` form.
func (line Line) String() string {
	if len(line.Operands) == 0 {
		return line.Mnemonic
	}
	return line.Mnemonic + " " + strings.Join(line.Operands, ", ")
}

// Preprocessor resolves labels and defines in two passes over the source.
//
// The first pass strips comments, records `label:` prefixes at the current
// address and records `define NAME VALUE` directives. The second pass
// splits each instruction into its mnemonic and operands, replacing any
// operand that is exactly a symbol name with the symbol's value, and
// evaluating $(...) operands.
type Preprocessor struct {
	Verbose bool              // If set, verbosely logs each source line.
	Symbol  map[string]string // Labels and defines from the last run.

	predefine map[string]string
}

// Predefine adds a symbol that every run starts with.
func (pp *Preprocessor) Predefine(name string, value string) {
	if pp.predefine == nil {
		pp.predefine = map[string]string{name: value}
	} else {
		pp.predefine[name] = value
	}
}

// declare adds a new symbol.
func (pp *Preprocessor) declare(name string, value string) (err error) {
	_, ok := pp.Symbol[name]
	if ok {
		err = ErrDuplicate(name)
		return
	}

	pp.Symbol[name] = value
	return
}

// splitLabel separates a leading `label:` from the rest of the line.
func splitLabel(code string) (label string, rest string, ok bool) {
	label, rest, ok = strings.Cut(code, ":")
	if !ok {
		rest = code
		return
	}

	label = strings.TrimSpace(label)
	rest = strings.TrimSpace(rest)
	return
}

// splitOperands splits on commas outside of parentheses.
func splitOperands(text string) (operands []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}

	depth := 0
	start := 0
	for n, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				operands = append(operands, strings.TrimSpace(text[start:n]))
				start = n + 1
			}
		}
	}
	operands = append(operands, strings.TrimSpace(text[start:]))

	return
}

// splitInstruction separates the mnemonic from its operands.
func splitInstruction(code string) (mnemonic string, operands []string) {
	code = strings.TrimSpace(code)
	index := strings.IndexAny(code, " \t")
	if index < 0 {
		mnemonic = code
		return
	}

	mnemonic = code[:index]
	operands = splitOperands(code[index+1:])
	return
}

// parenEval does compile-time $(...) evaluations
func (pp *Preprocessor) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range pp.Symbol {
		var number uint64
		number, err = parseNumber(str)
		if err != nil {
			// Non-numeric defines may be registers or keywords.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(number)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// substitute replaces an operand that names a symbol, then evaluates it if
// it is a $(...) expression.
func (pp *Preprocessor) substitute(operand string) (text string, err error) {
	text = operand
	value, ok := pp.Symbol[operand]
	if ok {
		text = value
	}

	if strings.HasPrefix(text, "$(") && strings.HasSuffix(text, ")") {
		var number uint64
		number, err = pp.parenEval(text[2 : len(text)-1])
		if err != nil {
			return
		}
		text = fmt.Sprintf("0x%X", number)
	}

	return
}

// Run preprocesses an assembly source.
func (pp *Preprocessor) Run(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			lines = nil
		}
	}()

	pp.Symbol = maps.Clone(pp.predefine)
	if pp.Symbol == nil {
		pp.Symbol = make(map[string]string)
	}

	address := PROGRAM_START

	// Pass 1: labels and defines.
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if pp.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		code, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(code)
		if len(line) == 0 {
			continue
		}

		label, rest, has_label := splitLabel(line)
		if has_label {
			if !reSymbol.MatchString(label) {
				err = ErrLabelInvalid
				return
			}
			err = pp.declare(label, fmt.Sprintf("0x%03x", address))
			if err != nil {
				return
			}
		}

		words := strings.Fields(rest)
		if len(words) > 0 && strings.EqualFold(words[0], DIRECTIVE_DEFINE) {
			match := reDefine.FindStringSubmatch(strings.Join(words, " "))
			if match == nil {
				err = ErrDefineInvalid
				return
			}
			err = pp.declare(match[1], match[2])
			if err != nil {
				return
			}
			continue
		}

		if len(rest) == 0 {
			continue
		}

		lines = append(lines, Line{
			LineNo:  lineno,
			Address: address,
			Source:  rest,
		})
		address += 2
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Pass 2: symbol substitution.
	for n := range lines {
		entry := &lines[n]
		lineno = entry.LineNo
		line = entry.Source

		entry.Mnemonic, entry.Operands = splitInstruction(entry.Source)
		for index, operand := range entry.Operands {
			entry.Operands[index], err = pp.substitute(operand)
			if err != nil {
				return
			}
		}
	}

	return
}
