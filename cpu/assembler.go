// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"XLEN":   strconv.Itoa(32),
	"XREGS":  strconv.Itoa(REGISTER_COUNT),
}

// Assembler turns program text into a Program.
//
// Syntax, one instruction per line:
//   - ';' or '#' start a comment.
//   - '.equ NAME VALUE' defines a constant, substituted wherever NAME is a
//     whole operand token (registers included).
//   - '$(expr)' is evaluated at assembly time, with integer equates in scope.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Logger  *zap.Logger // Destination of verbose logging.
	Opcode  []Opcode    // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.

	decoder *Decoder
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expandExpressions replaces every balanced $(...) with its decimal value.
func (asm *Assembler) expandExpressions(line string) (out string, err error) {
	var text strings.Builder
	for {
		start := strings.Index(line, "$(")
		if start < 0 {
			break
		}
		depth := 0
		end := -1
		for n := start + 1; n < len(line); n++ {
			switch line[n] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				end = n
				break
			}
		}
		if end < 0 {
			err = ErrParseExpression(line[start+2:])
			return
		}
		var value int64
		value, err = asm.parenEval(line[start+2 : end])
		if err != nil {
			return
		}
		text.WriteString(line[:start])
		text.WriteString(strconv.FormatInt(value, 10))
		line = line[end+1:]
	}
	text.WriteString(line)
	out = text.String()
	return
}

// substitute replaces operand tokens that name an equate.
func (asm *Assembler) substitute(operands string) string {
	var text strings.Builder
	var token strings.Builder

	flush := func() {
		word := token.String()
		equate, ok := asm.Equate[word]
		if ok {
			word = equate
		}
		text.WriteString(word)
		token.Reset()
	}

	for _, r := range operands {
		switch r {
		case ',', '(', ')':
			flush()
			text.WriteRune(r)
		default:
			token.WriteRune(r)
		}
	}
	flush()

	return text.String()
}

// parseLine reduces a source line to instruction text, handling directives.
// An empty result means the line produced no instruction.
func (asm *Assembler) parseLine(line string, lineno int) (text string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	if cut := strings.IndexAny(line, ";#"); cut >= 0 {
		line = line[:cut]
	}

	line, err = asm.expandExpressions(line)
	if err != nil {
		return
	}

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	text = words[0]
	if len(words) > 1 {
		text += " " + asm.substitute(strings.Join(words[1:], ""))
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.decoder == nil {
		asm.decoder = NewDecoder(DECODE_CACHE_SIZE)
	}
	logger := asm.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			logger.Debug("asm: line", zap.Int("lineno", lineno), zap.String("text", line))
		}

		var text string
		text, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
		if len(text) == 0 {
			continue
		}

		var ins Instruction
		ins, err = asm.decoder.Decode(text)
		if err != nil {
			return
		}

		if ins.Op == OP_UNKNOWN && asm.Verbose {
			logger.Debug("asm: unknown instruction", zap.Int("lineno", lineno), zap.String("text", text))
		}

		asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Text: text, Instruction: ins})
	}

	line = ""
	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
