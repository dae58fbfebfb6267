// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const (
	DECODE_CACHE_SIZE = 1024 // Default number of decoded lines retained.
)

// Decoder turns instruction text into Instructions, remembering recently
// decoded lines. The zero Decoder decodes without caching.
type Decoder struct {
	cache *simplelru.LRU[string, Instruction]
}

// NewDecoder creates a decoder that caches up to size lines.
// A size of zero disables caching.
func NewDecoder(size int) (dec *Decoder) {
	dec = &Decoder{}

	if size > 0 {
		cache, err := simplelru.NewLRU[string, Instruction](size, nil)
		if err != nil {
			panic(err)
		}
		dec.cache = cache
	}

	return
}

// Decode decodes a single line of the form 'mnemonic operands'.
// Unknown mnemonics decode to an OP_UNKNOWN instruction without error.
func (dec *Decoder) Decode(text string) (ins Instruction, err error) {
	if dec != nil && dec.cache != nil {
		var ok bool
		ins, ok = dec.cache.Get(text)
		if ok {
			return
		}
	}

	ins, err = Decode(text)
	if err != nil {
		return
	}

	if dec != nil && dec.cache != nil {
		dec.cache.Add(text, ins)
	}

	return
}

// Cached returns the number of lines held by the cache.
func (dec *Decoder) Cached() int {
	if dec == nil || dec.cache == nil {
		return 0
	}
	return dec.cache.Len()
}

// removeSpaces drops every whitespace rune.
func removeSpaces(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Decode decodes a single line without caching.
//
// The mnemonic is everything before the first space. All whitespace is
// removed from the operand list before it is split.
func Decode(text string) (ins Instruction, err error) {
	mnemonic, operands, _ := strings.Cut(text, " ")

	ins.Op = LookupOp(mnemonic)
	if ins.Op == OP_UNKNOWN {
		return
	}

	args := strings.Split(removeSpaces(operands), ",")

	switch ins.Type() {
	case TYPE_R:
		// xRD,xRS1,xRS2
		if len(args) != 3 {
			err = ErrOperandCount
			break
		}
		ins.Rd, err = ParseRegister(args[0])
		if err != nil {
			break
		}
		ins.Rs1, err = ParseRegister(args[1])
		if err != nil {
			break
		}
		ins.Rs2, err = ParseRegister(args[2])
	case TYPE_I:
		// xRD,xRS1,IMM
		if len(args) != 3 {
			err = ErrOperandCount
			break
		}
		ins.Rd, err = ParseRegister(args[0])
		if err != nil {
			break
		}
		ins.Rs1, err = ParseRegister(args[1])
		if err != nil {
			break
		}
		ins.Imm = ParseImmediate(args[2])
	case TYPE_MEM:
		// xRD,OFFSET(xBASE)
		if len(args) != 2 {
			err = ErrOperandCount
			break
		}
		ins.Rd, err = ParseRegister(args[0])
		if err != nil {
			break
		}
		ins.Imm, ins.Rs1, err = parseAddress(args[1])
	case TYPE_U:
		// xRD,IMM
		if len(args) != 2 {
			err = ErrOperandCount
			break
		}
		ins.Rd, err = ParseRegister(args[0])
		if err != nil {
			break
		}
		ins.Imm = ParseImmediate(args[1])
	}

	if err != nil {
		ins = Instruction{Op: ins.Op}
		if err == ErrOperandCount || err == ErrOperandAddress {
			err = errors.Join(ErrInstructionInvalid, err)
		}
	}

	return
}

// parseAddress parses 'OFFSET(xBASE)'. An empty offset is zero.
func parseAddress(arg string) (offset int32, base int, err error) {
	open := strings.IndexByte(arg, '(')
	if open < 0 || !strings.HasSuffix(arg, ")") || open > len(arg)-2 {
		err = ErrOperandAddress
		return
	}

	offset = ParseImmediate(arg[:open])
	base, err = ParseRegister(arg[open+1 : len(arg)-1])

	return
}

// ParseRegister parses an 'xN' register token, N decimal in 0-31.
func ParseRegister(token string) (index int, err error) {
	digits, ok := strings.CutPrefix(token, "x")
	if !ok || len(digits) == 0 {
		err = ErrOperand(token)
		return
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			err = ErrOperand(token)
			return
		}
	}

	index, err = strconv.Atoi(digits)
	if err != nil || !validRegister(index) {
		index = 0
		err = ErrOperand(token)
		return
	}

	return
}

// ParseImmediate parses an immediate or offset.
//
// '0x' prefixes a hexadecimal literal, '-0x' a negated one; anything else is
// decimal. Parsing stops at the first character that is not a digit of the
// base, and a token without digits is zero. The result wraps to 32 bits.
func ParseImmediate(token string) (value int32) {
	switch {
	case strings.HasPrefix(token, "0x"):
		value = int32(parseDigits(token[2:], 16))
	case strings.HasPrefix(token, "-0x"):
		value = -int32(parseDigits(token[3:], 16))
	default:
		value = int32(parseDigits(token, 10))
	}
	return
}

// parseDigits accumulates an optionally signed number in base, stopping at
// the first invalid digit. Overflow wraps.
func parseDigits(text string, base uint64) (value int64) {
	text = strings.TrimLeftFunc(text, unicode.IsSpace)

	negative := false
	if len(text) > 0 && (text[0] == '-' || text[0] == '+') {
		negative = text[0] == '-'
		text = text[1:]
	}

	var acc uint64
	for _, r := range text {
		var digit uint64
		switch {
		case r >= '0' && r <= '9':
			digit = uint64(r - '0')
		case r >= 'a' && r <= 'z':
			digit = uint64(r-'a') + 10
		case r >= 'A' && r <= 'Z':
			digit = uint64(r-'A') + 10
		default:
			digit = base
		}
		if digit >= base {
			break
		}
		acc = acc*base + digit
	}

	value = int64(acc)
	if negative {
		value = -value
	}

	return
}
