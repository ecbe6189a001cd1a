package asm

import (
	"strconv"

	"github.com/ezrec/lc3asm/isa"
)

// OperandKind is the structural class of an operand token.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REGISTER  = OperandKind(0) // register
	OPERAND_IMMEDIATE = OperandKind(1) // immediate
	OPERAND_LABEL     = OperandKind(2) // label
	OPERAND_STRING    = OperandKind(3) // string
)

// Operand is a classified operand.
type Operand struct {
	Kind     OperandKind
	Register isa.Register // OPERAND_REGISTER
	Value    int          // OPERAND_IMMEDIATE
	Label    string       // OPERAND_LABEL
	Text     string       // Source token, or the payload of a string.
}

// Digit bounds of numeric literals, checked before conversion.
const (
	MAX_HEX_DIGITS     = 4
	MAX_DECIMAL_DIGITS = 5
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func isLabelStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func allOf(text string, pred func(c byte) bool) bool {
	for n := range len(text) {
		if !pred(text[n]) {
			return false
		}
	}
	return true
}

// isRegisterToken is true for R followed by a digit.
func isRegisterToken(token string) bool {
	return len(token) >= 2 && token[0] == 'R' && isDigit(token[1])
}

// isNumberToken is true for #, - or a digit, or for X followed only by hex
// digits. Anything else starting with X is a label.
func isNumberToken(token string) bool {
	switch {
	case len(token) == 0:
		return false
	case token[0] == '#', token[0] == '-', isDigit(token[0]):
		return true
	case token[0] == 'X':
		return len(token) > 1 && allOf(token[1:], isHexDigit)
	}
	return false
}

func isLabelToken(token string) bool {
	if len(token) == 0 || !isLabelStart(token[0]) {
		return false
	}
	return allOf(token[1:], func(c byte) bool {
		return isLabelStart(c) || isDigit(c)
	})
}

// parseRegister parses an R0..R7 token.
func parseRegister(token string) (reg isa.Register, err error) {
	digits := token[1:]
	if !allOf(digits, isDigit) || len(digits) > 1 {
		err = ErrInvalidRegister(token)
		return
	}

	value := isa.Register(digits[0] - '0')
	if !value.Valid() {
		err = ErrInvalidRegister(token)
		return
	}

	reg = value
	return
}

// parseNumber parses [#][-]digits or [#][-]X hexdigits.
func parseNumber(token string) (value int, err error) {
	body := token
	if len(body) > 0 && body[0] == '#' {
		body = body[1:]
	}

	negative := false
	if len(body) > 0 && body[0] == '-' {
		negative = true
		body = body[1:]
	}

	base := 10
	maxDigits := MAX_DECIMAL_DIGITS
	valid := isDigit
	if len(body) > 0 && (body[0] == 'X' || body[0] == 'x') {
		base = 16
		maxDigits = MAX_HEX_DIGITS
		valid = isHexDigit
		body = body[1:]
	}

	if len(body) == 0 || !allOf(body, valid) {
		err = ErrMalformedLine(f("'%v' is not a number", token))
		return
	}

	if len(body) > maxDigits {
		err = ErrImmediateRange{Value: token, Bits: isa.WORD_BITS}
		return
	}

	v64, err := strconv.ParseInt(body, base, 32)
	if err != nil {
		err = ErrMalformedLine(f("'%v' is not a number", token))
		return
	}

	value = int(v64)
	if negative {
		value = -value
	}

	return
}

// classify determines the kind of an upper case operand token from its
// leading characters.
func classify(token string) (op Operand, err error) {
	op.Text = token

	switch {
	case isRegisterToken(token):
		op.Kind = OPERAND_REGISTER
		op.Register, err = parseRegister(token)
	case isNumberToken(token):
		op.Kind = OPERAND_IMMEDIATE
		op.Value, err = parseNumber(token)
	case isLabelToken(token):
		op.Kind = OPERAND_LABEL
		op.Label = token
	default:
		err = ErrMalformedLine(f("'%v' is not a register, number or label", token))
	}

	return
}
