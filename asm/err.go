package asm

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ezrec/lc3asm/translate"
)

var f = translate.From

var (
	ErrMissingEnd = errors.New(f(".END missing"))
)

// ErrMalformedLine describes a line that could not be tokenized or whose
// operands do not fit its directive or instruction.
type ErrMalformedLine string

func (err ErrMalformedLine) Error() string {
	return f("malformed line: %v", string(err))
}

type ErrUnknownMnemonic string

func (err ErrUnknownMnemonic) Error() string {
	return f("unknown mnemonic %v", string(err))
}

type ErrInvalidRegister string

func (err ErrInvalidRegister) Error() string {
	return f("%v is not a register R0..R7", string(err))
}

// ErrImmediateRange is a literal that does not fit its field.
type ErrImmediateRange struct {
	Value string
	Bits  int
}

func (err ErrImmediateRange) Error() string {
	return f("immediate %v does not fit in %v bits", err.Value, err.Bits)
}

// ErrOffsetRange is a PC-relative or base offset that does not fit its field.
type ErrOffsetRange struct {
	Offset int
	Bits   int
}

func (err ErrOffsetRange) Error() string {
	return f("offset %v does not fit in %v bits", strconv.Itoa(err.Offset), err.Bits)
}

// ErrExternalPcRelative is a PC-relative reference to an external label.
type ErrExternalPcRelative string

func (err ErrExternalPcRelative) Error() string {
	return f("external label %v used as a PC-relative target", string(err))
}

// ErrCyclicAlias is a chain of .FILL labels that refers back to itself.
type ErrCyclicAlias []string

func (err ErrCyclicAlias) Error() string {
	return f("cyclic alias %v", strings.Join(err, " -> "))
}

type ErrExpression string

func (err ErrExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
