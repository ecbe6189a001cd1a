package object

import (
	"errors"
	"strconv"

	"github.com/ezrec/lc3asm/translate"
)

var f = translate.From

var (
	ErrNoOrigin       = errors.New(f("word before ORIG"))
	ErrSymbolHeader   = errors.New(f("symbol table header missing"))
	ErrSymbolColumns  = errors.New(f("symbol row needs 3 or 4 columns"))
	ErrExternalFlag   = errors.New(f("EXTERNAL must be 0 or 1"))
	ErrExternalLabel  = errors.New(f("external row without EXTLABEL"))
	ErrDebugSeparator = errors.New(f("debug symbol without ':'"))
)

// ErrMultiplyDefined is a label with more than one non-external definition.
type ErrMultiplyDefined string

func (err ErrMultiplyDefined) Error() string {
	return f("symbol %v multiply defined", string(err))
}

// ErrUndefinedSymbol is a label that is referenced but never defined.
type ErrUndefinedSymbol string

func (err ErrUndefinedSymbol) Error() string {
	return f("symbol %v undefined", string(err))
}

type ErrParseAddress string

func (err ErrParseAddress) Error() string {
	return f("'%v' is not an x0000 address", string(err))
}

// ErrRecord locates an error in a text file.
type ErrRecord struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrRecord) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrRecord) Unwrap() error {
	return err.Err
}
