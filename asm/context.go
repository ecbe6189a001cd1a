package asm

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/lc3asm/object"
)

// Pass is the state of an assembly run.
type Pass int

//go:generate go tool stringer -linecomment -type=Pass
const (
	PASS_1    = Pass(0) // pass 1
	PASS_2    = Pass(1) // pass 2
	PASS_DONE = Pass(2) // done
)

// fillRef is a .FILL whose operand is a label.
type fillRef struct {
	Site   int    // Address of the filled word.
	Target string // Label filled in.
	Owner  string // Label of the .FILL line, if any.
	Line   *Line
}

// asmContext holds all state of one assembly run.
type asmContext struct {
	pass    Pass
	verbose bool
	log     logrus.FieldLogger

	lines []*Line

	lc        int  // Location counter.
	hasOrigin bool // Set by the first .ORIG.
	sawEnd    bool // Set by .END, cleared by .ORIG.

	symbols *object.SymbolTable
	fills   []fillRef

	module *object.Module
	debug  *object.DebugMap
}

func newContext(verbose bool, log logrus.FieldLogger) *asmContext {
	return &asmContext{
		pass:    PASS_1,
		verbose: verbose,
		log:     log,
		symbols: object.NewSymbolTable(),
		module:  &object.Module{},
		debug:   &object.DebugMap{},
	}
}

// forLines runs fn on each line, wrapping any error with its source line.
func (ctx *asmContext) forLines(fn func(line *Line) error) (err error) {
	for _, line := range ctx.lines {
		err = fn(line)
		if err != nil {
			err = ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: err}
			return
		}
	}
	return
}
