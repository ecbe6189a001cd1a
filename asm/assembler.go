// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/lc3asm/object"
)

// Assembler is a two pass assembler for LC-3 assembly source.
type Assembler struct {
	Verbose bool               // If set, verbosely logs the assembler actions.
	Log     logrus.FieldLogger // Debug sink; nil discards.

	predefine map[string]int // Constants visible to $(...) expressions.
}

// Predefine defines a constant for $(...) expressions, or redefines one.
func (asm *Assembler) Predefine(name string, value int) {
	if asm.predefine == nil {
		asm.predefine = map[string]int{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// Program is the result of an assembly.
type Program struct {
	Lines   []*Line
	Module  *object.Module
	Symbols *object.SymbolTable
	Debug   *object.DebugMap
}

// Bundle returns the program's object, symbol and debug data.
func (prog *Program) Bundle() *object.Bundle {
	return &object.Bundle{
		Module:  prog.Module,
		Symbols: prog.Symbols,
		Debug:   prog.Debug,
	}
}

func (asm *Assembler) logger() logrus.FieldLogger {
	if asm.Log != nil {
		return asm.Log
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Parse assembles an input stream. The first error aborts the assembly.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	ctx := newContext(asm.Verbose, asm.logger())

	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		if asm.Verbose {
			ctx.log.WithField("pass", ctx.pass).Infof("%v: %v", lineno, text)
		}

		var line *Line
		line, err = parseLine(lineno, text, asm.predefine)
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: text, Err: err}
			return
		}
		if line != nil {
			ctx.lines = append(ctx.lines, line)
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	err = ctx.pass1()
	if err != nil {
		return
	}

	err = ctx.resolveAliases()
	if err != nil {
		return
	}

	err = ctx.pass2()
	if err != nil {
		return
	}

	prog = &Program{
		Lines:   ctx.lines,
		Module:  ctx.module,
		Symbols: ctx.symbols,
		Debug:   ctx.debug,
	}

	return
}
