// Package asm implements a two pass assembler for LC-3 assembly source.
//
// Source is tokenized once into a sequence of Line values. Pass 1 walks the
// lines with a location counter, defining labels and recording .EXTERNAL
// declarations and .FILL references. Labels filled with other labels are
// then resolved to a fixed point, rejecting cycles. Pass 2 walks the same
// lines again, encoding instructions through a per mnemonic table and
// emitting ORIG blocks and a debug map.
//
// Operands written as $(expr) are evaluated at parse time as Starlark
// expressions, with any predefined constants and LINENO in scope.
package asm
