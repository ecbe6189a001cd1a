// Package isa describes the LC-3 instruction set targeted by the assembler
// and linker.
//
// Every instruction is a single 16-bit word. The top four bits select the
// opcode; the remaining twelve bits hold 3-bit register fields, sign-extended
// immediates, or PC-relative offsets depending on the opcode. The package
// provides the closed enumerations used by the assembler (Opcode, Mnemonic,
// Directive), field packing helpers (Make*), two's complement range checks,
// and a single word decoder used by the disassembler.
package isa
