package isa

import (
	"fmt"
	"strings"
)

// Opcode is the 4-bit operation code in bits 15..12 of an instruction word.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_BR   = Opcode(0)  // br
	OP_ADD  = Opcode(1)  // add
	OP_LD   = Opcode(2)  // ld
	OP_ST   = Opcode(3)  // st
	OP_JSR  = Opcode(4)  // jsr
	OP_AND  = Opcode(5)  // and
	OP_LDR  = Opcode(6)  // ldr
	OP_STR  = Opcode(7)  // str
	OP_RTI  = Opcode(8)  // rti
	OP_NOT  = Opcode(9)  // not
	OP_LDI  = Opcode(10) // ldi
	OP_STI  = Opcode(11) // sti
	OP_JMP  = Opcode(12) // jmp
	OP_RES  = Opcode(13) // reserved
	OP_LEA  = Opcode(14) // lea
	OP_TRAP = Opcode(15) // trap
)

// Mnemonic is an instruction name as written in assembly source, including
// the trap and return aliases.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	MN_ADD   = Mnemonic(0)  // ADD
	MN_AND   = Mnemonic(1)  // AND
	MN_BR    = Mnemonic(2)  // BR
	MN_JMP   = Mnemonic(3)  // JMP
	MN_JSR   = Mnemonic(4)  // JSR
	MN_JSRR  = Mnemonic(5)  // JSRR
	MN_LD    = Mnemonic(6)  // LD
	MN_LDI   = Mnemonic(7)  // LDI
	MN_LDR   = Mnemonic(8)  // LDR
	MN_LEA   = Mnemonic(9)  // LEA
	MN_NOT   = Mnemonic(10) // NOT
	MN_RET   = Mnemonic(11) // RET
	MN_RTI   = Mnemonic(12) // RTI
	MN_ST    = Mnemonic(13) // ST
	MN_STI   = Mnemonic(14) // STI
	MN_STR   = Mnemonic(15) // STR
	MN_TRAP  = Mnemonic(16) // TRAP
	MN_GETC  = Mnemonic(17) // GETC
	MN_OUT   = Mnemonic(18) // OUT
	MN_PUTS  = Mnemonic(19) // PUTS
	MN_IN    = Mnemonic(20) // IN
	MN_PUTSP = Mnemonic(21) // PUTSP
	MN_HALT  = Mnemonic(22) // HALT
)

// MN_COUNT is the number of mnemonics.
const MN_COUNT = int(MN_HALT) + 1

// Directive is an assembler pseudo-op.
type Directive int

//go:generate go tool stringer -linecomment -type=Directive
const (
	DIR_ORIG     = Directive(0) // .ORIG
	DIR_END      = Directive(1) // .END
	DIR_FILL     = Directive(2) // .FILL
	DIR_BLKW     = Directive(3) // .BLKW
	DIR_STRINGZ  = Directive(4) // .STRINGZ
	DIR_EXTERNAL = Directive(5) // .EXTERNAL
)

// DIR_COUNT is the number of directives.
const DIR_COUNT = int(DIR_EXTERNAL) + 1

// Trap vectors of the trap aliases.
const (
	TRAP_GETC  = 0x20
	TRAP_OUT   = 0x21
	TRAP_PUTS  = 0x22
	TRAP_IN    = 0x23
	TRAP_PUTSP = 0x24
	TRAP_HALT  = 0x25
)

// Field widths, in bits.
const (
	IMM5_BITS       = 5
	OFFSET6_BITS    = 6
	TRAPVECT8_BITS  = 8
	PCOFFSET9_BITS  = 9
	PCOFFSET11_BITS = 11
	WORD_BITS       = 16
)

// Cond is the n/z/p condition mask of a BR instruction.
type Cond uint8

const (
	COND_P   = Cond(1 << 0)
	COND_Z   = Cond(1 << 1)
	COND_N   = Cond(1 << 2)
	COND_NZP = COND_N | COND_Z | COND_P
)

// String returns the lower case condition suffix, e.g. "nz".
func (cond Cond) String() string {
	var sb strings.Builder
	if cond&COND_N != 0 {
		sb.WriteByte('n')
	}
	if cond&COND_Z != 0 {
		sb.WriteByte('z')
	}
	if cond&COND_P != 0 {
		sb.WriteByte('p')
	}
	return sb.String()
}

// Register is one of the eight general purpose registers.
type Register uint8

// REGISTER_COUNT is the number of general purpose registers.
const REGISTER_COUNT = 8

// Valid returns true if the register index is in R0..R7.
func (reg Register) Valid() bool {
	return reg < REGISTER_COUNT
}

func (reg Register) String() string {
	return fmt.Sprintf("R%d", uint8(reg))
}

var mnemonicMap = map[string]Mnemonic{}
var directiveMap = map[string]Directive{}

func init() {
	for mn := range Mnemonic(MN_COUNT) {
		mnemonicMap[mn.String()] = mn
	}
	for dir := range Directive(DIR_COUNT) {
		directiveMap[dir.String()] = dir
	}
}

// ParseMnemonic looks up an upper case mnemonic. Branches may carry an n/z/p
// suffix, in that order; a bare BR branches unconditionally.
func ParseMnemonic(name string) (mn Mnemonic, cond Cond, ok bool) {
	if strings.HasPrefix(name, "BR") {
		suffix := name[2:]
		if len(suffix) == 0 {
			return MN_BR, COND_NZP, true
		}
		for _, flag := range []struct {
			letter byte
			cond   Cond
		}{{'N', COND_N}, {'Z', COND_Z}, {'P', COND_P}} {
			if len(suffix) > 0 && suffix[0] == flag.letter {
				cond |= flag.cond
				suffix = suffix[1:]
			}
		}
		if len(suffix) != 0 {
			return 0, 0, false
		}
		return MN_BR, cond, true
	}

	mn, ok = mnemonicMap[name]
	return
}

// ParseDirective looks up an upper case directive, including its leading dot.
func ParseDirective(name string) (dir Directive, ok bool) {
	dir, ok = directiveMap[name]
	return
}

// IsAlias returns true for mnemonics that expand to another instruction.
func (mn Mnemonic) IsAlias() bool {
	switch mn {
	case MN_RET, MN_GETC, MN_OUT, MN_PUTS, MN_IN, MN_PUTSP, MN_HALT:
		return true
	}
	return false
}

// TrapVector returns the trap vector of a trap alias.
func (mn Mnemonic) TrapVector() (vector uint8, ok bool) {
	ok = true
	switch mn {
	case MN_GETC:
		vector = TRAP_GETC
	case MN_OUT:
		vector = TRAP_OUT
	case MN_PUTS:
		vector = TRAP_PUTS
	case MN_IN:
		vector = TRAP_IN
	case MN_PUTSP:
		vector = TRAP_PUTSP
	case MN_HALT:
		vector = TRAP_HALT
	default:
		ok = false
	}
	return
}
