package isa

import (
	"fmt"
	"strings"
)

// Instruction is a decoded instruction word.
type Instruction struct {
	Mnemonic     Mnemonic
	Cond         Cond       // Branch condition, BR only.
	Registers    []Register // Register operands, in source order.
	Immediate    int        // Sign-extended immediate, offset or trap vector.
	HasImmediate bool
}

// decodeRule accepts a word and decodes it.
type decodeRule struct {
	accepts func(w uint16) bool
	decode  func(w uint16) Instruction
}

func opOf(w uint16) Opcode {
	return Opcode((w >> 12) & 0xf)
}

func regAt(w uint16, shift uint) Register {
	return Register((w >> shift) & 0x7)
}

func withImm(mn Mnemonic, imm int, regs ...Register) Instruction {
	return Instruction{Mnemonic: mn, Registers: regs, Immediate: imm, HasImmediate: true}
}

func withRegs(mn Mnemonic, regs ...Register) Instruction {
	return Instruction{Mnemonic: mn, Registers: regs}
}

func trapAlias(mn Mnemonic) decodeRule {
	vector, _ := mn.TrapVector()
	word := MakeTrap(vector)
	return decodeRule{
		func(w uint16) bool { return w == word },
		func(w uint16) Instruction { return Instruction{Mnemonic: mn} },
	}
}

// decodeRules are tried in order; aliases precede the general form.
var decodeRules = []decodeRule{
	{ // ADD register
		func(w uint16) bool { return opOf(w) == OP_ADD && (w>>3)&0x7 == 0 },
		func(w uint16) Instruction { return withRegs(MN_ADD, regAt(w, 9), regAt(w, 6), regAt(w, 0)) },
	},
	{ // ADD immediate
		func(w uint16) bool { return opOf(w) == OP_ADD && w&(1<<5) != 0 },
		func(w uint16) Instruction {
			return withImm(MN_ADD, SignExtend(w, IMM5_BITS), regAt(w, 9), regAt(w, 6))
		},
	},
	{ // AND register
		func(w uint16) bool { return opOf(w) == OP_AND && (w>>3)&0x7 == 0 },
		func(w uint16) Instruction { return withRegs(MN_AND, regAt(w, 9), regAt(w, 6), regAt(w, 0)) },
	},
	{ // AND immediate
		func(w uint16) bool { return opOf(w) == OP_AND && w&(1<<5) != 0 },
		func(w uint16) Instruction {
			return withImm(MN_AND, SignExtend(w, IMM5_BITS), regAt(w, 9), regAt(w, 6))
		},
	},
	{ // BR, a zero condition is a NOP and left undecoded
		func(w uint16) bool { return opOf(w) == OP_BR && (w>>9)&0x7 != 0 },
		func(w uint16) Instruction {
			inst := withImm(MN_BR, SignExtend(w, PCOFFSET9_BITS))
			inst.Cond = Cond((w >> 9) & 0x7)
			return inst
		},
	},
	{ // RET
		func(w uint16) bool { return w == MakeJmp(7) },
		func(w uint16) Instruction { return Instruction{Mnemonic: MN_RET} },
	},
	{ // JMP
		func(w uint16) bool { return opOf(w) == OP_JMP && (w>>9)&0x7 == 0 && w&0x3f == 0 },
		func(w uint16) Instruction { return withRegs(MN_JMP, regAt(w, 6)) },
	},
	{ // JSR
		func(w uint16) bool { return opOf(w) == OP_JSR && w&(1<<11) != 0 },
		func(w uint16) Instruction { return withImm(MN_JSR, SignExtend(w, PCOFFSET11_BITS)) },
	},
	{ // JSRR
		func(w uint16) bool { return opOf(w) == OP_JSR && (w>>9)&0x7 == 0 && w&0x3f == 0 },
		func(w uint16) Instruction { return withRegs(MN_JSRR, regAt(w, 6)) },
	},
	{ // LD
		func(w uint16) bool { return opOf(w) == OP_LD },
		func(w uint16) Instruction { return withImm(MN_LD, SignExtend(w, PCOFFSET9_BITS), regAt(w, 9)) },
	},
	{ // LDI
		func(w uint16) bool { return opOf(w) == OP_LDI },
		func(w uint16) Instruction { return withImm(MN_LDI, SignExtend(w, PCOFFSET9_BITS), regAt(w, 9)) },
	},
	{ // LDR
		func(w uint16) bool { return opOf(w) == OP_LDR },
		func(w uint16) Instruction {
			return withImm(MN_LDR, SignExtend(w, OFFSET6_BITS), regAt(w, 9), regAt(w, 6))
		},
	},
	{ // LEA
		func(w uint16) bool { return opOf(w) == OP_LEA },
		func(w uint16) Instruction { return withImm(MN_LEA, SignExtend(w, PCOFFSET9_BITS), regAt(w, 9)) },
	},
	{ // NOT
		func(w uint16) bool { return opOf(w) == OP_NOT && w&0x3f == 0x3f },
		func(w uint16) Instruction { return withRegs(MN_NOT, regAt(w, 9), regAt(w, 6)) },
	},
	{ // RTI
		func(w uint16) bool { return w == MakeRti() },
		func(w uint16) Instruction { return Instruction{Mnemonic: MN_RTI} },
	},
	{ // ST
		func(w uint16) bool { return opOf(w) == OP_ST },
		func(w uint16) Instruction { return withImm(MN_ST, SignExtend(w, PCOFFSET9_BITS), regAt(w, 9)) },
	},
	{ // STI
		func(w uint16) bool { return opOf(w) == OP_STI },
		func(w uint16) Instruction { return withImm(MN_STI, SignExtend(w, PCOFFSET9_BITS), regAt(w, 9)) },
	},
	{ // STR
		func(w uint16) bool { return opOf(w) == OP_STR },
		func(w uint16) Instruction {
			return withImm(MN_STR, SignExtend(w, OFFSET6_BITS), regAt(w, 9), regAt(w, 6))
		},
	},
	trapAlias(MN_GETC),
	trapAlias(MN_OUT),
	trapAlias(MN_PUTS),
	trapAlias(MN_IN),
	trapAlias(MN_PUTSP),
	trapAlias(MN_HALT),
	{ // TRAP
		func(w uint16) bool { return opOf(w) == OP_TRAP && (w>>8)&0xf == 0 },
		func(w uint16) Instruction { return withImm(MN_TRAP, int(w&0xff)) },
	},
}

// Decode decodes a single word. Words that are not a well formed instruction
// return ok == false.
func Decode(word uint16) (inst Instruction, ok bool) {
	for _, rule := range decodeRules {
		if rule.accepts(word) {
			return rule.decode(word), true
		}
	}

	return
}

// String returns the lower case assembly representation of the instruction.
func (inst Instruction) String() string {
	name := strings.ToLower(inst.Mnemonic.String())
	if inst.Mnemonic == MN_BR {
		name += inst.Cond.String()
	}

	var args []string
	for _, reg := range inst.Registers {
		args = append(args, strings.ToLower(reg.String()))
	}
	if inst.HasImmediate {
		if inst.Mnemonic == MN_TRAP {
			args = append(args, fmt.Sprintf("x%02x", inst.Immediate))
		} else {
			args = append(args, fmt.Sprintf("%d", inst.Immediate))
		}
	}

	if len(args) == 0 {
		return name
	}

	return name + " " + strings.Join(args, ", ")
}
