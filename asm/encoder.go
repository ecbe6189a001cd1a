package asm

import (
	"github.com/ezrec/lc3asm/isa"
	"github.com/ezrec/lc3asm/object"
)

// layout packs the operands of an instruction at line into a word.
type layout func(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error)

// encodeRule is the operand count and bit layout of a mnemonic.
type encodeRule struct {
	arity  int
	layout layout
}

// encodeTable has an entry for every mnemonic that is not an alias.
var encodeTable = [isa.MN_COUNT]encodeRule{
	isa.MN_ADD:  {3, aluLayout(isa.MakeAddReg, isa.MakeAddImm)},
	isa.MN_AND:  {3, aluLayout(isa.MakeAndReg, isa.MakeAndImm)},
	isa.MN_BR:   {1, brLayout},
	isa.MN_JMP:  {1, baseLayout(isa.MakeJmp)},
	isa.MN_JSR:  {1, jsrLayout},
	isa.MN_JSRR: {1, baseLayout(isa.MakeJsrr)},
	isa.MN_LD:   {2, pcRelativeLayout(isa.OP_LD)},
	isa.MN_LDI:  {2, pcRelativeLayout(isa.OP_LDI)},
	isa.MN_LDR:  {3, baseOffsetLayout(isa.OP_LDR)},
	isa.MN_LEA:  {2, pcRelativeLayout(isa.OP_LEA)},
	isa.MN_NOT:  {2, notLayout},
	isa.MN_RTI:  {0, rtiLayout},
	isa.MN_ST:   {2, pcRelativeLayout(isa.OP_ST)},
	isa.MN_STI:  {2, pcRelativeLayout(isa.OP_STI)},
	isa.MN_STR:  {3, baseOffsetLayout(isa.OP_STR)},
	isa.MN_TRAP: {1, trapLayout},
}

// desugar rewrites RET and the trap aliases into their canonical
// instruction.
func desugar(mn isa.Mnemonic, ops []Operand) (canon isa.Mnemonic, args []Operand, err error) {
	canon, args = mn, ops
	if !mn.IsAlias() {
		return
	}

	if len(ops) != 0 {
		err = ErrMalformedLine(f("%v takes no operands", mn))
		return
	}

	if mn == isa.MN_RET {
		canon = isa.MN_JMP
		args = []Operand{{Kind: OPERAND_REGISTER, Register: 7, Text: "R7"}}
		return
	}

	vector, _ := mn.TrapVector()
	canon = isa.MN_TRAP
	args = []Operand{{Kind: OPERAND_IMMEDIATE, Value: int(vector), Text: mn.String()}}
	return
}

// encode encodes the instruction at line.
func (ctx *asmContext) encode(line *Line) (word uint16, err error) {
	mn, ops, err := desugar(line.Mnemonic, line.Operands)
	if err != nil {
		return
	}

	rule := encodeTable[mn]
	if rule.layout == nil {
		err = ErrUnknownMnemonic(mn.String())
		return
	}

	if len(ops) != rule.arity {
		err = ErrMalformedLine(f("%v expects %v operand(s)", line.Mnemonic, rule.arity))
		return
	}

	word, err = rule.layout(ctx, line, ops)
	return
}

func register(op Operand) (reg isa.Register, err error) {
	if op.Kind != OPERAND_REGISTER {
		err = ErrMalformedLine(f("'%v' is not a register", op.Text))
		return
	}
	if !op.Register.Valid() {
		err = ErrInvalidRegister(op.Text)
		return
	}
	reg = op.Register
	return
}

func registers(ops ...Operand) (regs []isa.Register, err error) {
	regs = make([]isa.Register, len(ops))
	for n, op := range ops {
		regs[n], err = register(op)
		if err != nil {
			return
		}
	}
	return
}

// immediate returns a signed immediate of the given width.
func immediate(op Operand, bits uint) (value int, err error) {
	if op.Kind != OPERAND_IMMEDIATE {
		err = ErrMalformedLine(f("'%v' is not a number", op.Text))
		return
	}
	if !isa.FitsSigned(op.Value, bits) {
		err = ErrImmediateRange{Value: op.Text, Bits: int(bits)}
		return
	}
	value = op.Value
	return
}

// pcOffset returns target - (address + 1) for a label, or a literal offset
// as written.
func (ctx *asmContext) pcOffset(line *Line, op Operand, bits uint) (offset int, err error) {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		offset = op.Value
	case OPERAND_LABEL:
		sym, ok := ctx.symbols.Lookup(op.Label)
		if !ok {
			err = object.ErrUndefinedSymbol(op.Label)
			return
		}
		if !sym.Defined {
			err = ErrExternalPcRelative(op.Label)
			return
		}
		offset = sym.Address - (line.Address + 1)
	default:
		err = ErrMalformedLine(f("'%v' is not a label or offset", op.Text))
		return
	}

	if !isa.FitsSigned(offset, bits) {
		err = ErrOffsetRange{Offset: offset, Bits: int(bits)}
		return
	}

	return
}

func aluLayout(makeReg func(dr, sr1, sr2 isa.Register) uint16, makeImm func(dr, sr1 isa.Register, imm5 int) uint16) layout {
	return func(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
		regs, err := registers(ops[0], ops[1])
		if err != nil {
			return
		}

		if ops[2].Kind == OPERAND_REGISTER {
			var sr2 isa.Register
			sr2, err = register(ops[2])
			if err != nil {
				return
			}
			word = makeReg(regs[0], regs[1], sr2)
			return
		}

		imm5, err := immediate(ops[2], isa.IMM5_BITS)
		if err != nil {
			return
		}
		word = makeImm(regs[0], regs[1], imm5)
		return
	}
}

func brLayout(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
	offset, err := ctx.pcOffset(line, ops[0], isa.PCOFFSET9_BITS)
	if err != nil {
		return
	}
	word = isa.MakeBr(line.Cond, offset)
	return
}

func baseLayout(makeBase func(base isa.Register) uint16) layout {
	return func(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
		base, err := register(ops[0])
		if err != nil {
			return
		}
		word = makeBase(base)
		return
	}
}

func jsrLayout(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
	offset, err := ctx.pcOffset(line, ops[0], isa.PCOFFSET11_BITS)
	if err != nil {
		return
	}
	word = isa.MakeJsr(offset)
	return
}

func pcRelativeLayout(op isa.Opcode) layout {
	return func(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
		reg, err := register(ops[0])
		if err != nil {
			return
		}
		offset, err := ctx.pcOffset(line, ops[1], isa.PCOFFSET9_BITS)
		if err != nil {
			return
		}
		word = isa.MakePcRelative(op, reg, offset)
		return
	}
}

func baseOffsetLayout(op isa.Opcode) layout {
	return func(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
		regs, err := registers(ops[0], ops[1])
		if err != nil {
			return
		}
		if ops[2].Kind != OPERAND_IMMEDIATE {
			err = ErrMalformedLine(f("'%v' is not a number", ops[2].Text))
			return
		}
		offset := ops[2].Value
		if !isa.FitsSigned(offset, isa.OFFSET6_BITS) {
			err = ErrOffsetRange{Offset: offset, Bits: isa.OFFSET6_BITS}
			return
		}
		word = isa.MakeBaseOffset(op, regs[0], regs[1], offset)
		return
	}
}

func notLayout(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
	regs, err := registers(ops...)
	if err != nil {
		return
	}
	word = isa.MakeNot(regs[0], regs[1])
	return
}

func rtiLayout(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
	word = isa.MakeRti()
	return
}

func trapLayout(ctx *asmContext, line *Line, ops []Operand) (word uint16, err error) {
	if ops[0].Kind != OPERAND_IMMEDIATE {
		err = ErrMalformedLine(f("'%v' is not a trap vector", ops[0].Text))
		return
	}
	if !isa.FitsUnsigned(ops[0].Value, isa.TRAPVECT8_BITS) {
		err = ErrImmediateRange{Value: ops[0].Text, Bits: isa.TRAPVECT8_BITS}
		return
	}
	word = isa.MakeTrap(uint8(ops[0].Value))
	return
}
