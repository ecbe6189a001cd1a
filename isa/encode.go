package isa

// FitsSigned returns true if value is representable as a bits-wide two's
// complement integer.
func FitsSigned(value int, bits uint) bool {
	lo := -(1 << (bits - 1))
	hi := (1 << (bits - 1)) - 1
	return value >= lo && value <= hi
}

// FitsUnsigned returns true if value is representable as a bits-wide
// unsigned integer.
func FitsUnsigned(value int, bits uint) bool {
	return value >= 0 && value < (1<<bits)
}

// SignExtend interprets the low bits of value as a two's complement integer.
func SignExtend(value uint16, bits uint) int {
	mask := uint16(1<<bits) - 1
	value &= mask
	if value&(1<<(bits-1)) != 0 {
		return int(value) - (1 << bits)
	}
	return int(value)
}

// field masks value into a bits-wide field.
func field(value int, bits uint) uint16 {
	return uint16(value) & uint16((1<<bits)-1)
}

// makeOp creates an instruction word from an opcode and its low 12 bits.
func makeOp(op Opcode, low uint16) uint16 {
	return (uint16(op) << 12) | (low & 0x0fff)
}

// reg3 places a register at bit position shift.
func reg3(reg Register, shift uint) uint16 {
	return (uint16(reg) & 0x7) << shift
}

// MakeAddReg creates ADD DR, SR1, SR2.
func MakeAddReg(dr, sr1, sr2 Register) uint16 {
	return makeOp(OP_ADD, reg3(dr, 9)|reg3(sr1, 6)|reg3(sr2, 0))
}

// MakeAddImm creates ADD DR, SR1, imm5.
func MakeAddImm(dr, sr1 Register, imm5 int) uint16 {
	return makeOp(OP_ADD, reg3(dr, 9)|reg3(sr1, 6)|(1<<5)|field(imm5, IMM5_BITS))
}

// MakeAndReg creates AND DR, SR1, SR2.
func MakeAndReg(dr, sr1, sr2 Register) uint16 {
	return makeOp(OP_AND, reg3(dr, 9)|reg3(sr1, 6)|reg3(sr2, 0))
}

// MakeAndImm creates AND DR, SR1, imm5.
func MakeAndImm(dr, sr1 Register, imm5 int) uint16 {
	return makeOp(OP_AND, reg3(dr, 9)|reg3(sr1, 6)|(1<<5)|field(imm5, IMM5_BITS))
}

// MakeBr creates a conditional branch.
func MakeBr(cond Cond, offset9 int) uint16 {
	return makeOp(OP_BR, (uint16(cond&COND_NZP)<<9)|field(offset9, PCOFFSET9_BITS))
}

// MakeJmp creates JMP BaseR.
func MakeJmp(base Register) uint16 {
	return makeOp(OP_JMP, reg3(base, 6))
}

// MakeJsr creates JSR with a PC-relative offset.
func MakeJsr(offset11 int) uint16 {
	return makeOp(OP_JSR, (1<<11)|field(offset11, PCOFFSET11_BITS))
}

// MakeJsrr creates JSRR BaseR.
func MakeJsrr(base Register) uint16 {
	return makeOp(OP_JSR, reg3(base, 6))
}

// MakePcRelative creates one of LD, LDI, LEA, ST or STI.
func MakePcRelative(op Opcode, reg Register, offset9 int) uint16 {
	return makeOp(op, reg3(reg, 9)|field(offset9, PCOFFSET9_BITS))
}

// MakeBaseOffset creates LDR or STR.
func MakeBaseOffset(op Opcode, reg, base Register, offset6 int) uint16 {
	return makeOp(op, reg3(reg, 9)|reg3(base, 6)|field(offset6, OFFSET6_BITS))
}

// MakeNot creates NOT DR, SR.
func MakeNot(dr, sr Register) uint16 {
	return makeOp(OP_NOT, reg3(dr, 9)|reg3(sr, 6)|0x3f)
}

// MakeTrap creates TRAP trapvect8.
func MakeTrap(vector uint8) uint16 {
	return makeOp(OP_TRAP, uint16(vector))
}

// MakeRti creates RTI.
func MakeRti() uint16 {
	return makeOp(OP_RTI, 0)
}
