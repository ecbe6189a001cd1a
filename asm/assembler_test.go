package asm

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3asm/isa"
	"github.com/ezrec/lc3asm/object"
)

func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func wordsOf(prog *Program) (words []uint16) {
	for _, word := range prog.Module.Words() {
		words = append(words, word)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".ORIG x3000",
		"LOOP ADD R0,R0,#1",
		"BR LOOP",
		".END",
	)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]object.OrigBlock{{Origin: 0x3000, Words: []uint16{0x1021, 0x0ffe}}}, prog.Module.Blocks)

	sym, ok := prog.Symbols.Lookup("LOOP")
	assert.True(ok)
	assert.Equal(0x3000, sym.Address)

	assert.Equal([]object.DebugEntry{
		{Address: 0x3000, Line: "LOOP ADD R0,R0,#1"},
		{Address: 0x3001, Line: "BR LOOP"},
	}, prog.Debug.Entries)
}

func TestAssemblerEmpty(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, "")
	assert.ErrorIs(err, ErrMissingEnd)

	_, err = assemble(t, ".ORIG x3000", "HALT")
	assert.ErrorIs(err, ErrMissingEnd)

	_, err = assemble(t, ".ORIG x3000", ".END", ".ORIG x4000", "HALT")
	assert.ErrorIs(err, ErrMissingEnd)

	prog, err := assemble(t, "; only a comment", ".ORIG x3000", "", ".END ; done")
	assert.NoError(err)
	assert.Equal(0, prog.Module.Len())
}

func TestAssemblerImmediate(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t, ".ORIG x3000", "ADD R1,R1,#15", "ADD R1,R1,#-16", "AND R2,R3,#-1", ".END")
	assert.NoError(err)
	assert.Equal([]uint16{0x126f, 0x1270, 0x54ff}, wordsOf(prog))

	for _, imm := range []string{"#16", "#-17", "X10"} {
		_, err = assemble(t, ".ORIG x3000", "ADD R1,R1,"+imm, ".END")
		var rerr ErrImmediateRange
		assert.True(errors.As(err, &rerr), imm)
		assert.Equal(imm, rerr.Value)
		assert.Equal(5, rerr.Bits)
	}
}

func TestAssemblerOffsets(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".ORIG x3000",
		"BACK ADD R0,R0,#0", // x3000
		"LD R1, FWD",        // x3001
		"BRz BACK",          // x3002
		"JSR FWD",           // x3003
		"FWD .FILL #7",      // x3004
		".END",
	)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]uint16{0x1020, 0x2202, 0x05fd, 0x4800, 0x0007}, wordsOf(prog))

	for addr, word := range prog.Module.Words() {
		inst, ok := isa.Decode(word)
		if !ok || !inst.HasImmediate || inst.Mnemonic == isa.MN_ADD {
			continue
		}
		target := int(addr) + 1 + inst.Immediate
		assert.Contains([]int{0x3000, 0x3004}, target, "x%04x", addr)
	}
}

func TestAssemblerOffsetRange(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble(t, ".ORIG x3000", "BR FAR", ".BLKW #300", "FAR HALT", ".END")
	assert.Equal(ErrSyntax{LineNo: 2, Line: "BR FAR", Err: ErrOffsetRange{Offset: 300, Bits: 9}}, err)

	_, err = assemble(t, ".ORIG x3000", "LDR R0,R1,#32", ".END")
	var oerr ErrOffsetRange
	assert.True(errors.As(err, &oerr))
	assert.Equal(ErrOffsetRange{Offset: 32, Bits: 6}, oerr)

	prog, err := assemble(t, ".ORIG x3000", "LDR R0,R1,#-32", "STR R7,R6,#31", ".END")
	assert.NoError(err)
	assert.Equal([]uint16{0x6060, 0x7f9f}, wordsOf(prog))

	prog, err = assemble(t, ".ORIG x3000", "BRnp #-256", "JSR #1023", ".END")
	assert.NoError(err)
	assert.Equal([]uint16{0x0b00, 0x4bff}, wordsOf(prog))
}

func TestAssemblerAliases(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".ORIG x3000",
		"GETC", "OUT", "PUTS", "IN", "PUTSP", "HALT",
		"RET", "RTI", "TRAP x30",
		"JMP R2", "JSRR R3", "NOT R4,R5",
		".END",
	)
	assert.NoError(err)
	assert.Equal([]uint16{
		0xf020, 0xf021, 0xf022, 0xf023, 0xf024, 0xf025,
		0xc1c0, 0x8000, 0xf030,
		0xc080, 0x40c0, 0x997f,
	}, wordsOf(prog))

	_, err = assemble(t, ".ORIG x3000", "HALT R0", ".END")
	var merr ErrMalformedLine
	assert.True(errors.As(err, &merr))

	_, err = assemble(t, ".ORIG x3000", "TRAP x100", ".END")
	var rerr ErrImmediateRange
	assert.True(errors.As(err, &rerr))
	assert.Equal(8, rerr.Bits)
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"START .ORIG x3000",
		`MSG .STRINGZ "a, b;c" ; greeting`,
		"BUF .BLKW 2",
		"PTR .FILL MSG",
		".FILL xFFFF",
		".FILL #-1",
		".END",
		".ORIG x4000",
		"XYZ ADD R0,R0,#0",
		"BR XYZ",
		".END",
	)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]object.OrigBlock{
		{Origin: 0x3000, Words: []uint16{'a', ',', ' ', 'b', ';', 'c', 0, 0, 0, 0x3000, 0xffff, 0xffff}},
		{Origin: 0x4000, Words: []uint16{0x1020, 0x0ffe}},
	}, prog.Module.Blocks)

	for label, addr := range map[string]int{
		"START": 0x3000,
		"MSG":   0x3000,
		"BUF":   0x3007,
		"PTR":   0x3009,
		"XYZ":   0x4000,
	} {
		sym, ok := prog.Symbols.Lookup(label)
		assert.True(ok, label)
		assert.Equal(addr, sym.Address, label)
	}

	// Only instructions are in the debug map.
	assert.Equal([]object.DebugEntry{
		{Address: 0x4000, Line: "XYZ ADD R0,R0,#0"},
		{Address: 0x4001, Line: "BR XYZ"},
	}, prog.Debug.Entries)
}

func TestAssemblerExternal(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".ORIG x4000",
		".EXTERNAL TARGET",
		".FILL TARGET",
		"PTR .FILL TARGET",
		".END",
	)
	assert.NoError(err)
	if err != nil {
		return
	}

	assert.Equal([]uint16{0, 0}, wordsOf(prog))

	var buf bytes.Buffer
	assert.NoError(prog.Symbols.Marshal(&buf))
	assert.Equal(strings.Join([]string{
		object.SYMBOL_HEADER,
		"x4001\tPTR\t0",
		"x4000\tTARGET\t1\tTARGET",
		"x4001\tPTR\t1\tTARGET",
		"",
	}, "\n"), buf.String())

	_, err = assemble(t, ".ORIG x3000", ".EXTERNAL FOO", "LD R0, FOO", ".END")
	assert.Equal(ErrSyntax{LineNo: 3, Line: "LD R0, FOO", Err: ErrExternalPcRelative("FOO")}, err)

	_, err = assemble(t, ".ORIG x3000", "FOO HALT", ".EXTERNAL FOO", ".END")
	assert.ErrorIs(err, object.ErrMultiplyDefined("FOO"))
}

func TestAssemblerAlias(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".ORIG x3000",
		"A .FILL B",
		"B .FILL C",
		"C .FILL #1",
		".END",
	)
	assert.NoError(err)
	assert.Equal([]uint16{0x3001, 0x3002, 0x0001}, wordsOf(prog))

	_, err = assemble(t, ".ORIG x3000", "A .FILL B", "B .FILL A", ".END")
	var cerr ErrCyclicAlias
	assert.True(errors.As(err, &cerr))
	assert.Equal(ErrCyclicAlias{"A", "B", "A"}, cerr)

	_, err = assemble(t, ".ORIG x3000", "A .FILL A", ".END")
	assert.True(errors.As(err, &cerr))
	assert.Equal(ErrCyclicAlias{"A", "A"}, cerr)

	_, err = assemble(t, ".ORIG x3000", "A .FILL NOWHERE", ".END")
	assert.ErrorIs(err, object.ErrUndefinedSymbol("NOWHERE"))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line string
		err  error
	}{
		{"ADD R8,R0,R0", ErrInvalidRegister("R8")},
		{"ADD R0,R0", ErrMalformedLine(f("%v expects %v operand(s)", isa.MN_ADD, 3))},
		{"ADDD R1,R2,R3", ErrUnknownMnemonic("ADDD")},
		{"LOOP FOO R1", ErrUnknownMnemonic("FOO")},
		{"BR NOWHERE", object.ErrUndefinedSymbol("NOWHERE")},
		{"ADD R0,R0,X12345", ErrImmediateRange{Value: "X12345", Bits: 16}},
		{"ADD R0,R0,#123456", ErrImmediateRange{Value: "#123456", Bits: 16}},
		{`.STRINGZ "open`, ErrMalformedLine(f("unterminated string"))},
		{`.STRINGZ "a" b`, ErrMalformedLine(f("text after string"))},
		{".FILL #65536", ErrImmediateRange{Value: "#65536", Bits: 16}},
	}

	for _, entry := range table {
		_, err := assemble(t, ".ORIG x3000", entry.line, ".END")
		var serr ErrSyntax
		assert.True(errors.As(err, &serr), entry.line)
		assert.Equal(2, serr.LineNo, entry.line)
		assert.Equal(entry.err, serr.Err, entry.line)
	}

	_, err := assemble(t, ".ORIG x3000", "L HALT", "L HALT", ".END")
	assert.ErrorIs(err, object.ErrMultiplyDefined("L"))

	_, err = assemble(t, "HALT", ".END")
	var merr ErrMalformedLine
	assert.True(errors.As(err, &merr))
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("N", 5)

	prog, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".ORIG x3000",
		".BLKW $(2*4)",
		"ADD R1,R1,$(-3)",
		".FILL $(N+1)",
		".FILL $(LINENO)",
		".END",
	}, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	words := wordsOf(prog)
	assert.Len(words, 11)
	assert.Equal([]uint16{0x127d, 6, 5}, words[8:])

	_, err = asm.Parse(strings.NewReader(".ORIG x3000\n.FILL $(1+)\n.END\n"))
	assert.ErrorIs(err, ErrExpression("1+"))

	_, err = asm.Parse(strings.NewReader(".ORIG x3000\n.FILL $([1])\n.END\n"))
	var eerr ErrExpression
	assert.True(errors.As(err, &eerr))
}

func TestAssemblerDeterministic(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".ORIG x3000",
		".EXTERNAL EXT1 EXT2",
		"Z LEA R0, MSG",
		"PUTS",
		"A .FILL EXT2",
		"B .FILL EXT1",
		"C .FILL A",
		"MSG .STRINGZ \"Hi\"",
		"HALT",
		".END",
	}

	var outputs [2][2]bytes.Buffer
	for n := range outputs {
		prog, err := assemble(t, program...)
		assert.NoError(err)
		if err != nil {
			return
		}
		assert.NoError(prog.Module.Marshal(&outputs[n][0]))
		assert.NoError(prog.Symbols.Marshal(&outputs[n][1]))
	}

	assert.Equal(outputs[0][0].String(), outputs[1][0].String())
	assert.Equal(outputs[0][1].String(), outputs[1][1].String())
}

func TestAssemblerRoundTrip(t *testing.T) {
	assert := assert.New(t)

	type expect struct {
		mn   isa.Mnemonic
		regs []isa.Register
		imm  int
	}

	program := []string{".ORIG x3000"}
	var expected []expect
	for dr := range isa.Register(isa.REGISTER_COUNT) {
		for sr := range isa.Register(isa.REGISTER_COUNT) {
			for imm := -16; imm <= 15; imm++ {
				program = append(program, fmt.Sprintf("ADD %v,%v,#%v", dr, sr, imm))
				expected = append(expected, expect{isa.MN_ADD, []isa.Register{dr, sr}, imm})
				program = append(program, fmt.Sprintf("AND %v,%v,#%v", dr, sr, imm))
				expected = append(expected, expect{isa.MN_AND, []isa.Register{dr, sr}, imm})
			}
			for off := -32; off <= 31; off++ {
				program = append(program, fmt.Sprintf("LDR %v,%v,#%v", dr, sr, off))
				expected = append(expected, expect{isa.MN_LDR, []isa.Register{dr, sr}, off})
			}
			program = append(program, fmt.Sprintf("NOT %v,%v", dr, sr))
			expected = append(expected, expect{isa.MN_NOT, []isa.Register{dr, sr}, 0})
		}
		for _, off := range []int{-256, -1, 0, 255} {
			program = append(program, fmt.Sprintf("LEA %v,#%v", dr, off))
			expected = append(expected, expect{isa.MN_LEA, []isa.Register{dr}, off})
		}
	}
	program = append(program, ".END")

	prog, err := assemble(t, program...)
	assert.NoError(err)
	if err != nil {
		return
	}

	n := 0
	for _, word := range prog.Module.Words() {
		inst, ok := isa.Decode(word)
		assert.True(ok, "x%04x", word)
		assert.Equal(expected[n].mn, inst.Mnemonic, program[n+1])
		assert.Equal(expected[n].regs, inst.Registers, program[n+1])
		assert.Equal(expected[n].imm, inst.Immediate, program[n+1])
		n++
	}
	assert.Equal(len(expected), n)
}

func TestEncodeTable(t *testing.T) {
	assert := assert.New(t)

	for mn := range isa.Mnemonic(isa.MN_COUNT) {
		rule := encodeTable[mn]
		if mn.IsAlias() {
			assert.Nil(rule.layout, mn.String())
			canon, _, err := desugar(mn, nil)
			assert.NoError(err)
			assert.NotNil(encodeTable[canon].layout, mn.String())
		} else {
			assert.NotNil(rule.layout, mn.String())
		}
	}
}
