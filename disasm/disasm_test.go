package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lc3asm/asm"
	"github.com/ezrec/lc3asm/object"
)

func TestWord(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		word uint16
		text string
		hex  string
	}{
		{0x1021, "add r0, r0, 1", ""},
		{0x0ffe, "brnzp -2", ""},
		{0xf025, "halt", ""},
		{0xc1c0, "ret", ""},
		{0xf0ff, "trap xff", ""},
		{0x0000, ".fill 0", ".fill x0000"},
		{0xffff, ".fill -1", ".fill xffff"},
		{0xd000, ".fill -12288", ".fill xd000"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, Word(entry.word, false), "x%04x", entry.word)
		if len(entry.hex) > 0 {
			assert.Equal(entry.hex, Word(entry.word, true), "x%04x", entry.word)
		} else {
			assert.Equal(entry.text, Word(entry.word, true), "x%04x", entry.word)
		}
	}
}

func TestWrite(t *testing.T) {
	assert := assert.New(t)

	mod := &object.Module{Blocks: []object.OrigBlock{
		{Origin: 0x3000, Words: []uint16{0x1021, 0x0ffe}},
		{Origin: 0x4000, Words: []uint16{0x0041, 0xf025}},
		{Origin: 0x5000},
	}}

	var buf bytes.Buffer
	assert.NoError(Write(&buf, mod, false))
	assert.Equal(strings.Join([]string{
		".orig x3000",
		"add r0, r0, 1",
		"brnzp -2",
		".end",
		"",
		".orig x4000",
		".fill 65",
		"halt",
		".end",
		"",
		".orig x5000",
		".end",
		"",
	}, "\n"), buf.String())

	buf.Reset()
	assert.NoError(Write(&buf, &object.Module{}, true))
	assert.Empty(buf.String())
}

func TestWriteAssembled(t *testing.T) {
	assert := assert.New(t)

	source := []string{
		".ORIG x3000",
		"LOOP LDR R1, R2, #-4",
		"NOT R1, R1",
		"BRzp LOOP",
		"LEA R0, LOOP",
		"PUTS",
		".END",
	}

	prog, err := (&asm.Assembler{}).Parse(strings.NewReader(strings.Join(source, "\n")))
	assert.NoError(err)
	if err != nil {
		return
	}

	var buf bytes.Buffer
	assert.NoError(Write(&buf, prog.Module, true))
	assert.Equal(strings.Join([]string{
		".orig x3000",
		"ldr r1, r2, -4",
		"not r1, r1",
		"brzp -3",
		"lea r0, -4",
		"puts",
		".end",
		"",
	}, "\n"), buf.String())
}
