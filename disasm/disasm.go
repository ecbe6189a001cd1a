// Package disasm renders object modules as assembly listings.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ezrec/lc3asm/isa"
	"github.com/ezrec/lc3asm/object"
)

// EXT_LISTING is the file name extension of a listing.
const EXT_LISTING = ".dis.asm"

// Word renders a single word as an instruction, or as a .fill if it does
// not decode. Fills are signed decimal, or x0000 hex if hex is set.
func Word(word uint16, hex bool) string {
	if inst, ok := isa.Decode(word); ok {
		return inst.String()
	}

	if hex {
		return fmt.Sprintf(".fill x%04x", word)
	}

	return fmt.Sprintf(".fill %d", isa.SignExtend(word, isa.WORD_BITS))
}

// Write writes each block of mod as a .orig ... .end section. Sections are
// separated by a blank line.
func Write(w io.Writer, mod *object.Module, hex bool) (err error) {
	bw := bufio.NewWriter(w)

	for n, block := range mod.Blocks {
		if n > 0 {
			_, err = fmt.Fprintln(bw)
			if err != nil {
				return
			}
		}

		_, err = fmt.Fprintf(bw, ".orig x%04x\n", block.Origin)
		if err != nil {
			return
		}

		for _, word := range block.Words {
			_, err = fmt.Fprintln(bw, Word(word, hex))
			if err != nil {
				return
			}
		}

		_, err = fmt.Fprintln(bw, ".end")
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}
