package object

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// ORIG_PREFIX starts a block header line in an object file.
const ORIG_PREFIX = "ORIG: "

// OrigBlock is a run of words placed at consecutive addresses.
type OrigBlock struct {
	Origin uint16
	Words  []uint16
}

// Module is an ordered list of ORIG blocks. Blocks keep their source order
// and may overlap or leave gaps.
type Module struct {
	Blocks []OrigBlock
}

// Origin starts a new block at addr.
func (mod *Module) Origin(addr uint16) {
	mod.Blocks = append(mod.Blocks, OrigBlock{Origin: addr})
}

// Append adds words to the most recent block.
func (mod *Module) Append(words ...uint16) (err error) {
	if len(mod.Blocks) == 0 {
		err = ErrNoOrigin
		return
	}

	block := &mod.Blocks[len(mod.Blocks)-1]
	block.Words = append(block.Words, words...)

	return
}

// Len returns the total number of words in the module.
func (mod *Module) Len() (count int) {
	for _, block := range mod.Blocks {
		count += len(block.Words)
	}

	return
}

// Words iterates over each word and the address it is placed at.
func (mod *Module) Words() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, word uint16) bool) {
		for _, block := range mod.Blocks {
			addr := block.Origin
			for _, word := range block.Words {
				if !yield(addr, word) {
					return
				}
				addr++
			}
		}
	}
}

// parseAddress parses an x0000 form hexadecimal word.
func parseAddress(text string) (value uint16, err error) {
	digits, ok := strings.CutPrefix(text, "x")
	if !ok {
		digits, ok = strings.CutPrefix(text, "X")
	}
	if !ok || len(digits) == 0 || len(digits) > 4 {
		err = ErrParseAddress(text)
		return
	}

	v64, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		err = ErrParseAddress(text)
		return
	}

	value = uint16(v64)
	return
}

// Marshal writes the module in object file form.
func (mod *Module) Marshal(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	for _, block := range mod.Blocks {
		_, err = fmt.Fprintf(bw, "%sx%04x\n", ORIG_PREFIX, block.Origin)
		if err != nil {
			return
		}
		for _, word := range block.Words {
			_, err = fmt.Fprintf(bw, "x%04x\n", word)
			if err != nil {
				return
			}
		}
	}

	err = bw.Flush()
	return
}

// Unmarshal replaces the module with the blocks read from an object file.
func (mod *Module) Unmarshal(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrRecord{LineNo: lineno, Line: line, Err: err}
		}
	}()

	mod.Blocks = nil

	for scanner.Scan() {
		lineno++
		line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		header, isOrig := strings.CutPrefix(line, ORIG_PREFIX)

		var value uint16
		value, err = parseAddress(strings.TrimSpace(header))
		if err != nil {
			return
		}

		if isOrig {
			mod.Origin(value)
			continue
		}

		err = mod.Append(value)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	return
}
