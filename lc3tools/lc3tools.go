// Package lc3tools converts object modules to and from the binary object
// format of the LC3Tools simulator.
//
// A file is a magic number and version, then one record per memory location:
//
//	value   uint16, little-endian
//	is-orig uint8, 1 for a block origin
//	length  uint32, little-endian
//	line    length bytes of source text
package lc3tools

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/ezrec/lc3asm/object"
	"github.com/ezrec/lc3asm/translate"
)

var f = translate.From

var (
	ErrMagic      = errors.New(f("not an LC3Tools object file"))
	ErrVersion    = errors.New(f("unsupported LC3Tools object file version"))
	ErrTruncated  = errors.New(f("LC3Tools object file is truncated"))
	ErrLineLength = errors.New(f("LC3Tools source line too long"))
)

// EXT_LC3TOOLS is the file name extension of an LC3Tools object file.
const EXT_LC3TOOLS = ".lc3tools.obj"

// MAX_LINE bounds the length of a record's source line.
const MAX_LINE = 1 << 16

var (
	MAGIC   = []byte{0x1c, 0x30, 0x15, 0xc0, 0x01}
	VERSION = []byte{0x01, 0x01}
)

type header struct {
	Value  uint16
	IsOrig uint8
	Length uint32
}

func writeRecord(w io.Writer, value uint16, isOrig bool, line string) (err error) {
	hdr := header{Value: value, Length: uint32(len(line))}
	if isOrig {
		hdr.IsOrig = 1
	}

	err = binary.Write(w, binary.LittleEndian, &hdr)
	if err != nil {
		return
	}

	_, err = io.WriteString(w, line)
	return
}

// Encode writes mod in LC3Tools form. Each word carries the debug line of
// its address, if debug has one.
func Encode(w io.Writer, mod *object.Module, debug *object.DebugMap) (err error) {
	bw := bufio.NewWriter(w)

	_, err = bw.Write(MAGIC)
	if err != nil {
		return
	}
	_, err = bw.Write(VERSION)
	if err != nil {
		return
	}

	lines := map[uint16]string{}
	if debug != nil {
		for addr, line := range debug.All() {
			if _, ok := lines[addr]; !ok {
				lines[addr] = line
			}
		}
	}

	for _, block := range mod.Blocks {
		err = writeRecord(bw, block.Origin, true, "")
		if err != nil {
			return
		}
		for n, word := range block.Words {
			err = writeRecord(bw, word, false, lines[block.Origin+uint16(n)])
			if err != nil {
				return
			}
		}
	}

	err = bw.Flush()
	return
}

// Decode reads an LC3Tools object file. Non-empty source lines are returned
// in the debug map.
func Decode(r io.Reader) (mod *object.Module, debug *object.DebugMap, err error) {
	br := bufio.NewReader(r)

	id := make([]byte, len(MAGIC)+len(VERSION))
	_, err = io.ReadFull(br, id)
	if err != nil {
		err = ErrMagic
		return
	}
	if !bytes.Equal(id[:len(MAGIC)], MAGIC) {
		err = ErrMagic
		return
	}
	if !bytes.Equal(id[len(MAGIC):], VERSION) {
		err = ErrVersion
		return
	}

	mod = &object.Module{}
	debug = &object.DebugMap{}

	var addr uint16
	for {
		var hdr header
		err = binary.Read(br, binary.LittleEndian, &hdr)
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			err = ErrTruncated
			return
		}

		if hdr.Length > MAX_LINE {
			err = ErrLineLength
			return
		}

		line := make([]byte, hdr.Length)
		_, err = io.ReadFull(br, line)
		if err != nil {
			err = ErrTruncated
			return
		}

		if hdr.IsOrig != 0 {
			mod.Origin(hdr.Value)
			addr = hdr.Value
			continue
		}

		err = mod.Append(hdr.Value)
		if err != nil {
			return
		}
		if len(line) > 0 {
			debug.Append(addr, string(line))
		}
		addr++
	}
}
