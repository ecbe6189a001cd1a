package object

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
)

// DebugEntry associates an address with the source line assembled there.
type DebugEntry struct {
	Address uint16
	Line    string
}

// DebugMap is an ordered list of debug entries.
type DebugMap struct {
	Entries []DebugEntry

	index map[uint16]int
}

// Set records the source line for addr, replacing any earlier entry for the
// same address so that each address appears at most once.
func (dm *DebugMap) Set(addr uint16, line string) {
	if dm.index == nil {
		dm.index = make(map[uint16]int)
		for n, entry := range dm.Entries {
			if _, ok := dm.index[entry.Address]; !ok {
				dm.index[entry.Address] = n
			}
		}
	}

	n, ok := dm.index[addr]
	if ok {
		dm.Entries[n].Line = line
		return
	}

	dm.index[addr] = len(dm.Entries)
	dm.Entries = append(dm.Entries, DebugEntry{Address: addr, Line: line})
}

// Append adds an entry without checking for an existing one.
func (dm *DebugMap) Append(addr uint16, line string) {
	if dm.index != nil {
		if _, ok := dm.index[addr]; !ok {
			dm.index[addr] = len(dm.Entries)
		}
	}
	dm.Entries = append(dm.Entries, DebugEntry{Address: addr, Line: line})
}

// Lookup returns the first source line recorded for addr.
func (dm *DebugMap) Lookup(addr uint16) (line string, ok bool) {
	for _, entry := range dm.Entries {
		if entry.Address == addr {
			return entry.Line, true
		}
	}

	return
}

// All iterates over the entries in order.
func (dm *DebugMap) All() iter.Seq2[uint16, string] {
	return func(yield func(addr uint16, line string) bool) {
		for _, entry := range dm.Entries {
			if !yield(entry.Address, entry.Line) {
				return
			}
		}
	}
}

// Marshal writes the map in debug symbol file form.
func (dm *DebugMap) Marshal(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	for _, entry := range dm.Entries {
		_, err = fmt.Fprintf(bw, "x%04x: %s\n", entry.Address, entry.Line)
		if err != nil {
			return
		}
	}

	err = bw.Flush()
	return
}

// Unmarshal replaces the map with the entries of a debug symbol file.
func (dm *DebugMap) Unmarshal(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrRecord{LineNo: lineno, Line: line, Err: err}
		}
	}()

	dm.Entries = nil
	dm.index = nil

	for scanner.Scan() {
		lineno++
		line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		addrText, text, ok := strings.Cut(line, ":")
		if !ok {
			err = ErrDebugSeparator
			return
		}

		var addr uint16
		addr, err = parseAddress(addrText)
		if err != nil {
			return
		}

		dm.Append(addr, strings.TrimPrefix(text, " "))
	}

	err = scanner.Err()
	return
}
