package object

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// SYMBOL_HEADER is the first line of a symbol file.
const SYMBOL_HEADER = "ADDRESS\tLABEL\tEXTERNAL\tEXTLABEL"

// Symbol is a label and, once known, the address it names.
type Symbol struct {
	Label     string
	Address   int    // Valid if Defined.
	Defined   bool   // False for a label declared external.
	External  bool   // Declared with .EXTERNAL.
	AliasOf   string // Label this symbol's word is filled with, until resolved.
	FillSites []int  // Addresses to patch with this symbol's final address.
}

// Relocation patches the word at Address with Value.
type Relocation struct {
	Address uint16
	Value   uint16
}

// SymbolTable maps labels to symbols.
type SymbolTable struct {
	Symbols map[string](*Symbol)
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{Symbols: make(map[string](*Symbol))}
}

// Lookup finds a symbol by label.
func (st *SymbolTable) Lookup(label string) (sym *Symbol, ok bool) {
	sym, ok = st.Symbols[label]
	return
}

func (st *SymbolTable) intern(label string) (sym *Symbol) {
	if st.Symbols == nil {
		st.Symbols = make(map[string](*Symbol))
	}
	sym, ok := st.Symbols[label]
	if !ok {
		sym = &Symbol{Label: label}
		st.Symbols[label] = sym
	}
	return
}

// Define gives label a local address. A label may only be defined once, and
// never both defined and declared external.
func (st *SymbolTable) Define(label string, address int) (sym *Symbol, err error) {
	sym = st.intern(label)
	if sym.Defined || sym.External {
		err = ErrMultiplyDefined(label)
		return
	}

	sym.Address = address
	sym.Defined = true
	return
}

// Declare marks label as defined by another module.
func (st *SymbolTable) Declare(label string) (sym *Symbol, err error) {
	sym = st.intern(label)
	if sym.Defined {
		err = ErrMultiplyDefined(label)
		return
	}

	sym.External = true
	return
}

// AddFillSite records an address that must be patched with label's address.
func (st *SymbolTable) AddFillSite(label string, address int) (sym *Symbol) {
	sym = st.intern(label)
	sym.FillSites = append(sym.FillSites, address)
	return
}

// Sorted returns all symbols ordered by label.
func (st *SymbolTable) Sorted() []*Symbol {
	return slices.SortedFunc(maps.Values(st.Symbols), func(a, b *Symbol) int {
		return strings.Compare(a.Label, b.Label)
	})
}

// Defined returns the defined symbols ordered by address, then label.
func (st *SymbolTable) Defined() (syms []*Symbol) {
	for _, sym := range st.Symbols {
		if sym.Defined {
			syms = append(syms, sym)
		}
	}

	slices.SortFunc(syms, func(a, b *Symbol) int {
		return cmp.Or(cmp.Compare(a.Address, b.Address), strings.Compare(a.Label, b.Label))
	})

	return
}

// Marshal writes the symbol table in symbol file form. Labels declared
// external contribute one row per fill site instead of a row of their own.
func (st *SymbolTable) Marshal(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	_, err = fmt.Fprintln(bw, SYMBOL_HEADER)
	if err != nil {
		return
	}

	defined := st.Defined()
	owner := make(map[int]string, len(defined))
	for _, sym := range defined {
		_, err = fmt.Fprintf(bw, "x%04x\t%s\t0\n", sym.Address, sym.Label)
		if err != nil {
			return
		}
		if _, ok := owner[sym.Address]; !ok {
			owner[sym.Address] = sym.Label
		}
	}

	for _, sym := range st.Sorted() {
		if sym.Defined {
			continue
		}
		for _, site := range slices.Sorted(slices.Values(sym.FillSites)) {
			label, ok := owner[site]
			if !ok {
				label = sym.Label
			}
			_, err = fmt.Fprintf(bw, "x%04x\t%s\t1\t%s\n", site, label, sym.Label)
			if err != nil {
				return
			}
		}
	}

	err = bw.Flush()
	return
}

// Unmarshal replaces the table with the rows of a symbol file.
func (st *SymbolTable) Unmarshal(r io.Reader) (err error) {
	scanner := bufio.NewScanner(r)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrRecord{LineNo: lineno, Line: line, Err: err}
		}
	}()

	st.Symbols = make(map[string](*Symbol))

	header := false
	for scanner.Scan() {
		lineno++
		line = strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		words := strings.Fields(line)
		if !header {
			if words[0] != "ADDRESS" {
				err = ErrSymbolHeader
				return
			}
			header = true
			continue
		}

		if len(words) < 3 || len(words) > 4 {
			err = ErrSymbolColumns
			return
		}

		var address uint16
		address, err = parseAddress(words[0])
		if err != nil {
			return
		}

		switch words[2] {
		case "0":
			_, err = st.Define(words[1], int(address))
			if err != nil {
				return
			}
		case "1":
			if len(words) != 4 {
				err = ErrExternalLabel
				return
			}
			sym := st.AddFillSite(words[3], int(address))
			if !sym.Defined {
				sym.External = true
			}
		default:
			err = ErrExternalFlag
			return
		}
	}

	err = scanner.Err()
	return
}
