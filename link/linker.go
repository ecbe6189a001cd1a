package link

import (
	"io"
	"iter"
	"maps"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/lc3asm/internal"
	"github.com/ezrec/lc3asm/object"
)

// Input is one assembled module.
type Input struct {
	Name string
	*object.Bundle
}

// Result is a linked image. Its symbol table holds only defined symbols.
type Result struct {
	*object.Bundle
	Relocations []object.Relocation // Ordered by address.
}

// Linker links modules.
type Linker struct {
	Verbose bool               // If set, verbosely logs the linker actions.
	Log     logrus.FieldLogger // Debug sink; nil discards.
}

func (lk *Linker) logger() logrus.FieldLogger {
	if lk.Log != nil {
		return lk.Log
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// merge builds the global symbol table. The first definition of a label is
// authoritative; external fill sites accumulate regardless of order. Every
// label a module declares external or fills must be defined by some module.
func (lk *Linker) merge(inputs []Input) (global *object.SymbolTable, err error) {
	global = object.NewSymbolTable()
	referrer := map[string]string{}

	refer := func(label string, name string) {
		if _, ok := referrer[label]; !ok {
			referrer[label] = name
		}
	}

	for _, input := range inputs {
		for _, sym := range input.Symbols.Sorted() {
			if sym.Defined {
				if prior, ok := global.Lookup(sym.Label); ok && prior.Defined {
					err = ErrModule{Name: input.Name, Err: object.ErrMultiplyDefined(sym.Label)}
					return
				}
				_, err = global.Define(sym.Label, sym.Address)
				if err != nil {
					err = ErrModule{Name: input.Name, Err: err}
					return
				}
			} else if sym.External {
				refer(sym.Label, input.Name)
			}
			for _, site := range sym.FillSites {
				global.AddFillSite(sym.Label, site)
				refer(sym.Label, input.Name)
			}
		}
	}

	for _, label := range slices.Sorted(maps.Keys(referrer)) {
		if sym, ok := global.Lookup(label); !ok || !sym.Defined {
			err = ErrModule{Name: referrer[label], Err: object.ErrUndefinedSymbol(label)}
			return
		}
	}

	return
}

// relocate maps every fill site to the address of its label.
func relocate(global *object.SymbolTable) (relocs map[uint16]uint16) {
	relocs = map[uint16]uint16{}
	for _, sym := range global.Sorted() {
		for _, site := range sym.FillSites {
			relocs[uint16(site)] = uint16(sym.Address)
		}
	}
	return
}

// Link merges the inputs, in order, into one image.
func (lk *Linker) Link(inputs ...Input) (result *Result, err error) {
	log := lk.logger()

	global, err := lk.merge(inputs)
	if err != nil {
		return
	}

	relocs := relocate(global)

	merged := &object.Module{}
	var debugs []iter.Seq2[uint16, string]
	for _, input := range inputs {
		if lk.Verbose {
			log.WithField("module", input.Name).Infof("%v words", input.Module.Len())
		}
		for _, block := range input.Module.Blocks {
			merged.Origin(block.Origin)
			for n, word := range block.Words {
				addr := block.Origin + uint16(n)
				if value, ok := relocs[addr]; ok {
					word = value
				}
				err = merged.Append(word)
				if err != nil {
					return
				}
			}
		}
		if input.Debug != nil {
			debugs = append(debugs, input.Debug.All())
		}
	}

	// Debug maps are concatenated without an address collision check.
	debug := &object.DebugMap{}
	for addr, line := range internal.Concat2(debugs...) {
		debug.Append(addr, line)
	}

	symbols := object.NewSymbolTable()
	for _, sym := range global.Defined() {
		_, err = symbols.Define(sym.Label, sym.Address)
		if err != nil {
			return
		}
	}

	result = &Result{
		Bundle: &object.Bundle{
			Module:  merged,
			Symbols: symbols,
			Debug:   debug,
		},
	}

	for _, addr := range slices.Sorted(maps.Keys(relocs)) {
		result.Relocations = append(result.Relocations, object.Relocation{Address: addr, Value: relocs[addr]})
	}

	if lk.Verbose {
		log.Info(spew.Sdump(result.Relocations))
	}

	return
}
