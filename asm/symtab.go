package asm

import (
	"slices"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/lc3asm/isa"
	"github.com/ezrec/lc3asm/object"
)

// operandCount checks the number of operands of a line.
func operandCount(line *Line, count int) (err error) {
	if len(line.Operands) != count {
		err = ErrMalformedLine(f("%v expects %v operand(s)", line.name(), count))
	}
	return
}

func (line *Line) name() string {
	switch line.Kind {
	case LINE_DIRECTIVE:
		return line.Directive.String()
	case LINE_INSTRUCTION:
		return line.Mnemonic.String()
	}
	return line.Label
}

// wordOperand returns an immediate in 0..0xffff.
func wordOperand(op Operand) (value int, err error) {
	if op.Kind != OPERAND_IMMEDIATE {
		err = ErrMalformedLine(f("'%v' is not a number", op.Text))
		return
	}
	if !isa.FitsUnsigned(op.Value, isa.WORD_BITS) {
		err = ErrImmediateRange{Value: op.Text, Bits: isa.WORD_BITS}
		return
	}
	value = op.Value
	return
}

// size returns the number of words a line emits.
func (line *Line) size() (words int, err error) {
	switch line.Kind {
	case LINE_INSTRUCTION:
		words = 1
	case LINE_DIRECTIVE:
		switch line.Directive {
		case isa.DIR_FILL:
			err = operandCount(line, 1)
			words = 1
		case isa.DIR_BLKW:
			err = operandCount(line, 1)
			if err == nil {
				words, err = wordOperand(line.Operands[0])
			}
		case isa.DIR_STRINGZ:
			err = operandCount(line, 1)
			if err == nil {
				if line.Operands[0].Kind != OPERAND_STRING {
					err = ErrMalformedLine(f(".STRINGZ needs a quoted string"))
					return
				}
				words = len(line.Operands[0].Text) + 1
			}
		}
	}
	return
}

// allocate assigns the address of one line and records its symbols.
func (ctx *asmContext) allocate(line *Line) (err error) {
	if line.Kind == LINE_DIRECTIVE && line.Directive == isa.DIR_ORIG {
		err = operandCount(line, 1)
		if err != nil {
			return
		}
		var origin int
		origin, err = wordOperand(line.Operands[0])
		if err != nil {
			return
		}
		ctx.lc = origin
		ctx.hasOrigin = true
		ctx.sawEnd = false
	}

	line.Address = ctx.lc

	if len(line.Label) > 0 {
		if !ctx.hasOrigin {
			err = ErrMalformedLine(f("label %v before .ORIG", line.Label))
			return
		}
		_, err = ctx.symbols.Define(line.Label, ctx.lc)
		if err != nil {
			return
		}
		if ctx.verbose {
			ctx.log.WithField("pass", ctx.pass).Infof("x%04x %v", ctx.lc, line.Label)
		}
	}

	if line.Kind == LINE_DIRECTIVE {
		switch line.Directive {
		case isa.DIR_END:
			err = operandCount(line, 0)
			ctx.sawEnd = true
		case isa.DIR_EXTERNAL:
			if len(line.Operands) == 0 {
				err = ErrMalformedLine(f(".EXTERNAL needs a label"))
				return
			}
			for _, op := range line.Operands {
				if op.Kind != OPERAND_LABEL {
					err = ErrMalformedLine(f("'%v' is not a label", op.Text))
					return
				}
				_, err = ctx.symbols.Declare(op.Label)
				if err != nil {
					return
				}
			}
		case isa.DIR_FILL:
			err = operandCount(line, 1)
			if err != nil {
				return
			}
			if op := line.Operands[0]; op.Kind == OPERAND_LABEL {
				ctx.fills = append(ctx.fills, fillRef{
					Site:   ctx.lc,
					Target: op.Label,
					Owner:  line.Label,
					Line:   line,
				})
				if len(line.Label) > 0 {
					sym, _ := ctx.symbols.Lookup(line.Label)
					sym.AliasOf = op.Label
				}
			}
		}
		if err != nil {
			return
		}
	}

	words, err := line.size()
	if err != nil {
		return
	}

	if words > 0 && !ctx.hasOrigin {
		err = ErrMalformedLine(f("code before .ORIG"))
		return
	}

	if ctx.lc+words > 1<<isa.WORD_BITS {
		err = ErrMalformedLine(f("code past the end of memory"))
		return
	}

	ctx.lc += words
	return
}

// pass1 assigns addresses to every line and builds the symbol table.
func (ctx *asmContext) pass1() (err error) {
	ctx.pass = PASS_1

	err = ctx.forLines(ctx.allocate)
	if err != nil {
		return
	}

	if !ctx.sawEnd {
		err = ErrMissingEnd
		return
	}

	return
}

// pending returns the symbols still waiting on an alias target, by label.
func (ctx *asmContext) pending() (syms []*object.Symbol) {
	for _, sym := range ctx.symbols.Sorted() {
		if len(sym.AliasOf) > 0 {
			syms = append(syms, sym)
		}
	}
	return
}

// aliasCycle follows alias edges from sym until a label repeats.
func (ctx *asmContext) aliasCycle(sym *object.Symbol) (chain ErrCyclicAlias) {
	visited := map[string]bool{}
	for sym != nil && !visited[sym.Label] {
		visited[sym.Label] = true
		chain = append(chain, sym.Label)
		sym, _ = ctx.symbols.Lookup(sym.AliasOf)
	}

	if sym != nil {
		start := slices.Index(chain, sym.Label)
		chain = append(chain[start:], sym.Label)
	}

	return
}

// resolveAliases clears alias edges whose targets are known, until no edge
// changes. Edges left over form a cycle.
func (ctx *asmContext) resolveAliases() (err error) {
	lineOf := map[string]*Line{}
	for _, ref := range ctx.fills {
		if len(ref.Owner) > 0 {
			lineOf[ref.Owner] = ref.Line
		}
	}

	for {
		pending := ctx.pending()
		if len(pending) == 0 {
			break
		}

		progress := false
		for _, sym := range pending {
			target, ok := ctx.symbols.Lookup(sym.AliasOf)
			if !ok {
				line := lineOf[sym.Label]
				err = ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: object.ErrUndefinedSymbol(sym.AliasOf)}
				return
			}
			if len(target.AliasOf) > 0 {
				continue
			}
			if ctx.verbose {
				ctx.log.WithField("external", target.External && !target.Defined).Infof("alias %v -> %v", sym.Label, target.Label)
			}
			sym.AliasOf = ""
			progress = true
		}

		if !progress {
			chain := ctx.aliasCycle(pending[0])
			line := lineOf[pending[0].Label]
			err = ErrSyntax{LineNo: line.LineNo, Line: line.Text, Err: chain}
			return
		}
	}

	if ctx.verbose {
		ctx.log.Info(spew.Sdump(ctx.symbols.Defined()))
	}

	return
}
