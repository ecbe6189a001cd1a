package asm

import (
	"github.com/ezrec/lc3asm/isa"
	"github.com/ezrec/lc3asm/object"
)

// fill returns the word of a .FILL operand. External labels fill as zero
// and leave a fill site for the linker.
func (ctx *asmContext) fill(line *Line) (word uint16, err error) {
	op := line.Operands[0]

	switch op.Kind {
	case OPERAND_IMMEDIATE:
		if op.Value < -(1<<(isa.WORD_BITS-1)) || op.Value >= 1<<isa.WORD_BITS {
			err = ErrImmediateRange{Value: op.Text, Bits: isa.WORD_BITS}
			return
		}
		word = uint16(op.Value)
	case OPERAND_LABEL:
		sym, ok := ctx.symbols.Lookup(op.Label)
		if !ok {
			err = object.ErrUndefinedSymbol(op.Label)
			return
		}
		if !sym.Defined {
			ctx.symbols.AddFillSite(op.Label, line.Address)
			if ctx.verbose {
				ctx.log.WithField("pass", ctx.pass).Infof("x%04x fill site of %v", line.Address, op.Label)
			}
			return
		}
		word = uint16(sym.Address)
	default:
		err = ErrMalformedLine(f("'%v' is not a number or label", op.Text))
	}

	return
}

// emit appends the words of one line to the module.
func (ctx *asmContext) emit(line *Line) (err error) {
	switch line.Kind {
	case LINE_INSTRUCTION:
		var word uint16
		word, err = ctx.encode(line)
		if err != nil {
			return
		}
		err = ctx.module.Append(word)
		if err != nil {
			return
		}
		ctx.debug.Set(uint16(line.Address), line.Text)
	case LINE_DIRECTIVE:
		switch line.Directive {
		case isa.DIR_ORIG:
			ctx.module.Origin(uint16(line.Address))
		case isa.DIR_FILL:
			var word uint16
			word, err = ctx.fill(line)
			if err != nil {
				return
			}
			err = ctx.module.Append(word)
		case isa.DIR_BLKW:
			err = ctx.module.Append(make([]uint16, line.Operands[0].Value)...)
		case isa.DIR_STRINGZ:
			text := line.Operands[0].Text
			words := make([]uint16, len(text)+1)
			for n := range len(text) {
				words[n] = uint16(text[n])
			}
			err = ctx.module.Append(words...)
		}
	}

	return
}

// pass2 encodes every line into the module.
func (ctx *asmContext) pass2() (err error) {
	ctx.pass = PASS_2

	err = ctx.forLines(ctx.emit)
	if err != nil {
		return
	}

	ctx.pass = PASS_DONE
	return
}
