package asm

import (
	"strings"
	"unicode"

	"github.com/ezrec/lc3asm/isa"
)

// LineKind is what a parsed line holds besides its label.
type LineKind int

//go:generate go tool stringer -linecomment -type=LineKind
const (
	LINE_LABEL       = LineKind(0) // label
	LINE_DIRECTIVE   = LineKind(1) // directive
	LINE_INSTRUCTION = LineKind(2) // instruction
)

// Line is one non-blank source line, tokenized once and shared by both
// passes.
type Line struct {
	LineNo    int
	Text      string // Source text, trimmed.
	Address   int    // Location counter at the start of the line; set in pass 1.
	Label     string
	Kind      LineKind
	Directive isa.Directive // LINE_DIRECTIVE
	Mnemonic  isa.Mnemonic  // LINE_INSTRUCTION
	Cond      isa.Cond      // MN_BR
	Operands  []Operand
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// splitLine separates the code of a line from its comment, and carves out
// a quoted string literal. The string is returned verbatim.
func splitLine(text string) (head string, str string, hasString bool, err error) {
	head = text
	for n := 0; n < len(text); n++ {
		switch text[n] {
		case ';':
			head = text[:n]
			return
		case '"':
			end := strings.IndexByte(text[n+1:], '"')
			if end < 0 {
				err = ErrMalformedLine(f("unterminated string"))
				return
			}
			head = text[:n]
			str = text[n+1 : n+1+end]
			hasString = true
			rest := strings.TrimSpace(text[n+2+end:])
			if len(rest) > 0 && rest[0] != ';' {
				err = ErrMalformedLine(f("text after string"))
			}
			return
		}
	}
	return
}

func isKeyword(token string) bool {
	if _, ok := isa.ParseDirective(token); ok {
		return true
	}
	_, _, ok := isa.ParseMnemonic(token)
	return ok
}

// parseLine tokenizes a source line. Blank and comment only lines return a
// nil line.
func parseLine(lineno int, text string, predefine map[string]int) (line *Line, err error) {
	head, str, hasString, err := splitLine(text)
	if err != nil {
		return
	}

	head, err = expandExprs(head, predefine, lineno)
	if err != nil {
		return
	}

	tokens := strings.FieldsFunc(strings.ToUpper(head), isSeparator)
	if len(tokens) == 0 {
		if hasString {
			err = ErrMalformedLine(f("string without directive"))
		}
		return
	}

	line = &Line{LineNo: lineno, Text: strings.TrimSpace(text)}

	if !isKeyword(tokens[0]) {
		label := tokens[0]
		tokens = tokens[1:]
		if len(tokens) > 0 && !isKeyword(tokens[0]) && !isLabelToken(tokens[0]) {
			// ADDD R1,R2,R3 is a misspelled instruction, not a label.
			err = ErrUnknownMnemonic(label)
			return
		}
		if !isLabelToken(label) {
			err = ErrMalformedLine(f("'%v' is not a label", label))
			return
		}
		line.Label = label
	}

	if len(tokens) == 0 {
		if hasString {
			err = ErrMalformedLine(f("string without directive"))
			return
		}
		line.Kind = LINE_LABEL
		return
	}

	if dir, ok := isa.ParseDirective(tokens[0]); ok {
		line.Kind = LINE_DIRECTIVE
		line.Directive = dir
	} else if mn, cond, ok := isa.ParseMnemonic(tokens[0]); ok {
		line.Kind = LINE_INSTRUCTION
		line.Mnemonic = mn
		line.Cond = cond
	} else {
		err = ErrUnknownMnemonic(tokens[0])
		return
	}

	for _, token := range tokens[1:] {
		var op Operand
		op, err = classify(token)
		if err != nil {
			return
		}
		line.Operands = append(line.Operands, op)
	}

	if hasString {
		line.Operands = append(line.Operands, Operand{Kind: OPERAND_STRING, Text: str})
	}

	return
}
