package asm

import (
	"maps"
	"regexp"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// evalExpr evaluates a Starlark integer expression.
func evalExpr(expr string, predefine map[string]int, lineno int) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{}
	for key, val := range maps.All(predefine) {
		pred[key] = starlark.MakeInt(val)
	}
	pred["LINENO"] = starlark.MakeInt(lineno)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrExpression(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}

	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrExpression(expr)
		return
	}

	value = int(st_int64)
	return
}

// expandExprs replaces each $(expr) in text with its value as a #N literal.
func expandExprs(text string, predefine map[string]int, lineno int) (expanded string, err error) {
	expanded = exprPattern.ReplaceAllStringFunc(text, func(str string) string {
		value, _err := evalExpr(str[2:len(str)-1], predefine, lineno)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return "#" + strconv.Itoa(value)
	})

	return
}
