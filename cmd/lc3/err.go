package main

import (
	"errors"

	"github.com/ezrec/lc3asm/translate"
)

var f = translate.From

var (
	ErrNotObject = errors.New(f("file name does not end in .obj"))
)
