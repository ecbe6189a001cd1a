package link

import (
	"github.com/ezrec/lc3asm/translate"
)

var f = translate.From

// ErrModule names the input module an error was found in.
type ErrModule struct {
	Name string
	Err  error
}

func (err ErrModule) Error() string {
	return f("module %v: %v", err.Name, err.Err)
}

func (err ErrModule) Unwrap() error {
	return err.Err
}
