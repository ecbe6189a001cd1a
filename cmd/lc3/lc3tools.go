package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/lc3asm/lc3tools"
	"github.com/ezrec/lc3asm/object"
)

// EXT_CONVERTED names the result of converting an LC3Tools file whose name
// does not end in .lc3tools.obj.
const EXT_CONVERTED = ".converted.obj"

// toLc3tools converts base.obj, with base.dbgsym if present.
func toLc3tools(dir, base string) (path string, err error) {
	mod, err := readModule(filepath.Join(dir, base+object.EXT_OBJECT))
	if err != nil {
		return
	}

	debug := &object.DebugMap{}
	inf, err := os.Open(filepath.Join(dir, base+object.EXT_DEBUG_SYMBOL))
	if err == nil {
		err = debug.Unmarshal(inf)
		inf.Close()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}

	path = filepath.Join(dir, base+lc3tools.EXT_LC3TOOLS)
	ouf, err := object.DirFS(dir).Create(base + lc3tools.EXT_LC3TOOLS)
	if err != nil {
		return
	}

	err = lc3tools.Encode(ouf, mod, debug)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()
	return
}

// fromLc3tools converts an LC3Tools object file back to text form.
func fromLc3tools(path string) (outPath string, err error) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	var base, ext string
	if b, ok := strings.CutSuffix(name, lc3tools.EXT_LC3TOOLS); ok {
		base, ext = b, object.EXT_OBJECT
	} else {
		base, ext = strings.TrimSuffix(name, object.EXT_OBJECT), EXT_CONVERTED
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	mod, debug, err := lc3tools.Decode(inf)
	if err != nil {
		return
	}

	fsys := object.DirFS(dir)
	outPath = filepath.Join(dir, base+ext)

	ouf, err := fsys.Create(base + ext)
	if err != nil {
		return
	}
	err = mod.Marshal(ouf)
	if err != nil {
		ouf.Close()
		return
	}
	err = ouf.Close()
	if err != nil || len(debug.Entries) == 0 {
		return
	}

	ouf, err = fsys.Create(base + object.EXT_DEBUG_SYMBOL)
	if err != nil {
		return
	}
	err = debug.Marshal(ouf)
	if err != nil {
		ouf.Close()
		return
	}
	err = ouf.Close()
	return
}

func newLc3toolsCmd() *cobra.Command {
	var reverse bool

	cmd := &cobra.Command{
		Use:   "lc3tools [-r] FILE.obj",
		Short: "Convert FILE.obj to or from the LC3Tools object format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if !strings.HasSuffix(args[0], object.EXT_OBJECT) {
				err = ErrNotObject
				return
			}

			var path string
			if reverse {
				path, err = fromLc3tools(args[0])
			} else {
				dir, base := splitPath(args[0], object.EXT_OBJECT)
				path, err = toLc3tools(dir, base)
			}
			if err != nil {
				return
			}

			cmd.Printf("Wrote %v\n", path)
			return
		},
	}

	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Convert from LC3Tools to text object form")

	return cmd
}
