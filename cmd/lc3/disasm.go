package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ezrec/lc3asm/disasm"
	"github.com/ezrec/lc3asm/object"
)

// readModule reads an object file.
func readModule(path string) (mod *object.Module, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	mod = &object.Module{}
	err = mod.Unmarshal(inf)
	return
}

func newDisasmCmd() *cobra.Command {
	var hex bool

	cmd := &cobra.Command{
		Use:   "disasm [-x] FILE.obj",
		Short: "Disassemble FILE.obj into FILE.dis.asm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dir, base := splitPath(args[0], object.EXT_OBJECT)

			mod, err := readModule(args[0])
			if err != nil {
				return
			}

			ouf, err := object.DirFS(dir).Create(base + disasm.EXT_LISTING)
			if err != nil {
				return
			}

			err = disasm.Write(ouf, mod, hex)
			if err != nil {
				ouf.Close()
				return
			}

			err = ouf.Close()
			if err != nil {
				return
			}

			cmd.Printf("Wrote disassembly to %v\n", filepath.Join(dir, base+disasm.EXT_LISTING))
			return
		},
	}

	cmd.Flags().BoolVarP(&hex, "hex", "x", false, "Write .fill words in hex")

	return cmd
}
