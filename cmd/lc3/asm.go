package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ezrec/lc3asm/asm"
	"github.com/ezrec/lc3asm/object"
)

func newAsmCmd() *cobra.Command {
	var verbose bool
	var defines map[string]int

	cmd := &cobra.Command{
		Use:   "asm [-v] [-D NAME=VALUE]... FILE",
		Short: "Assemble FILE into .obj, .sym and .dbgsym files",
		Long: `Asm assembles one LC-3 source file. For FILE.asm it writes FILE.obj,
FILE.sym and FILE.dbgsym, and logs the run to FILE.debug. Constants given
with -D are visible to $(...) expressions in the source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			dir, base := splitPath(args[0], filepath.Ext(args[0]))

			sink, err := newDebugSink(filepath.Join(dir, base))
			if err != nil {
				return
			}
			defer func() { err = sink.finish(err) }()

			inf, err := os.Open(args[0])
			if err != nil {
				return
			}
			defer inf.Close()

			assembler := &asm.Assembler{Verbose: verbose, Log: sink.log}
			for name, value := range defines {
				assembler.Predefine(name, value)
			}

			prog, err := assembler.Parse(inf)
			if err != nil {
				return
			}

			err = object.Save(object.DirFS(dir), base, prog.Bundle())
			return
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	cmd.Flags().StringToIntVarP(&defines, "define", "D", nil, "Predefine an expression constant")

	return cmd
}
