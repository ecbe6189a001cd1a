package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ezrec/lc3asm/link"
	"github.com/ezrec/lc3asm/object"
)

func newLinkCmd() *cobra.Command {
	var verbose bool
	var output string

	cmd := &cobra.Command{
		Use:   "link [-v] [-o OUT] NAME...",
		Short: "Link assembled modules into OUT.obj, OUT.sym and OUT.dbgsym",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			outDir, outBase := splitPath(output, object.EXT_OBJECT)

			sink, err := newDebugSink(filepath.Join(outDir, outBase))
			if err != nil {
				return
			}
			defer func() { err = sink.finish(err) }()

			var inputs []link.Input
			for _, name := range args {
				dir, base := splitPath(name, object.EXT_OBJECT)
				var bundle *object.Bundle
				bundle, err = object.Load(os.DirFS(dir), base)
				if err != nil {
					return
				}
				inputs = append(inputs, link.Input{Name: name, Bundle: bundle})
			}

			linker := &link.Linker{Verbose: verbose, Log: sink.log}
			result, err := linker.Link(inputs...)
			if err != nil {
				return
			}

			err = object.Save(object.DirFS(outDir), outBase, result.Bundle)
			return
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
	cmd.Flags().StringVarP(&output, "output", "o", "a", "Output base name")

	return cmd
}
