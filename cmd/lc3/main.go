// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command lc3 assembles, links, disassembles and converts LC-3 programs.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "lc3",
		Short:        "LC-3 assembler and linker",
		SilenceUsage: true,
	}

	root.AddCommand(
		newAsmCmd(),
		newLinkCmd(),
		newDisasmCmd(),
		newLc3toolsCmd(),
	)

	return root
}

// splitPath returns the directory of path and its base name without ext.
func splitPath(path string, ext string) (dir string, base string) {
	dir = filepath.Dir(path)
	base = strings.TrimSuffix(filepath.Base(path), ext)
	return
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
