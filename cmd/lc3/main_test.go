package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func writeFile(t *testing.T, path string, lines ...string) {
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestAsmLink(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.asm")
	b := filepath.Join(dir, "b.asm")

	writeFile(t, a, ".ORIG x3000", "TARGET ADD R0,R0,#0", ".END")
	writeFile(t, b, ".ORIG x4000", ".EXTERNAL TARGET", ".FILL TARGET", ".END")

	assert.NoError(run("asm", a))
	assert.NoError(run("asm", "-v", b))

	for _, name := range []string{"a.obj", "a.sym", "a.dbgsym", "b.obj", "b.sym", "b.dbgsym"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(err, name)
	}
	assert.Contains(readFile(t, filepath.Join(dir, "a.debug")), SUCCESS)
	assert.Contains(readFile(t, filepath.Join(dir, "b.debug")), SUCCESS)
	assert.Equal("ORIG: x4000\nx0000\n", readFile(t, filepath.Join(dir, "b.obj")))

	out := filepath.Join(dir, "out")
	assert.NoError(run("link", "-o", out, filepath.Join(dir, "a"), filepath.Join(dir, "b.obj")))
	assert.Equal("ORIG: x3000\nx1020\nORIG: x4000\nx3000\n", readFile(t, out+".obj"))
	assert.Equal("ADDRESS\tLABEL\tEXTERNAL\tEXTLABEL\nx3000\tTARGET\t0\n", readFile(t, out+".sym"))
	assert.Contains(readFile(t, out+".debug"), SUCCESS)

	assert.NoError(run("disasm", out+".obj"))
	assert.Equal(".orig x3000\nadd r0, r0, 0\n.end\n\n.orig x4000\nst r0, 0\n.end\n", readFile(t, out+".dis.asm"))

	assert.NoError(run("lc3tools", out+".obj"))
	_, err := os.Stat(out + ".lc3tools.obj")
	assert.NoError(err)

	assert.NoError(os.Remove(out + ".obj"))
	assert.NoError(run("lc3tools", "-r", out+".lc3tools.obj"))
	assert.Equal("ORIG: x3000\nx1020\nORIG: x4000\nx3000\n", readFile(t, out+".obj"))
	assert.Equal("x3000: TARGET ADD R0,R0,#0\n", readFile(t, out+".dbgsym"))
}

func TestAsmErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "noend.asm")
	writeFile(t, src, ".ORIG x3000", "HALT")

	assert.Error(run("asm", src))
	assert.NotContains(readFile(t, filepath.Join(dir, "noend.debug")), SUCCESS)
	_, err := os.Stat(filepath.Join(dir, "noend.obj"))
	assert.True(os.IsNotExist(err))

	assert.Error(run("asm", filepath.Join(dir, "missing.asm")))
	assert.Error(run("asm"))

	writeFile(t, filepath.Join(dir, "dup.asm"), ".ORIG x3000", "X HALT", ".END")
	assert.NoError(run("asm", filepath.Join(dir, "dup.asm")))
	assert.Error(run("link", "-o", filepath.Join(dir, "dup2"), filepath.Join(dir, "dup"), filepath.Join(dir, "dup")))
	assert.NotContains(readFile(t, filepath.Join(dir, "dup2.debug")), SUCCESS)

	assert.ErrorIs(run("lc3tools", src), ErrNotObject)
}

func TestAsmDefine(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "def.asm")
	writeFile(t, src, ".ORIG x3000", ".FILL $(N * 2)", ".END")

	assert.NoError(run("asm", "-D", "N=21", src))
	assert.Equal("ORIG: x3000\nx002a\n", readFile(t, filepath.Join(dir, "def.obj")))
}
