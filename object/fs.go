package object

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File name extensions of a bundle.
const (
	EXT_OBJECT       = ".obj"
	EXT_SYMBOL       = ".sym"
	EXT_DEBUG_SYMBOL = ".dbgsym"
)

// FILE_MODE is the permission of files created by DirFS.
const FILE_MODE fs.FileMode = 0o644

// CreateFS defines a file system interface that supports creating files.
type CreateFS interface {
	// Create creates a new file for writing. The file is only visible under
	// its name once Close succeeds.
	Create(name string) (file io.WriteCloser, err error)
}

// DirFS is a CreateFS rooted at a host directory. Files are written to a
// temporary sibling and renamed into place on Close.
type DirFS string

var _ CreateFS = DirFS("")

type renameFile struct {
	*os.File
	path string
}

func (rf *renameFile) Close() (err error) {
	err = rf.File.Close()
	if err == nil {
		err = os.Rename(rf.File.Name(), rf.path)
	}
	if err != nil {
		os.Remove(rf.File.Name())
	}
	return
}

// Create creates name, relative to the directory.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	path := filepath.Join(string(dir), filepath.FromSlash(name))
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return
	}

	err = tmp.Chmod(FILE_MODE)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return
	}

	file = &renameFile{File: tmp, path: path}
	return
}

// Bundle is the output of an assembly or link: the object module, its
// symbol table, and its debug map.
type Bundle struct {
	Module  *Module
	Symbols *SymbolTable
	Debug   *DebugMap
}

type marshaler interface {
	Marshal(w io.Writer) error
}

// Save writes base.obj, base.sym and base.dbgsym. Every file is rendered in
// memory first, so a marshal failure writes nothing.
func Save(fsys CreateFS, base string, bundle *Bundle) (err error) {
	parts := []struct {
		ext  string
		data marshaler
	}{
		{EXT_OBJECT, bundle.Module},
		{EXT_SYMBOL, bundle.Symbols},
		{EXT_DEBUG_SYMBOL, bundle.Debug},
	}

	rendered := make([]bytes.Buffer, len(parts))
	for n, part := range parts {
		err = part.data.Marshal(&rendered[n])
		if err != nil {
			return
		}
	}

	for n, part := range parts {
		var file io.WriteCloser
		file, err = fsys.Create(base + part.ext)
		if err != nil {
			return
		}
		_, err = rendered[n].WriteTo(file)
		if err != nil {
			file.Close()
			return
		}
		err = file.Close()
		if err != nil {
			return
		}
	}

	return
}

type unmarshaler interface {
	Unmarshal(r io.Reader) error
}

func load(fsys fs.FS, name string, data unmarshaler) (err error) {
	file, err := fsys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	err = data.Unmarshal(file)
	return
}

// Load reads base.obj and base.sym, and base.dbgsym if present.
func Load(fsys fs.FS, base string) (bundle *Bundle, err error) {
	bundle = &Bundle{
		Module:  &Module{},
		Symbols: NewSymbolTable(),
		Debug:   &DebugMap{},
	}

	err = load(fsys, base+EXT_OBJECT, bundle.Module)
	if err != nil {
		return
	}

	err = load(fsys, base+EXT_SYMBOL, bundle.Symbols)
	if err != nil {
		return
	}

	err = load(fsys, base+EXT_DEBUG_SYMBOL, bundle.Debug)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}

	return
}
