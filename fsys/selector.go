package fsys

import (
	"os"
	"strings"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/file"
	"github.com/timtadh/idxstore/fileobj"
	"github.com/timtadh/idxstore/fmap"
)

const (
	MemoryPrefix = "memFS:"
	DiskPrefix   = "nio:"
	MappedPrefix = "nioMapped:"
)

// Selector opens the names that start with its prefix. Open and Delete
// receive the whole name, prefix included.
type Selector interface {
	Prefix() string
	Open(name string, mode access.Mode) (fileobj.FileObject, error)
	Delete(name string) error
}

type Memory struct{}

func (Memory) Prefix() string { return MemoryPrefix }

func (Memory) Open(name string, mode access.Mode) (fileobj.FileObject, error) {
	return fileobj.NewMemory(name), nil
}

func (Memory) Delete(name string) error { return nil }

type Disk struct {
	CachePages int
}

func (Disk) Prefix() string { return DiskPrefix }

func (self Disk) Open(name string, mode access.Mode) (fileobj.FileObject, error) {
	f, err := file.Open(strings.TrimPrefix(name, DiskPrefix), mode, self.CachePages)
	if err != nil {
		return nil, err
	}
	f.SetName(name)
	return f, nil
}

func (Disk) Delete(name string) error {
	return remove(strings.TrimPrefix(name, DiskPrefix))
}

// Mapped opens memory mapped file objects.
type Mapped struct {
	Options *fmap.Options
}

func (Mapped) Prefix() string { return MappedPrefix }

func (self Mapped) Open(name string, mode access.Mode) (fileobj.FileObject, error) {
	f, err := fmap.Open(strings.TrimPrefix(name, MappedPrefix), mode, self.Options)
	if err != nil {
		return nil, err
	}
	f.SetName(name)
	return f, nil
}

func (Mapped) Delete(name string) error {
	return remove(strings.TrimPrefix(name, MappedPrefix))
}

func remove(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
