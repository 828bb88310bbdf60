package fmap

import (
	"os"
	"time"
)

import (
	"github.com/edsrzf/mmap-go"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/errors"
)

type File struct {
	name     string
	path     string
	mode     access.Mode
	opened   bool
	file     *os.File
	region   *Mapping // nil while the file is empty
	pos      int64
	opts     *Options
	modified time.Time
}

// Open opens path in the given mode and maps all of it.
func Open(path string, mode access.Mode, opts *Options) (*File, error) {
	opts = opts.OrDefault()
	f, err := os.OpenFile(path, mode.Flags(), 0666)
	if err != nil {
		return nil, err
	}
	self := &File{
		name:     path,
		path:     path,
		mode:     mode,
		opened:   true,
		file:     f,
		opts:     opts,
		modified: time.Now(),
	}
	if err := self.mapFile(); err != nil {
		f.Close()
		return nil, err
	}
	return self, nil
}

func (self *File) mapFile() error {
	fi, err := self.file.Stat()
	if err != nil {
		return err
	}
	size := fi.Size()
	if size > self.opts.MaxMapSize {
		return errors.Errorf("%v is %d bytes, mappings above %d bytes: %w",
			self.path, size, self.opts.MaxMapSize, errors.ErrUnsupportedSize)
	}
	if size == 0 {
		self.region = nil
		return nil
	}
	prot := mmap.RDWR
	if !self.mode.Writable() {
		prot = mmap.RDONLY
	}
	data, err := mmap.MapRegion(self.file, int(size), prot, 0, 0)
	if err != nil {
		return errors.Errorf("could not map %v (%d bytes): %w", self.path, size, err)
	}
	self.region = newMapping(data)
	if self.opts.Preload {
		if err := preload(data); err != nil {
			self.opts.Logger.Debug("preload failed", "path", self.path, "error", err)
		}
	}
	return nil
}

// unmap flushes and releases the current mapping.
func (self *File) unmap() error {
	if self.region == nil {
		return nil
	}
	if err := self.region.Flush(); err != nil {
		return errors.Errorf("flush of %v failed: %w", self.path, err)
	}
	m := self.region
	self.region = nil
	return self.opts.Release.Release(m)
}

func (self *File) remap(length int64) error {
	pos := self.pos
	if err := self.unmap(); err != nil {
		return err
	}
	if err := self.file.Truncate(length); err != nil {
		return err
	}
	if err := self.mapFile(); err != nil {
		return err
	}
	if pos > length {
		pos = length
	}
	self.pos = pos
	self.opts.Logger.Debug("remapped", "path", self.path, "length", length)
	return nil
}

func (self *File) check() error {
	if !self.opened {
		return errors.Errorf("%v: %w", self.name, errors.ErrClosed)
	}
	return nil
}

func (self *File) checkWritable() error {
	if err := self.check(); err != nil {
		return err
	}
	if !self.mode.Writable() {
		return errors.Errorf("%v opened %q: %w", self.name, self.mode.Token(), errors.ErrReadOnly)
	}
	return nil
}

func (self *File) size() int64 {
	if self.region == nil {
		return 0
	}
	return int64(self.region.Len())
}

func (self *File) Name() string {
	return self.name
}

func (self *File) SetName(name string) {
	self.name = name
}

func (self *File) Path() string {
	return self.path
}

func (self *File) Mode() access.Mode {
	return self.mode
}

func (self *File) LastModified() time.Time {
	return self.modified
}

func (self *File) Length() (int64, error) {
	if err := self.check(); err != nil {
		return 0, err
	}
	return self.size(), nil
}

func (self *File) Position() int64 {
	return self.pos
}

func (self *File) Seek(pos int64) error {
	if err := self.check(); err != nil {
		return err
	}
	if pos < 0 {
		return errors.Errorf("seek to negative offset %d in %v", pos, self.name)
	}
	self.pos = pos
	return nil
}

func (self *File) SetLength(length int64) error {
	if err := self.checkWritable(); err != nil {
		return err
	}
	if length < 0 {
		return errors.Errorf("negative length %d for %v", length, self.name)
	}
	if length > self.opts.MaxMapSize {
		return errors.Errorf("%v cannot grow to %d bytes, mappings above %d bytes: %w",
			self.path, length, self.opts.MaxMapSize, errors.ErrUnsupportedSize)
	}
	self.modified = time.Now()
	return self.remap(length)
}

func (self *File) ReadFully(buf []byte) error {
	if err := self.check(); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	if self.pos > self.size()-int64(len(buf)) {
		return errors.Errorf("read of %d bytes at %d past length %d of %v: %w",
			len(buf), self.pos, self.size(), self.name, errors.ErrEndOfData)
	}
	end := self.pos + int64(len(buf))
	copy(buf, self.region.Bytes()[self.pos:end])
	self.pos = end
	return nil
}

func (self *File) Write(buf []byte) error {
	if err := self.checkWritable(); err != nil {
		return err
	}
	self.modified = time.Now()
	if len(buf) == 0 {
		return nil
	}
	if self.pos > self.opts.MaxMapSize-int64(len(buf)) {
		return errors.Errorf("%v cannot take %d bytes at %d, mappings above %d bytes: %w",
			self.path, len(buf), self.pos, self.opts.MaxMapSize, errors.ErrUnsupportedSize)
	}
	end := self.pos + int64(len(buf))
	if end > self.size() {
		if err := self.SetLength(end); err != nil {
			return err
		}
	}
	copy(self.region.Bytes()[self.pos:end], buf)
	self.pos = end
	if self.mode.IsSync() {
		return self.region.Flush()
	}
	return nil
}

func (self *File) Sync() error {
	if err := self.check(); err != nil {
		return err
	}
	if err := self.region.Flush(); err != nil {
		return err
	}
	return self.file.Sync()
}

func (self *File) Close() error {
	if err := self.check(); err != nil {
		return err
	}
	if err := self.unmap(); err != nil {
		return err
	}
	if err := self.file.Close(); err != nil {
		return err
	}
	self.file = nil
	self.opened = false
	self.pos = 0
	return nil
}

func (self *File) Remove() error {
	if self.opened {
		return errors.Errorf("Expected file to be closed")
	}
	return os.Remove(self.Path())
}
