package file

import (
	"io"
	"math"
	"os"
	"time"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/errors"
)

type File struct {
	name     string
	path     string
	mode     access.Mode
	opened   bool
	file     *os.File
	length   int64
	pos      int64
	cache    *lru // nil when caching is off
	modified time.Time
}

// Open opens path in the given mode with a cache of cachePages pages.
func Open(path string, mode access.Mode, cachePages int) (*File, error) {
	f, err := os.OpenFile(path, mode.Flags(), 0666)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	self := &File{
		name:     path,
		path:     path,
		mode:     mode,
		opened:   true,
		file:     f,
		length:   fi.Size(),
		modified: time.Now(),
	}
	if cachePages > 0 {
		self.cache = newLRU(cachePages, self.pageout)
	}
	return self, nil
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

// pageout writes the part of page p that lies inside the file.
func (self *File) pageout(p int64, page []byte) error {
	start := p * consts.PAGESIZE
	if start >= self.length {
		return nil
	}
	n := self.length - start
	if n > consts.PAGESIZE {
		n = consts.PAGESIZE
	}
	_, err := self.file.WriteAt(page[:n], start)
	return err
}

func (self *File) page(p int64) ([]byte, error) {
	if page, has := self.cache.Read(p); has {
		return page, nil
	}
	page := make([]byte, consts.PAGESIZE)
	if _, err := self.file.ReadAt(page, p*consts.PAGESIZE); err != nil && err != io.EOF {
		return nil, err
	}
	if err := self.cache.Update(p, page, false); err != nil {
		return nil, err
	}
	return page, nil
}

// transfer moves buf through the page cache at the cursor.
func (self *File) transfer(buf []byte, write bool) error {
	for len(buf) > 0 {
		p := self.pos / consts.PAGESIZE
		off := int(self.pos % consts.PAGESIZE)
		page, err := self.page(p)
		if err != nil {
			return err
		}
		var n int
		if write {
			n = copy(page[off:], buf)
			if err := self.cache.Update(p, page, true); err != nil {
				return err
			}
		} else {
			n = copy(buf, page[off:])
		}
		buf = buf[n:]
		self.pos += int64(n)
	}
	return nil
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

func (self *File) LastModified() time.Time {
	return self.modified
}

func (self *File) Length() (int64, error) {
	if err := self.check(); err != nil {
		return 0, err
	}
	return self.length, nil
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

func (self *File) ReadFully(buf []byte) error {
	if err := self.check(); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	if self.pos > self.length-int64(len(buf)) {
		return errors.Errorf("read of %d bytes at %d past length %d of %v: %w",
			len(buf), self.pos, self.length, self.name, errors.ErrEndOfData)
	}
	if self.cache == nil {
		if _, err := self.file.ReadAt(buf, self.pos); err != nil {
			return err
		}
		self.pos += int64(len(buf))
		return nil
	}
	return self.transfer(buf, false)
}

func (self *File) Write(buf []byte) error {
	if err := self.checkWritable(); err != nil {
		return err
	}
	self.modified = time.Now()
	if len(buf) == 0 {
		return nil
	}
	if self.pos > math.MaxInt64-int64(len(buf)) {
		return errors.Errorf("write of %d bytes at %d in %v: %w", len(buf), self.pos, self.name, errors.ErrUnsupportedSize)
	}
	end := self.pos + int64(len(buf))
	if self.cache == nil {
		if _, err := self.file.WriteAt(buf, self.pos); err != nil {
			return err
		}
		self.pos = end
	} else {
		if end > self.length {
			self.length = end
		}
		if err := self.transfer(buf, true); err != nil {
			return err
		}
	}
	if end > self.length {
		self.length = end
	}
	return nil
}

func (self *File) SetLength(length int64) error {
	if err := self.checkWritable(); err != nil {
		return err
	}
	if length < 0 {
		return errors.Errorf("negative length %d for %v", length, self.name)
	}
	self.modified = time.Now()
	if self.cache != nil {
		if err := self.cache.Persist(); err != nil {
			return err
		}
		self.cache.Clear()
	}
	if err := self.file.Truncate(length); err != nil {
		return err
	}
	self.length = length
	if self.pos > length {
		self.pos = length
	}
	return nil
}

func (self *File) Sync() error {
	if err := self.check(); err != nil {
		return err
	}
	if self.cache != nil {
		if err := self.cache.Persist(); err != nil {
			return err
		}
	}
	return self.file.Sync()
}

func (self *File) Close() error {
	if err := self.check(); err != nil {
		return err
	}
	if self.cache != nil {
		if err := self.cache.Persist(); err != nil {
			return err
		}
		self.cache.Clear()
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
