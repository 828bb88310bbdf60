package fileobj

import (
	"math"
	"time"
)

import (
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/errors"
)

const (
	blockShift = 16
	blockMask  = consts.BLOCKSIZE - 1

	// maxLength keeps the block count rounding from overflowing.
	maxLength = math.MaxInt64 - blockMask
)

func init() {
	if 1<<blockShift != consts.BLOCKSIZE {
		panic("blockShift does not match consts.BLOCKSIZE")
	}
}

type Memory struct {
	name     string
	length   int64
	pos      int64
	blocks   [][]byte
	modified time.Time
}

func NewMemory(name string) *Memory {
	return &Memory{
		name:     name,
		modified: time.Now(),
	}
}

func (self *Memory) Name() string {
	return self.name
}

func (self *Memory) SetName(name string) {
	self.name = name
}

func (self *Memory) Length() (int64, error) {
	return self.length, nil
}

func (self *Memory) Position() int64 {
	return self.pos
}

func (self *Memory) LastModified() time.Time {
	return self.modified
}

func (self *Memory) touch() {
	self.modified = time.Now()
}

func (self *Memory) Seek(pos int64) error {
	if pos < 0 {
		return errors.Errorf("seek to negative offset %d in %v", pos, self.name)
	}
	self.pos = pos
	return nil
}

// resize sets the logical length and makes the block table cover it.
// Blocks past the end are dropped; new blocks are zeroed.
func (self *Memory) resize(length int64) {
	self.length = length
	count := int((length + blockMask) >> blockShift)
	if count == len(self.blocks) {
		return
	}
	blocks := make([][]byte, count)
	copy(blocks, self.blocks)
	for i := len(self.blocks); i < count; i++ {
		blocks[i] = make([]byte, consts.BLOCKSIZE)
	}
	self.blocks = blocks
}

func (self *Memory) SetLength(length int64) error {
	if length < 0 {
		return errors.Errorf("negative length %d for %v", length, self.name)
	}
	if length > maxLength {
		return errors.Errorf("%v cannot grow to %d bytes: %w", self.name, length, errors.ErrUnsupportedSize)
	}
	self.touch()
	if length >= self.length {
		self.resize(length)
		return nil
	}
	if self.pos > length {
		self.pos = length
	}
	self.resize(length)
	if off := int(length & blockMask); off != 0 {
		tail := self.blocks[length>>blockShift][off:]
		for i := range tail {
			tail[i] = 0
		}
	}
	return nil
}

func (self *Memory) ReadFully(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if self.pos > self.length-int64(len(buf)) {
		return errors.Errorf("read of %d bytes at %d past length %d of %v: %w",
			len(buf), self.pos, self.length, self.name, errors.ErrEndOfData)
	}
	self.transfer(buf, false)
	return nil
}

func (self *Memory) Write(buf []byte) error {
	if len(buf) == 0 {
		self.touch()
		return nil
	}
	if self.pos > maxLength-int64(len(buf)) {
		return errors.Errorf("write of %d bytes at %d in %v: %w", len(buf), self.pos, self.name, errors.ErrUnsupportedSize)
	}
	self.touch()
	if end := self.pos + int64(len(buf)); end > self.length {
		self.resize(end)
	}
	self.transfer(buf, true)
	return nil
}

// transfer copies between buf and the blocks starting at the cursor,
// crossing block boundaries, and advances the cursor.
func (self *Memory) transfer(buf []byte, write bool) {
	for len(buf) > 0 {
		block := self.blocks[self.pos>>blockShift]
		off := int(self.pos & blockMask)
		var n int
		if write {
			n = copy(block[off:], buf)
		} else {
			n = copy(buf, block[off:])
		}
		buf = buf[n:]
		self.pos += int64(n)
	}
}

func (self *Memory) Sync() error {
	return nil
}

func (self *Memory) Close() error {
	self.pos = 0
	return nil
}
