/*
Package reclog appends encoded relationship records to a file object.

Every entry is

	uint32 length | uint32 crc32(payload) | payload

big endian. An entry is addressed by the offset of its length field.
Opening a log scans it to find the tail; a torn final entry (short or
failing its checksum) is cut off.
*/
package reclog

import (
	"encoding/binary"
	"hash/crc32"
)

import (
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/fileobj"
	"github.com/timtadh/idxstore/locinfo"
)

const entryHeader = 8

type Log[L any] struct {
	fo    fileobj.FileObject
	coder *locinfo.Coder[L]
	tail  int64
	count int
}

// Iterator yields entries until it returns a nil Iterator.
type Iterator[L any] func() (int64, *locinfo.Info[L], error, Iterator[L])

func Open[L any](fo fileobj.FileObject, coder *locinfo.Coder[L]) (*Log[L], error) {
	self := &Log[L]{fo: fo, coder: coder}
	length, err := fo.Length()
	if err != nil {
		return nil, err
	}
	for self.tail < length {
		next, err := self.scan(self.tail, length)
		if errors.Is(err, errors.ErrEndOfData) || errors.Is(err, errors.ErrMalformed) {
			break
		} else if err != nil {
			return nil, err
		}
		self.tail = next
		self.count++
	}
	if self.tail < length {
		err := fo.SetLength(self.tail)
		if err != nil && !errors.Is(err, errors.ErrReadOnly) {
			return nil, err
		}
	}
	return self, nil
}

// scan validates the entry at off and returns the offset after it.
func (self *Log[L]) scan(off, length int64) (int64, error) {
	payload, err := self.payload(off, length)
	if err != nil {
		return 0, err
	}
	return off + entryHeader + int64(len(payload)), nil
}

func (self *Log[L]) payload(off, length int64) ([]byte, error) {
	if off < 0 || off+entryHeader > length {
		return nil, errors.Errorf("no entry at %d in %v: %w", off, self.fo.Name(), errors.ErrEndOfData)
	}
	if err := self.fo.Seek(off); err != nil {
		return nil, err
	}
	var hdr [entryHeader]byte
	if err := self.fo.ReadFully(hdr[:]); err != nil {
		return nil, err
	}
	size := int64(binary.BigEndian.Uint32(hdr[0:4]))
	sum := binary.BigEndian.Uint32(hdr[4:8])
	if off+entryHeader+size > length {
		return nil, errors.Errorf("entry at %d claims %d bytes past the end of %v: %w",
			off, size, self.fo.Name(), errors.ErrMalformed)
	}
	payload := make([]byte, size)
	if err := self.fo.ReadFully(payload); err != nil {
		return nil, err
	}
	if crc32.ChecksumIEEE(payload) != sum {
		return nil, errors.Errorf("bad checksum for entry at %d in %v: %w", off, self.fo.Name(), errors.ErrMalformed)
	}
	return payload, nil
}

func (self *Log[L]) Count() int {
	return self.count
}

// Size is the number of bytes of valid entries.
func (self *Log[L]) Size() int64 {
	return self.tail
}

func (self *Log[L]) Append(info *locinfo.Info[L]) (int64, error) {
	payload, err := self.coder.Encode(info)
	if err != nil {
		return 0, err
	}
	entry := make([]byte, entryHeader, entryHeader+len(payload))
	binary.BigEndian.PutUint32(entry[0:4], uint32(len(payload)))
	binary.BigEndian.PutUint32(entry[4:8], crc32.ChecksumIEEE(payload))
	entry = append(entry, payload...)
	off := self.tail
	if err := self.fo.Seek(off); err != nil {
		return 0, err
	}
	if err := self.fo.Write(entry); err != nil {
		return 0, err
	}
	self.tail += int64(len(entry))
	self.count++
	return off, nil
}

func (self *Log[L]) Get(off int64) (*locinfo.Info[L], error) {
	payload, err := self.payload(off, self.tail)
	if err != nil {
		return nil, err
	}
	return self.coder.Decode(payload)
}

func (self *Log[L]) Iterate() Iterator[L] {
	var next Iterator[L]
	off := int64(0)
	next = func() (int64, *locinfo.Info[L], error, Iterator[L]) {
		if off >= self.tail {
			return 0, nil, nil, nil
		}
		payload, err := self.payload(off, self.tail)
		if err != nil {
			return 0, nil, err, nil
		}
		info, err := self.coder.Decode(payload)
		if err != nil {
			return 0, nil, err, nil
		}
		at := off
		off += entryHeader + int64(len(payload))
		return at, info, nil, next
	}
	return next
}

// Do calls do for every entry in order.
func (self *Log[L]) Do(do func(off int64, info *locinfo.Info[L]) error) error {
	var off int64
	var info *locinfo.Info[L]
	var err error
	it := self.Iterate()
	for off, info, err, it = it(); it != nil; off, info, err, it = it() {
		if e := do(off, info); e != nil {
			return e
		}
	}
	return err
}

func (self *Log[L]) Sync() error {
	return self.fo.Sync()
}

func (self *Log[L]) Close() error {
	return self.fo.Close()
}
