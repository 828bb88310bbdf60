package file

import (
	"container/list"
)

import (
	"github.com/timtadh/idxstore/errors"
)

type lru_item struct {
	page  []byte
	p     int64
	dirty bool
}

type lru struct {
	buffer  map[int64]*list.Element
	stack   *list.List
	size    int
	pageout func(int64, []byte) error
}

func newLRU(size int, pageout func(int64, []byte) error) *lru {
	self := new(lru)
	self.buffer = make(map[int64]*list.Element)
	self.stack = list.New()
	self.size = size
	self.pageout = pageout
	return self
}

func (self *lru) Len() int { return self.stack.Len() }

func (self *lru) Read(p int64) ([]byte, bool) {
	if e, has := self.buffer[p]; has {
		self.stack.MoveToFront(e)
		return e.Value.(*lru_item).page, true
	}
	return nil, false
}

// Update caches page p, evicting (and paging out) the least recently
// used pages to stay within size.
func (self *lru) Update(p int64, page []byte, dirty bool) error {
	if e, has := self.buffer[p]; has {
		item := e.Value.(*lru_item)
		item.page = page
		item.dirty = item.dirty || dirty
		self.stack.MoveToFront(e)
		return nil
	}
	for self.stack.Len() >= self.size && self.stack.Len() > 0 {
		if err := self.evict(self.stack.Back()); err != nil {
			return err
		}
	}
	self.buffer[p] = self.stack.PushFront(&lru_item{p: p, page: page, dirty: dirty})
	return nil
}

func (self *lru) evict(e *list.Element) error {
	if e == nil {
		return errors.Errorf("Element unexpectedly nil %v", self.stack.Len())
	}
	item := e.Value.(*lru_item)
	if item.dirty {
		if err := self.pageout(item.p, item.page); err != nil {
			return err
		}
	}
	delete(self.buffer, item.p)
	self.stack.Remove(e)
	return nil
}

// Persist pages out every dirty page and keeps them cached as clean.
func (self *lru) Persist() error {
	for e := self.stack.Back(); e != nil; e = e.Prev() {
		item := e.Value.(*lru_item)
		if !item.dirty {
			continue
		}
		if err := self.pageout(item.p, item.page); err != nil {
			return err
		}
		item.dirty = false
	}
	return nil
}

// Clear forgets every page without paging any out.
func (self *lru) Clear() {
	self.buffer = make(map[int64]*list.Element)
	self.stack.Init()
}
