package locinfo

import (
	"github.com/timtadh/idxstore/errors"
)

// LocationEncoder maps locations to integers and back. The mapping only
// has to be stable across one encode/decode round trip.
type LocationEncoder[L any] interface {
	Encode(loc L) (int, error)
	Decode(id int) (L, error)
}

// Ints is the identity encoder for integer locations.
type Ints struct{}

func (Ints) Encode(loc int) (int, error) { return loc, nil }
func (Ints) Decode(id int) (int, error)  { return id, nil }

// Table interns locations, handing out ids in first seen order. It is not
// safe for concurrent use.
type Table[L comparable] struct {
	ids  map[L]int
	locs []L
}

func NewTable[L comparable]() *Table[L] {
	return &Table[L]{ids: make(map[L]int)}
}

func (self *Table[L]) Encode(loc L) (int, error) {
	if id, has := self.ids[loc]; has {
		return id, nil
	}
	id := len(self.locs)
	self.ids[loc] = id
	self.locs = append(self.locs, loc)
	return id, nil
}

func (self *Table[L]) Decode(id int) (L, error) {
	if id < 0 || id >= len(self.locs) {
		var zero L
		return zero, errors.Errorf("no location with id %d", id)
	}
	return self.locs[id], nil
}

func (self *Table[L]) Len() int {
	return len(self.locs)
}
