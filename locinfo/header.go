package locinfo

import (
	"math"
)

import (
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/errors"
)

type width uint8

const (
	narrow width = 2
	wide   width = 4
)

type cardinality uint8

const (
	zero cardinality = iota
	one
	many
)

// countEscape in the uint16 count slot announces a uint32 count.
const countEscape = math.MaxUint16

// shape is everything the header says about one collection.
type shape struct {
	width width
	card  cardinality
	count int
}

func shapeOf(ids []uint32) shape {
	s := shape{width: narrow, count: len(ids)}
	for _, id := range ids {
		if id > math.MaxUint16 {
			s.width = wide
			break
		}
	}
	switch len(ids) {
	case 0:
		s.card = zero
	case 1:
		s.card = one
	default:
		s.card = many
	}
	return s
}

func (s shape) flags(shift uint) consts.Flag {
	var f consts.Flag
	if s.width == narrow {
		f |= consts.NARROW
	}
	switch s.card {
	case zero:
		f |= consts.EMPTY
	case one:
		f |= consts.SINGLETON
	}
	return f << shift
}

// parseShape reads the shape bits of one collection. The count of a many
// collection is not known until its count field is read.
func parseShape(header consts.Flag, shift uint) (shape, error) {
	f := (header >> shift) & consts.COLLECTION_MASK
	s := shape{width: wide, card: many}
	if f&consts.NARROW != 0 {
		s.width = narrow
	}
	switch {
	case f&consts.EMPTY != 0 && f&consts.SINGLETON != 0:
		return s, errors.Errorf("header %08b: collection at bit %d is both empty and a singleton: %w",
			header, shift, errors.ErrMalformed)
	case f&consts.EMPTY != 0:
		s.card = zero
	case f&consts.SINGLETON != 0:
		s.card = one
		s.count = 1
	}
	return s, nil
}

// countLen is the size of the count field, zero when there is none.
func (s shape) countLen() int {
	if s.card != many {
		return 0
	}
	if s.count < countEscape {
		return 2
	}
	return 6
}

func (s shape) payloadLen() int {
	return s.countLen() + s.count*int(s.width)
}
