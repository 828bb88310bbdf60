package locinfo

import (
	"encoding/binary"
	"math"
)

import (
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/errors"
)

// InfoCoder turns relationship records into bytes and back.
type InfoCoder[L any] interface {
	Encode(info *Info[L]) ([]byte, error)
	Decode(record []byte) (*Info[L], error)
}

// Coder is the InfoCoder for the bit packed record layout.
type Coder[L any] struct {
	locations LocationEncoder[L]
}

func NewCoder[L any](locations LocationEncoder[L]) *Coder[L] {
	return &Coder[L]{locations: locations}
}

func (self *Coder[L]) Encode(info *Info[L]) ([]byte, error) {
	return Encode(info, self.locations)
}

func (self *Coder[L]) Decode(record []byte) (*Info[L], error) {
	return Decode(record, self.locations)
}

func (self *Coder[L]) DecodePrefix(record []byte) (*Info[L], int, error) {
	return DecodePrefix(record, self.locations)
}

func encodeIDs[L any](locs []L, enc LocationEncoder[L]) ([]uint32, error) {
	out := make([]uint32, len(locs))
	for i, loc := range locs {
		id, err := enc.Encode(loc)
		if err != nil {
			return nil, err
		}
		if id < 0 || int64(id) > math.MaxUint32 {
			return nil, errors.Errorf("location %v encoded to %d: %w", loc, id, errors.ErrUnrepresentable)
		}
		out[i] = uint32(id)
	}
	return out, nil
}

type collection struct {
	shape shape
	ids   []uint32
}

func collections[L any](info *Info[L], enc LocationEncoder[L]) (consts.Flag, []collection, error) {
	var header consts.Flag
	lists := [][]L{info.Sources}
	shifts := []uint{consts.SOURCE_SHIFT}
	switch info.Kind {
	case ReverseEdges:
	case BidirectionalEdges:
		header |= consts.BIDIRECTIONAL
		lists = append(lists, info.Destinations)
		shifts = append(shifts, consts.DESTINATION_SHIFT)
	default:
		return 0, nil, errors.Errorf("cannot encode %v", info.Kind)
	}
	cs := make([]collection, len(lists))
	for i, list := range lists {
		ids, err := encodeIDs(list, enc)
		if err != nil {
			return 0, nil, err
		}
		cs[i] = collection{shape: shapeOf(ids), ids: ids}
		header |= cs[i].shape.flags(shifts[i])
	}
	return header, cs, nil
}

// EncodedLen is the size of the record Encode would produce.
func EncodedLen[L any](info *Info[L], enc LocationEncoder[L]) (int, error) {
	_, cs, err := collections(info, enc)
	if err != nil {
		return 0, err
	}
	n := 1
	for _, c := range cs {
		n += c.shape.payloadLen()
	}
	return n, nil
}

func Encode[L any](info *Info[L], enc LocationEncoder[L]) ([]byte, error) {
	header, cs, err := collections(info, enc)
	if err != nil {
		return nil, err
	}
	size := 1
	for _, c := range cs {
		size += c.shape.payloadLen()
	}
	buf := make([]byte, 1, size)
	buf[0] = byte(header)
	for _, c := range cs {
		buf = c.append(buf)
	}
	return buf, nil
}

func (c collection) append(buf []byte) []byte {
	if c.shape.card == zero {
		return buf
	}
	if c.shape.card == many {
		if c.shape.count < countEscape {
			buf = binary.BigEndian.AppendUint16(buf, uint16(c.shape.count))
		} else {
			buf = binary.BigEndian.AppendUint16(buf, countEscape)
			buf = binary.BigEndian.AppendUint32(buf, uint32(c.shape.count))
		}
	}
	for _, id := range c.ids {
		if c.shape.width == narrow {
			buf = binary.BigEndian.AppendUint16(buf, uint16(id))
		} else {
			buf = binary.BigEndian.AppendUint32(buf, id)
		}
	}
	return buf
}

// Decode decodes a record that must be exactly len(record) bytes.
func Decode[L any](record []byte, enc LocationEncoder[L]) (*Info[L], error) {
	info, n, err := DecodePrefix(record, enc)
	if err != nil {
		return nil, err
	}
	if n != len(record) {
		return nil, errors.Errorf("%d trailing bytes after a %d byte record: %w",
			len(record)-n, n, errors.ErrMalformed)
	}
	return info, nil
}

// DecodePrefix decodes the record at the start of b and reports its size.
func DecodePrefix[L any](b []byte, enc LocationEncoder[L]) (*Info[L], int, error) {
	r := &reader{b: b}
	h, err := r.uint8()
	if err != nil {
		return nil, 0, err
	}
	header := consts.Flag(h)
	if header&consts.RESERVED != 0 {
		return nil, 0, errors.Errorf("header %08b has the reserved bit set: %w", header, errors.ErrMalformed)
	}
	info := &Info[L]{Kind: ReverseEdges}
	if header&consts.BIDIRECTIONAL != 0 {
		info.Kind = BidirectionalEdges
	} else if (header>>consts.DESTINATION_SHIFT)&consts.COLLECTION_MASK != 0 {
		return nil, 0, errors.Errorf("reverse edges header %08b has destination bits: %w", header, errors.ErrMalformed)
	}
	info.Sources, err = decodeCollection(r, header, consts.SOURCE_SHIFT, enc)
	if err != nil {
		return nil, 0, err
	}
	if info.Kind == BidirectionalEdges {
		info.Destinations, err = decodeCollection(r, header, consts.DESTINATION_SHIFT, enc)
		if err != nil {
			return nil, 0, err
		}
	}
	return info, r.off, nil
}

func decodeCollection[L any](r *reader, header consts.Flag, shift uint, enc LocationEncoder[L]) ([]L, error) {
	s, err := parseShape(header, shift)
	if err != nil {
		return nil, err
	}
	if s.card == many {
		if s.count, err = r.count(); err != nil {
			return nil, err
		}
	}
	if err := r.need(s.count * int(s.width)); err != nil {
		return nil, err
	}
	locs := make([]L, s.count)
	for i := range locs {
		var id uint32
		if s.width == narrow {
			v, _ := r.uint16()
			id = uint32(v)
		} else {
			id, _ = r.uint32()
		}
		if locs[i], err = enc.Decode(int(id)); err != nil {
			return nil, err
		}
	}
	return locs, nil
}

type reader struct {
	b   []byte
	off int
}

func (r *reader) need(n int) error {
	if n < 0 || len(r.b)-r.off < n {
		return errors.Errorf("record needs %d more bytes at offset %d, has %d: %w",
			n, r.off, len(r.b)-r.off, errors.ErrMalformed)
	}
	return nil
}

func (r *reader) uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.off]
	r.off++
	return v, nil
}

func (r *reader) uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.b[r.off:])
	r.off += 2
	return v, nil
}

func (r *reader) uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) count() (int, error) {
	c, err := r.uint16()
	if err != nil {
		return 0, err
	}
	if c != countEscape {
		return int(c), nil
	}
	big, err := r.uint32()
	if err != nil {
		return 0, err
	}
	return int(big), nil
}
