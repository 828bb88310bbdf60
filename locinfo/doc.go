/*
Package locinfo encodes the per node relationship record of the index.

An Info is either ReverseEdges (the locations that reference a node) or
BidirectionalEdges (those plus the locations the node references). The
locations themselves are opaque; a LocationEncoder maps each one to an
integer and back.

Record layout

	byte 0     header
	             bit 0    1 = BidirectionalEdges, 0 = ReverseEdges
	             bits 1-3 sources: narrow, empty, singleton
	             bits 4-6 destinations (bidirectional only)
	             bit 7    always 0
	then       sources, then destinations

A collection is written according to its header bits:

	empty      nothing
	singleton  the element
	otherwise  a count then the elements

Narrow collections write every element as a big endian uint16, wide ones
as a big endian uint32. A collection is narrow when every element fits in
16 bits, so one large element widens the whole collection. Counts below
0xffff are a big endian uint16; larger counts are the uint16 0xffff
followed by a big endian uint32.

Records carry no length or terminator. DecodePrefix reports how many
bytes a record used.
*/
package locinfo
