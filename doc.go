/*
Index Store

The storage layer under a search index: file objects that hold the index
pages and the compact record of how index nodes relate to one another.

A file object is a named, resizable byte sequence with a cursor. There
are three kinds.

1. fileobj.Memory keeps its bytes in 64KiB blocks on the heap. Nothing
is ever written anywhere. Good for tests and for indexes thrown away at
exit.

2. file.File reads and writes an os.File through a small page cache.

3. fmap.File memory maps the whole file and re-maps it whenever its
length changes. Dropping an old mapping is handled by an fmap
ReleaseStrategy. The default unmaps eagerly and, if that fails, waits
(bounded) for the runtime to reclaim the region. Waiting past the bound
is fatal.

fsys.Registry picks the kind from the name: "memFS:", "nio:" or
"nioMapped:". The prefixes are a convention; more selectors can be
registered.

Relationship records

A locinfo.Info is either ReverseEdges (the nodes pointing at a node) or
BidirectionalEdges (those plus the nodes it points at). Locations are
mapped to integers by a LocationEncoder and packed behind a one byte
header:

	bit 0      bidirectional
	bits 1..3  sources: narrow, empty, singleton
	bits 4..6  destinations: narrow, empty, singleton
	bit 7      always 0

A narrow collection stores 16 bit ids, otherwise 32 bit, big endian. An
empty collection stores nothing, a singleton stores its one id, anything
else is prefixed by its count. reclog keeps records in a checksummed
append only log on top of any file object.

The idxtool command encodes, decodes, appends and dumps records from the
command line.
*/
package idxstore
