package consts

import (
	"math"
	"time"
)

type Flag uint8

// BLOCKSIZE is the block size of the in memory file object.
const BLOCKSIZE = 64 * 1024

// PAGESIZE is the page size of the disk file object's cache.
const PAGESIZE = 4096

// MAX_MAP_SIZE is the largest file the mapped file object will map.
const MAX_MAP_SIZE = math.MaxInt32

// RELEASE_TIMEOUT bounds the wait for a dropped mapping to be reclaimed.
const RELEASE_TIMEOUT = 10 * time.Second

// Location info header bits. Bit 0 selects the variant, each collection
// owns three bits starting at its shift.
const (
	BIDIRECTIONAL Flag = 1 << 0
	RESERVED      Flag = 1 << 7
)

const (
	NARROW Flag = 1 << iota
	EMPTY
	SINGLETON
)

const (
	SOURCE_SHIFT      = 1
	DESTINATION_SHIFT = 4
	COLLECTION_MASK   = NARROW | EMPTY | SINGLETON
)
