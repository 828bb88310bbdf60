// Package access enumerates the ways a file object may be opened.
package access

import (
	"github.com/timtadh/idxstore/errors"
)

type Mode uint8

const (
	Read Mode = iota
	ReadWrite
	ReadWriteSync
	ReadWriteDataSync
)

var tokens = [...]string{
	Read:              "r",
	ReadWrite:         "rw",
	ReadWriteSync:     "rws",
	ReadWriteDataSync: "rwd",
}

// Parse maps an open mode token back to its Mode.
func Parse(token string) (Mode, error) {
	for m, t := range tokens {
		if t == token {
			return Mode(m), nil
		}
	}
	return 0, errors.Errorf("unknown access mode %q", token)
}

func (m Mode) Token() string {
	if int(m) >= len(tokens) {
		panic(errors.Errorf("invalid access mode %d", m))
	}
	return tokens[m]
}

func (m Mode) String() string {
	return m.Token()
}

// IsSync is true for the modes that ask for synchronous durability of
// either the content and metadata (rws) or the content alone (rwd).
func (m Mode) IsSync() bool {
	return len(m.Token()) == 3
}

func (m Mode) Writable() bool {
	return m != Read
}

// Flags are the os.OpenFile flags for the mode.
func (m Mode) Flags() int {
	switch m {
	case Read:
		return readFlags
	case ReadWrite:
		return writeFlags
	case ReadWriteSync:
		return writeFlags | syncFlag
	case ReadWriteDataSync:
		return writeFlags | dataSyncFlag
	}
	panic(errors.Errorf("invalid access mode %d", m))
}
