package fileobj

import (
	"time"
)

type FileObject interface {
	Name() string
	SetName(name string)
	Length() (int64, error)
	// SetLength truncates or extends the file. The cursor is clamped to
	// the new length.
	SetLength(length int64) error
	Seek(pos int64) error
	Position() int64
	// ReadFully fills buf from the cursor.
	ReadFully(buf []byte) error
	Write(buf []byte) error
	Sync() error
	Close() error
	LastModified() time.Time
}
