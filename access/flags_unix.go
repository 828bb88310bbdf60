//go:build linux || darwin

package access

import (
	"os"
)

import (
	"golang.org/x/sys/unix"
)

const (
	readFlags    = os.O_RDONLY
	writeFlags   = os.O_RDWR | os.O_CREATE
	syncFlag     = unix.O_SYNC
	dataSyncFlag = unix.O_DSYNC
)
