//go:build !linux && !darwin

package access

import "os"

// Without O_DSYNC data sync falls back to a full sync.
const (
	readFlags    = os.O_RDONLY
	writeFlags   = os.O_RDWR | os.O_CREATE
	syncFlag     = os.O_SYNC
	dataSyncFlag = os.O_SYNC
)
