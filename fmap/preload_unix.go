//go:build linux || darwin

package fmap

import (
	"golang.org/x/sys/unix"
)

func preload(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Madvise(data, unix.MADV_WILLNEED)
}
