package fmap

import (
	"log/slog"
	"time"
)

import (
	"github.com/timtadh/idxstore/consts"
)

type Options struct {
	Preload        bool          // advise the kernel to load a new mapping
	MaxMapSize     int64         // largest mappable file, default consts.MAX_MAP_SIZE
	ReleaseTimeout time.Duration // bound on Reclaim, default consts.RELEASE_TIMEOUT
	Release        ReleaseStrategy
	Logger         *slog.Logger
}

// OrDefault returns default options if o is nil, otherwise fills in the
// zero fields of o.
func (o *Options) OrDefault() *Options {
	if o == nil {
		o = &Options{}
	}
	if o.MaxMapSize <= 0 {
		o.MaxMapSize = consts.MAX_MAP_SIZE
	}
	if o.ReleaseTimeout <= 0 {
		o.ReleaseTimeout = consts.RELEASE_TIMEOUT
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Release == nil {
		o.Release = DefaultRelease(o.ReleaseTimeout, o.Logger)
	}
	return o
}
