package fmap

import (
	"log/slog"
	"runtime"
	"time"
)

import (
	"github.com/edsrzf/mmap-go"
)

import (
	"github.com/timtadh/idxstore/errors"
)

// Mapping owns one native mapping. Once handed to a ReleaseStrategy it
// must not be touched again.
type Mapping struct {
	data mmap.MMap
}

func newMapping(data mmap.MMap) *Mapping {
	return &Mapping{data: data}
}

func (self *Mapping) Bytes() []byte {
	return self.data
}

func (self *Mapping) Len() int {
	return len(self.data)
}

func (self *Mapping) Flush() error {
	if self == nil || self.data == nil {
		return nil
	}
	return self.data.Flush()
}

type ReleaseStrategy interface {
	Release(m *Mapping) error
}

// Eager unmaps immediately.
type Eager struct{}

func (Eager) Release(m *Mapping) error {
	if m.data == nil {
		return nil
	}
	data := m.data
	if err := data.Unmap(); err != nil {
		return errors.Errorf("unmap of %d bytes failed: %w", len(m.data), err)
	}
	m.data = nil
	return nil
}

// Reclaim drops the mapping and lets a finalizer unmap it once the
// collector proves nothing refers to it. It polls for that, yielding
// between polls, for at most Timeout and panics after.
type Reclaim struct {
	Timeout time.Duration
}

func (self Reclaim) Release(m *Mapping) error {
	if m.data == nil {
		return nil
	}
	size := len(m.data)
	reclaimed := make(chan error, 1)
	runtime.SetFinalizer(m, func(m *Mapping) {
		data := m.data
		err := data.Unmap()
		if err == nil {
			m.data = nil
		}
		reclaimed <- err
	})
	m = nil
	deadline := time.Now().Add(self.Timeout)
	for {
		select {
		case err := <-reclaimed:
			if err != nil {
				return errors.Errorf("unmap of %d reclaimed bytes failed: %w", size, err)
			}
			return nil
		default:
		}
		if time.Now().After(deadline) {
			panic(errors.Errorf("gave up after %v: %w", self.Timeout, errors.ErrReleaseTimeout))
		}
		runtime.GC()
		runtime.Gosched()
	}
}

// Fallback tries First and, if it fails, Then.
type Fallback struct {
	First  ReleaseStrategy
	Then   ReleaseStrategy
	Logger *slog.Logger
}

func DefaultRelease(timeout time.Duration, logger *slog.Logger) ReleaseStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		First:  Eager{},
		Then:   Reclaim{Timeout: timeout},
		Logger: logger,
	}
}

func (self *Fallback) Release(m *Mapping) error {
	err := self.First.Release(m)
	if err == nil {
		return nil
	}
	self.Logger.Warn("eager mapping release failed, waiting for reclamation", "error", errors.Message(err))
	return self.Then.Release(m)
}
