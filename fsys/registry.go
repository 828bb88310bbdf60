package fsys

import (
	"log/slog"
	"strings"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/fileobj"
)

type Registry struct {
	selectors []Selector
	logger    *slog.Logger
}

// NewRegistry returns a registry holding the built in selectors set up
// from cfg. cfg and logger may be nil.
func NewRegistry(cfg *Config, logger *slog.Logger) (*Registry, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	self := &Registry{logger: logger}
	builtins := []Selector{
		Memory{},
		Disk{CachePages: cfg.Disk.CachePages},
		Mapped{Options: cfg.MappedOptions(logger)},
	}
	for _, s := range builtins {
		if err := self.Register(s); err != nil {
			return nil, err
		}
	}
	return self, nil
}

func (self *Registry) Register(s Selector) error {
	prefix := s.Prefix()
	if prefix == "" {
		return errors.Errorf("selector %T has an empty prefix", s)
	}
	for _, have := range self.selectors {
		if have.Prefix() == prefix {
			return errors.Errorf("prefix %q is already registered to %T", prefix, have)
		}
	}
	self.selectors = append(self.selectors, s)
	return nil
}

// Selector finds the selector with the longest prefix of name.
func (self *Registry) Selector(name string) (Selector, error) {
	var best Selector
	for _, s := range self.selectors {
		if strings.HasPrefix(name, s.Prefix()) && (best == nil || len(s.Prefix()) > len(best.Prefix())) {
			best = s
		}
	}
	if best == nil {
		return nil, errors.Errorf("%q: %w", name, errors.ErrNoSelector)
	}
	return best, nil
}

func (self *Registry) Prefixes() []string {
	prefixes := make([]string, 0, len(self.selectors))
	for _, s := range self.selectors {
		prefixes = append(prefixes, s.Prefix())
	}
	return prefixes
}

func (self *Registry) Open(name string, mode access.Mode) (fileobj.FileObject, error) {
	s, err := self.Selector(name)
	if err != nil {
		return nil, err
	}
	self.logger.Debug("open", "name", name, "mode", mode.Token(), "selector", s.Prefix())
	return s.Open(name, mode)
}

func (self *Registry) Delete(name string) error {
	s, err := self.Selector(name)
	if err != nil {
		return err
	}
	return s.Delete(name)
}
