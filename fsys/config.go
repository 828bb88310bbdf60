package fsys

import (
	"log/slog"
	"os"
	"time"
)

import (
	"github.com/goccy/go-yaml"
)

import (
	"github.com/timtadh/idxstore/consts"
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/fmap"
)

type Config struct {
	Mapped MappedConfig `yaml:"mapped"`
	Disk   DiskConfig   `yaml:"disk"`
}

type MappedConfig struct {
	Preload        bool   `yaml:"preload"`
	ReleaseTimeout string `yaml:"release_timeout"` // a time.Duration, "10s"
	MaxMapSize     int64  `yaml:"max_map_size"`
}

type DiskConfig struct {
	CachePages int `yaml:"cache_pages"`
}

func DefaultConfig() *Config {
	return &Config{
		Mapped: MappedConfig{
			ReleaseTimeout: consts.RELEASE_TIMEOUT.String(),
			MaxMapSize:     consts.MAX_MAP_SIZE,
		},
		Disk: DiskConfig{
			CachePages: 64,
		},
	}
}

// LoadConfig reads a YAML config. Missing keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("could not parse %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.releaseTimeout(); err != nil {
		return err
	}
	if c.Mapped.MaxMapSize < 0 || c.Mapped.MaxMapSize > consts.MAX_MAP_SIZE {
		return errors.Errorf("mapped.max_map_size %d is outside [0, %d]", c.Mapped.MaxMapSize, int64(consts.MAX_MAP_SIZE))
	}
	if c.Disk.CachePages < 0 {
		return errors.Errorf("disk.cache_pages %d is negative", c.Disk.CachePages)
	}
	return nil
}

func (c *Config) releaseTimeout() (time.Duration, error) {
	if c.Mapped.ReleaseTimeout == "" {
		return consts.RELEASE_TIMEOUT, nil
	}
	d, err := time.ParseDuration(c.Mapped.ReleaseTimeout)
	if err != nil {
		return 0, errors.Errorf("mapped.release_timeout: %w", err)
	}
	if d <= 0 {
		return 0, errors.Errorf("mapped.release_timeout %v is not positive", d)
	}
	return d, nil
}

// MappedOptions are the fmap options the config describes.
func (c *Config) MappedOptions(logger *slog.Logger) *fmap.Options {
	timeout, err := c.releaseTimeout()
	if err != nil {
		timeout = consts.RELEASE_TIMEOUT
	}
	return (&fmap.Options{
		Preload:        c.Mapped.Preload,
		MaxMapSize:     c.Mapped.MaxMapSize,
		ReleaseTimeout: timeout,
		Logger:         logger,
	}).OrDefault()
}
