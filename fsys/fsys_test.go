package fsys

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

import (
	"github.com/timtadh/idxstore/access"
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/file"
	"github.com/timtadh/idxstore/fileobj"
	"github.com/timtadh/idxstore/fmap"
)

func registry(t *testing.T) *Registry {
	r, err := NewRegistry(nil, nil)
	require.NoError(t, err)
	return r
}

func TestRouting(t *testing.T) {
	r := registry(t)
	dir := t.TempDir()
	tests := []struct {
		name  string
		check func(fileobj.FileObject) bool
	}{
		{MemoryPrefix + "pages", func(fo fileobj.FileObject) bool { _, ok := fo.(*fileobj.Memory); return ok }},
		{DiskPrefix + filepath.Join(dir, "plain"), func(fo fileobj.FileObject) bool { _, ok := fo.(*file.File); return ok }},
		{MappedPrefix + filepath.Join(dir, "mapped"), func(fo fileobj.FileObject) bool { _, ok := fo.(*fmap.File); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fo, err := r.Open(tt.name, access.ReadWrite)
			require.NoError(t, err)
			assert.True(t, tt.check(fo), "%T", fo)
			assert.Equal(t, tt.name, fo.Name())
			require.NoError(t, fo.Write([]byte("abc")))
			length, err := fo.Length()
			require.NoError(t, err)
			assert.Equal(t, int64(3), length)
			require.NoError(t, fo.Close())
			require.NoError(t, r.Delete(tt.name))
		})
	}
}

func TestMappedWritesReachDisk(t *testing.T) {
	r := registry(t)
	path := filepath.Join(t.TempDir(), "store")
	fo, err := r.Open(MappedPrefix+path, access.ReadWrite)
	require.NoError(t, err)
	require.NoError(t, fo.Write([]byte("mapped")))
	require.NoError(t, fo.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mapped", string(data))

	require.NoError(t, r.Delete(MappedPrefix+path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, r.Delete(MappedPrefix+path), "deleting a missing store is fine")
}

func TestNoSelector(t *testing.T) {
	r := registry(t)
	_, err := r.Open("/tmp/plain/path", access.Read)
	assert.ErrorIs(t, err, errors.ErrNoSelector)
	assert.ErrorIs(t, r.Delete("zip:archive"), errors.ErrNoSelector)
}

type split struct {
	Memory
}

func (split) Prefix() string { return "memFS:split:" }

func TestRegisterLongestPrefix(t *testing.T) {
	r := registry(t)
	assert.Error(t, r.Register(Memory{}), "duplicate prefix")
	require.NoError(t, r.Register(split{}))
	assert.ElementsMatch(t, []string{MemoryPrefix, DiskPrefix, MappedPrefix, "memFS:split:"}, r.Prefixes())

	s, err := r.Selector("memFS:split:a")
	require.NoError(t, err)
	assert.Equal(t, "memFS:split:", s.Prefix())
	s, err = r.Selector("memFS:a")
	require.NoError(t, err)
	assert.Equal(t, MemoryPrefix, s.Prefix())
}

func TestMemoryOpensAreIndependent(t *testing.T) {
	r := registry(t)
	a, err := r.Open("memFS:x", access.ReadWrite)
	require.NoError(t, err)
	require.NoError(t, a.Write([]byte("abc")))
	b, err := r.Open("memFS:x", access.ReadWrite)
	require.NoError(t, err)
	length, err := b.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idxstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mapped:
  preload: true
  release_timeout: 250ms
disk:
  cache_pages: 8
`), 0644))
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Mapped.Preload)
	assert.Equal(t, 8, cfg.Disk.CachePages)
	assert.Equal(t, int64(DefaultConfig().Mapped.MaxMapSize), cfg.Mapped.MaxMapSize)

	opts := cfg.MappedOptions(nil)
	assert.Equal(t, 250*time.Millisecond, opts.ReleaseTimeout)
	assert.True(t, opts.Preload)
	assert.NotNil(t, opts.Release)
	assert.NotNil(t, opts.Logger)

	_, err = NewRegistry(cfg, nil)
	require.NoError(t, err)
}

func TestBadConfig(t *testing.T) {
	for _, body := range []string{
		"mapped:\n  release_timeout: soon\n",
		"mapped:\n  release_timeout: -1s\n",
		"mapped:\n  max_map_size: -5\n",
		"disk:\n  cache_pages: -1\n",
		"mapped: [",
	} {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := LoadConfig(path)
		assert.Error(t, err, body)
	}
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMappedZeroValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero")
	var s Selector = Mapped{}
	fo, err := s.Open(MappedPrefix+path, access.ReadWrite)
	require.NoError(t, err)
	assert.Equal(t, MappedPrefix+path, fo.Name())
	require.NoError(t, fo.Write([]byte("z")))
	require.NoError(t, fo.Close())
	require.NoError(t, s.Delete(MappedPrefix+path))
}
