package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

import (
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

import (
	"github.com/timtadh/idxstore/errors"
	"github.com/timtadh/idxstore/fsys"
)

func run(t *testing.T, cmd command, args ...string) (string, error) {
	color.NoColor = true
	reg, err := fsys.NewRegistry(nil, nil)
	require.NoError(t, err)
	var out bytes.Buffer
	err = cmd(&out, reg, args)
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, Encode, "--bidi", "--src=17")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3b0011", lines[0])
	assert.Equal(t, "header 0x3b bidirectional", lines[1])
	assert.Contains(t, lines[2], "narrow singleton")
	assert.Contains(t, lines[3], "narrow empty")
}

func TestEncodeWide(t *testing.T) {
	out, err := run(t, Encode, "--src=1,70000")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "000002000000010001117"), out)
	assert.Contains(t, out, "wide")
}

func TestEncodeBadArgs(t *testing.T) {
	_, err := run(t, Encode, "--src=1,x")
	assert.IsType(t, &usageError{}, err)
	_, err = run(t, Encode, "--dst=1")
	assert.IsType(t, &usageError{}, err)
	_, err = run(t, Encode, "--src=-1")
	assert.ErrorIs(t, err, errors.ErrUnrepresentable)
}

func TestDecode(t *testing.T) {
	out, err := run(t, Decode, "3b0011")
	require.NoError(t, err)
	assert.Equal(t, "BidirectionalEdges{sources: [17], destinations: []}\n", out)

	_, err = run(t, Decode, "zz")
	assert.IsType(t, &usageError{}, err)
	_, err = run(t, Decode, "80")
	assert.ErrorIs(t, err, errors.ErrMalformed)
}

func TestAppendDump(t *testing.T) {
	store := fsys.MappedPrefix + filepath.Join(t.TempDir(), "edges.log")
	out, err := run(t, Append, "--src=1,2,3", store)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	out, err = run(t, Append, "--bidi", "--src=4", "--dst=5,6", store)
	require.NoError(t, err)
	assert.NotEqual(t, "0\n", out)

	out, err = run(t, Dump, store)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0\tReverseEdges{sources: [1 2 3]}", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "\tBidirectionalEdges{sources: [4], destinations: [5 6]}"), lines[1])
}

func TestDumpMissingStore(t *testing.T) {
	_, err := run(t, Dump, fsys.DiskPrefix+filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	_, err = run(t, Dump, "ftp:somewhere")
	assert.ErrorIs(t, err, errors.ErrNoSelector)
}

func TestSetColor(t *testing.T) {
	defer func() { color.NoColor = true }()
	require.NoError(t, setColor("always", &bytes.Buffer{}))
	assert.False(t, color.NoColor)
	require.NoError(t, setColor("auto", &bytes.Buffer{}))
	assert.True(t, color.NoColor, "a buffer is not a terminal")
	require.NoError(t, setColor("always", &bytes.Buffer{}))
	require.NoError(t, setColor("never", &bytes.Buffer{}))
	assert.True(t, color.NoColor)
	assert.IsType(t, &usageError{}, setColor("sometimes", &bytes.Buffer{}))

	color.NoColor = false
	out, err := run(t, Encode, "--src=1")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[", "run turns colors off")
}
