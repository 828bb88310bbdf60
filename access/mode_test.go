package access

import (
	"os"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		mode     Mode
		token    string
		sync     bool
		writable bool
	}{
		{Read, "r", false, false},
		{ReadWrite, "rw", false, true},
		{ReadWriteSync, "rws", true, true},
		{ReadWriteDataSync, "rwd", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.token, tt.mode.Token())
			assert.Equal(t, tt.sync, tt.mode.IsSync())
			assert.Equal(t, tt.writable, tt.mode.Writable())
			m, err := Parse(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, m)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("w")
	assert.Error(t, err)
}

func TestFlags(t *testing.T) {
	assert.Equal(t, os.O_RDONLY, Read.Flags())
	assert.NotZero(t, ReadWrite.Flags()&os.O_CREATE)
	assert.NotZero(t, ReadWriteSync.Flags()&os.O_SYNC)
	assert.Zero(t, ReadWrite.Flags()&os.O_SYNC)
	assert.NotEqual(t, ReadWrite.Flags(), ReadWriteDataSync.Flags())
}

func TestInvalidModePanics(t *testing.T) {
	assert.Panics(t, func() { Mode(9).Token() })
}
