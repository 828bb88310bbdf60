package errors

import (
	"strings"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorfWrapsSentinel(t *testing.T) {
	err := Errorf("read %d bytes at %d: %w", 10, 4, ErrEndOfData)
	assert.True(t, Is(err, ErrEndOfData))
	assert.False(t, Is(err, ErrClosed))

	var e *Error
	require.True(t, As(err, &e))
	assert.Equal(t, "read 10 bytes at 4: end of data", e.Message())
}

func TestErrorfCarriesStack(t *testing.T) {
	err := Errorf("boom")
	assert.True(t, strings.HasPrefix(err.Error(), "boom\n"))
	assert.Contains(t, err.Error(), "TestErrorfCarriesStack")
}

func TestMessageDropsStack(t *testing.T) {
	err := Errorf("unmap of %d bytes failed: %w", 4096, ErrClosed)
	assert.Equal(t, "unmap of 4096 bytes failed: file object is closed", Message(err))
	assert.Equal(t, "end of data", Message(ErrEndOfData))
}
