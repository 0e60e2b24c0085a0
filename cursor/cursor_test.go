package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReads(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 'a', 'b', 0x00, 0x00})

	u8, err := c.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := c.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	u32, err := c.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04050607), u32)

	b, err := c.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x08, 0x09}, b)

	s, err := c.String(4)
	require.NoError(t, err)
	assert.Equal(t, "ab", s)

	assert.Equal(t, 13, c.Len())
	assert.Equal(t, 0, c.Remaining())
}

func TestTruncated(t *testing.T) {
	tests := []struct {
		name string
		read func(*Cursor) error
		need int
	}{
		{"uint8", func(c *Cursor) error { _, err := c.Uint8(); return err }, 1},
		{"uint16", func(c *Cursor) error { _, err := c.Uint16(); return err }, 2},
		{"uint32", func(c *Cursor) error { _, err := c.Uint32(); return err }, 4},
		{"bytes", func(c *Cursor) error { _, err := c.Bytes(8); return err }, 8},
		{"string", func(c *Cursor) error { _, err := c.String(8); return err }, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.need; n++ {
				c := New(make([]byte, n))
				assert.ErrorIs(t, tt.read(c), ErrTruncated)
				// A failed read must not advance the cursor.
				assert.Equal(t, 0, c.Len())
			}
		})
	}
}

func TestZeroValue(t *testing.T) {
	var c Cursor
	assert.Equal(t, 0, c.Remaining())
	_, err := c.Uint8()
	assert.ErrorIs(t, err, ErrTruncated)
}
