/*
Package cursor implements a sequential, bounds-checked reader of fixed-width
fields from a byte slice. It is the substrate used by the image and palette
decoders; it knows nothing about either format.
*/
package cursor

import (
	"encoding/binary"
	"errors"
)

// ErrTruncated is returned by every read that requires more bytes than
// remain. The cursor does not advance on a failed read and the caller is
// expected to abandon the parse.
var ErrTruncated = errors.New("cursor: truncated input")

// Cursor reads big-endian fixed-width fields from a byte slice, advancing an
// offset. The zero value is a cursor over the empty slice.
type Cursor struct {
	buf []byte
	off int
}

// New returns a cursor positioned at the start of b. The cursor does not
// copy b; the caller must not mutate it while decoding.
func New(b []byte) *Cursor {
	return &Cursor{buf: b}
}

// Len returns the number of bytes consumed so far.
func (c *Cursor) Len() int {
	return c.off
}

// Remaining returns the number of bytes left to read.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

func (c *Cursor) take(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, ErrTruncated
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Uint8 reads a single byte.
func (c *Cursor) Uint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a big-endian 16-bit value.
func (c *Cursor) Uint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32 reads a big-endian 32-bit value.
func (c *Cursor) Uint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Bytes reads exactly n bytes. The returned slice aliases the underlying
// buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// String reads a fixed-width field of n bytes and returns it with any
// trailing NUL padding stripped.
func (c *Cursor) String(n int) (string, error) {
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	i := len(b)
	for i > 0 && b[i-1] == 0 {
		i--
	}
	return string(b[:i]), nil
}
