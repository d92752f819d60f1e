package archive

import (
	"encoding/binary"
	"io"

	"github.com/spf13/afero"
)

// Cursor reads and writes little-endian primitives at a tracked position of a
// single open file. Every failure is returned as an *IOError; no partial value
// is ever handed back.
type Cursor struct {
	f    afero.File
	name string
}

// NewCursor wraps f. The position is whatever f's current offset is.
func NewCursor(f afero.File) *Cursor {
	return &Cursor{f: f, name: f.Name()}
}

// ReadUint32 reads exactly four bytes as a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(c.f, buf[:]); err != nil {
		return 0, ioErr(ReadFailed, "read uint32", c.name, err)
	}
	b := readBuf(buf[:])
	return b.uint32(), nil
}

// ReadBytes reads exactly count bytes into a new buffer.
func (c *Cursor) ReadBytes(count int) ([]byte, error) {
	buf := make([]byte, count)
	if _, err := io.ReadFull(c.f, buf); err != nil {
		return nil, ioErr(ReadFailed, "read bytes", c.name, err)
	}
	return buf, nil
}

// ReadString is ReadBytes passed through as text. No encoding checks.
func (c *Cursor) ReadString(length int) (string, error) {
	b, err := c.ReadBytes(length)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteUint32 writes v as four little-endian bytes.
func (c *Cursor) WriteUint32(v uint32) error {
	var buf [4]byte
	b := writeBuf(buf[:])
	b.uint32(v)
	return c.WriteBytes(buf[:])
}

// WriteBytes writes all of p. A short write is an error.
func (c *Cursor) WriteBytes(p []byte) error {
	n, err := c.f.Write(p)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return ioErr(WriteFailed, "write", c.name, err)
	}
	return nil
}

// Seek moves to an absolute offset from the start of the file.
func (c *Cursor) Seek(offset int64) error {
	pos, err := c.f.Seek(offset, io.SeekStart)
	if err == nil && pos != offset {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return ioErr(SeekFailed, "seek", c.name, err)
	}
	return nil
}

// Tell returns the current absolute position.
func (c *Cursor) Tell() (int64, error) {
	pos, err := c.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioErr(TellFailed, "tell", c.name, err)
	}
	return pos, nil
}

// FileSize returns the total length of the backing file, independent of the
// current position.
func (c *Cursor) FileSize() (int64, error) {
	fi, err := c.f.Stat()
	if err != nil {
		return 0, ioErr(ReadFailed, "stat", c.name, err)
	}
	return fi.Size(), nil
}

type readBuf []byte

func (b *readBuf) uint32() uint32 {
	v := binary.LittleEndian.Uint32(*b)
	*b = (*b)[4:]
	return v
}

type writeBuf []byte

func (b *writeBuf) uint32(v uint32) {
	binary.LittleEndian.PutUint32(*b, v)
	*b = (*b)[4:]
}

func (b *writeBuf) bytes(p []byte) {
	n := copy(*b, p)
	*b = (*b)[n:]
}
