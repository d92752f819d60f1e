package archive

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Read(t *testing.T) {
	c, size := cursorOver(t, le(0x464F5247, "hello", 7))

	v, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x464F5247), v)

	s, err := c.ReadString(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	pos, err := c.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(9), pos)

	n, err := c.FileSize()
	require.NoError(t, err)
	assert.Equal(t, size, n)

	require.NoError(t, c.Seek(0))
	b, err := c.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x47, 0x52, 0x4F, 0x46}, b)
}

func TestCursor_ShortRead(t *testing.T) {
	c, _ := cursorOver(t, []byte{1, 2, 3})

	_, err := c.ReadUint32()
	assert.ErrorIs(t, err, ErrReadFailed)

	require.NoError(t, c.Seek(1))
	_, err = c.ReadBytes(3)
	assert.ErrorIs(t, err, ErrReadFailed)
}

func TestCursor_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	f, err := fs.Create("/out")
	require.NoError(t, err)
	c := NewCursor(f)

	require.NoError(t, c.WriteUint32(1))
	require.NoError(t, c.WriteBytes([]byte("xy")))
	pos, err := c.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)
	require.NoError(t, f.Close())

	got, err := afero.ReadFile(fs, "/out")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 'x', 'y'}, got)
}

func TestCursor_ClosedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeArchive(t, fs, "/in", []byte{1, 2, 3, 4})
	f, err := fs.Open("/in")
	require.NoError(t, err)
	c := NewCursor(f)
	require.NoError(t, f.Close())

	assert.ErrorIs(t, c.Seek(0), ErrSeekFailed)
	_, err = c.Tell()
	assert.ErrorIs(t, err, ErrTellFailed)
}
