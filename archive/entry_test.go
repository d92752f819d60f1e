package archive

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntry(t *testing.T) {
	c, size := cursorOver(t, le(5, "a.txt", 3, 33))
	e, err := DefaultFormat().ReadEntry(c, size)
	require.NoError(t, err)
	assert.Equal(t, Entry{Name: "a.txt", Size: 3, Offset: 33}, e)
}

func TestReadEntry_ZeroNameLength(t *testing.T) {
	c, size := cursorOver(t, le(0, 3, 33))
	_, err := DefaultFormat().ReadEntry(c, size)
	require.ErrorIs(t, err, ErrBadNameLength)

	pos, err := c.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(4), pos, "nothing past nameLength is consumed")
}

func TestReadEntry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"name too long", le(256, strings.Repeat("x", 256), 0, 0), ErrBadNameLength},
		{"huge name length", le(0xffffffff), ErrBadNameLength},
		{"name past end of file", le(10, "short"), ErrTruncatedName},
		{"missing size", le(1, "a"), ErrReadFailed},
		{"missing offset", le(1, "a", 7), ErrReadFailed},
		{"missing name length", []byte{1, 0}, ErrReadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, size := cursorOver(t, tt.data)
			_, err := DefaultFormat().ReadEntry(c, size)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadTable(t *testing.T) {
	c, size := cursorOver(t, le(1, "a", 1, 40, 2, "bb", 2, 41))
	entries, err := DefaultFormat().ReadTable(c, 2, size)
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Name: "a", Size: 1, Offset: 40},
		{Name: "bb", Size: 2, Offset: 41},
	}, entries)
}

func TestReadTable_StopsAtFirstBadEntry(t *testing.T) {
	c, size := cursorOver(t, le(1, "a", 1, 40, 0))
	_, err := DefaultFormat().ReadTable(c, 2, size)
	assert.ErrorIs(t, err, ErrBadNameLength)
}

func TestWriteEntry(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, err := fs.Create("/out")
	require.NoError(t, err)

	require.NoError(t, DefaultFormat().WriteEntry(NewCursor(out), Entry{Name: "a.txt", Size: 3, Offset: 33}))
	require.NoError(t, out.Close())

	got, err := afero.ReadFile(fs, "/out")
	require.NoError(t, err)
	assert.Equal(t, le(5, "a.txt", 3, 33), got)
	assert.Len(t, got, int(entryLen("a.txt")))
}
