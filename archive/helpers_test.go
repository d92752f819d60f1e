package archive

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// le encodes ints as little-endian uint32 and appends strings and byte
// slices verbatim.
func le(parts ...interface{}) []byte {
	var buf bytes.Buffer
	for _, p := range parts {
		switch v := p.(type) {
		case int:
			binary.Write(&buf, binary.LittleEndian, uint32(v))
		case uint32:
			binary.Write(&buf, binary.LittleEndian, v)
		case string:
			buf.WriteString(v)
		case []byte:
			buf.Write(v)
		default:
			panic("le: unsupported part")
		}
	}
	return buf.Bytes()
}

// singleEntry builds the one entry archive used throughout the tests: a.txt,
// three bytes, four bytes of padding between the table (ending at 29) and
// the payload.
func singleEntry(offset int) []byte {
	return le(Signature, 1, 1, 5, "a.txt", 3, offset, []byte{0, 0, 0, 0}, []byte{1, 2, 3})
}

func writeArchive(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, data, 0644))
}

func cursorOver(t *testing.T, data []byte) (*Cursor, int64) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeArchive(t, fs, "/in", data)
	f, err := fs.Open("/in")
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return NewCursor(f), int64(len(data))
}

// shortFs hands out writable files that accept at most limit bytes in total
// and then report short writes without an error.
type shortFs struct {
	afero.Fs
	limit int
}

func (s shortFs) Create(name string) (afero.File, error) {
	f, err := s.Fs.Create(name)
	if err != nil {
		return nil, err
	}
	return &shortFile{File: f, left: s.limit}, nil
}

func (s shortFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := s.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &shortFile{File: f, left: s.limit}, nil
}

type shortFile struct {
	afero.File
	left int
}

func (f *shortFile) Write(p []byte) (int, error) {
	if len(p) > f.left {
		p = p[:f.left]
	}
	n, err := f.File.Write(p)
	f.left -= n
	return n, err
}
