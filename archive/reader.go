package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Reader parses an archive and extracts its entries. It owns the one open
// handle on the archive for its lifetime.
type Reader struct {
	f    afero.File
	c    *Cursor
	path string
	opts options

	parsed      bool
	header      Header
	entries     []Entry
	fileSize    int64
	metadataEnd int64
}

// Open opens the archive at path for reading.
func Open(path string, opts ...Option) (*Reader, error) {
	o := newOptions(opts)
	f, err := o.fs.Open(path)
	if err != nil {
		return nil, ioErr(CannotOpen, "open", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ioErr(CannotOpen, "stat", path, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, ioErr(CannotOpen, "open", path, fmt.Errorf("not a regular file"))
	}
	return &Reader{f: f, c: NewCursor(f), path: path, opts: o}, nil
}

// Close releases the archive handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// ReadAll parses the header and the entry table and validates every entry
// against the file bounds and the metadata region. Nothing is returned unless
// the whole table is valid. The result is cached.
func (r *Reader) ReadAll() (Header, []Entry, error) {
	if r.parsed {
		return r.header, r.entries, nil
	}
	if err := r.c.Seek(0); err != nil {
		return Header{}, nil, err
	}
	size, err := r.c.FileSize()
	if err != nil {
		return Header{}, nil, err
	}
	h, err := r.opts.format.ReadHeader(r.c)
	if err != nil {
		return Header{}, nil, err
	}
	r.opts.logger.Info("archive", "path", r.path, "magic", fmt.Sprintf("%#08x", h.Magic), "version", h.Version, "files", h.FileCount)

	entries, err := r.opts.format.ReadTable(r.c, h.FileCount, size)
	if err != nil {
		return Header{}, nil, err
	}
	metadataEnd, err := r.c.Tell()
	if err != nil {
		return Header{}, nil, err
	}
	for _, e := range entries {
		r.opts.logger.Debug("entry", "name", e.Name, "size", e.Size, "offset", e.Offset)
	}
	if err := validateEntries(entries, metadataEnd, size); err != nil {
		return Header{}, nil, err
	}

	r.parsed = true
	r.header = h
	r.entries = entries
	r.fileSize = size
	r.metadataEnd = metadataEnd
	return h, entries, nil
}

// Header returns the parsed header. It is the zero Header until ReadAll has
// succeeded.
func (r *Reader) Header() Header {
	return r.header
}

// Entries returns the validated entry table, or nil before ReadAll.
func (r *Reader) Entries() []Entry {
	return r.entries
}

// MetadataEnd is the position right after the last entry record. It is zero
// until ReadAll has succeeded.
func (r *Reader) MetadataEnd() int64 {
	return r.metadataEnd
}

// validateEntries checks every entry before any is extracted. Range checks are
// ordered so that no unsigned subtraction can wrap.
func validateEntries(entries []Entry, metadataEnd, fileSize int64) error {
	end := uint64(metadataEnd)
	size := uint64(fileSize)
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if uint64(e.Offset) < end {
			return formatErr(OffsetInMetadata, int64(e.Offset), "entry %d %q starts before metadata end %d", i, e.Name, metadataEnd)
		}
		if uint64(e.Offset) > size || uint64(e.Size) > size || uint64(e.Offset) > size-uint64(e.Size) {
			return formatErr(EntryOutOfRange, int64(e.Offset), "entry %d %q of %d bytes exceeds %d byte file", i, e.Name, e.Size, fileSize)
		}
		if err := checkName(e.Name); err != nil {
			return err
		}
		if _, ok := seen[e.Name]; ok {
			return formatErr(DuplicateName, -1, "entry %d %q", i, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// checkName rejects names that could resolve outside the destination
// directory when joined to it.
func checkName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return formatErr(UnsafeName, -1, "%q", name)
	}
	return nil
}

// Extract writes e's payload to a new file named e.Name inside dir.
func (r *Reader) Extract(e Entry, dir string) error {
	if err := checkName(e.Name); err != nil {
		return err
	}
	if err := r.c.Seek(int64(e.Offset)); err != nil {
		return err
	}
	data, err := r.c.ReadBytes(int(e.Size))
	if err != nil {
		return err
	}

	dst := filepath.Join(dir, e.Name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !r.opts.overwrite {
		flags |= os.O_EXCL
	}
	out, err := r.opts.fs.OpenFile(dst, flags, 0644)
	if err != nil {
		return ioErr(CannotCreateOutput, "create", dst, err)
	}
	n, err := out.Write(data)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n != len(data) {
		err = fmt.Errorf("wrote %d of %d bytes", n, len(data))
	}
	if err != nil {
		return ioErr(WriteFailed, "write", dst, err)
	}
	r.opts.logger.Info("extracted", "name", e.Name, "size", e.Size, "dest", dst)
	return nil
}

// ExtractAll validates the whole table and then extracts every entry, in
// table order, into dir. dir is created if missing. A failure stops the run;
// files already written are left in place.
func (r *Reader) ExtractAll(dir string) ([]Entry, error) {
	_, entries, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if err := r.opts.fs.MkdirAll(dir, 0755); err != nil {
		return nil, ioErr(CannotCreateOutput, "mkdir", dir, err)
	}
	for _, e := range entries {
		if err := r.Extract(e, dir); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Extract opens the archive at path and extracts all of it into dir.
func Extract(path, dir string, opts ...Option) ([]Entry, error) {
	r, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ExtractAll(dir)
}
