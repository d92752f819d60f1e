package archive

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Packer turns a flat directory of regular files into an archive.
type Packer struct {
	opts options
}

// NewPacker returns a Packer configured by opts.
func NewPacker(opts ...Option) *Packer {
	return &Packer{opts: newOptions(opts)}
}

// ScanDirectory is the discovery phase: it reads every regular file directly
// inside dir into memory, in name order. Subdirectories and other non-regular
// files are skipped. Offsets are left at zero.
func (p *Packer) ScanDirectory(dir string) ([]PackerEntry, error) {
	fs := p.opts.fs
	fi, err := fs.Stat(dir)
	if err != nil {
		return nil, configErr(InvalidInputDir, dir, err.Error())
	}
	if !fi.IsDir() {
		return nil, configErr(InvalidInputDir, dir, "not a directory")
	}
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, ioErr(ReadFailed, "read dir", dir, err)
	}

	var entries []PackerEntry
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			p.opts.logger.Debug("skipping", "name", info.Name(), "mode", info.Mode())
			continue
		}
		name := info.Name()
		path := filepath.Join(dir, name)
		if n := len(name); n < 1 || uint32(n) > p.opts.format.MaxNameLen {
			return nil, formatErr(BadNameLength, -1, "%q is %d bytes, limit %d", name, n, p.opts.format.MaxNameLen)
		}
		if err := checkName(name); err != nil {
			return nil, err
		}
		if info.Size() > uint32max {
			return nil, ioErr(FileTooLarge, "scan", path, fmt.Errorf("%d bytes", info.Size()))
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, ioErr(ReadFailed, "read", path, err)
		}
		if int64(len(data)) > uint32max {
			return nil, ioErr(FileTooLarge, "read", path, fmt.Errorf("%d bytes", len(data)))
		}
		entries = append(entries, PackerEntry{Name: name, Size: uint32(len(data)), Data: data})
	}

	if len(entries) == 0 {
		return nil, configErr(EmptyInputDir, dir, "no regular files")
	}
	if uint64(len(entries)) > uint64(p.opts.format.MaxEntries) {
		return nil, formatErr(BadEntryCount, -1, "%d files, limit %d", len(entries), p.opts.format.MaxEntries)
	}
	return entries, nil
}

// MetadataSize is the length of the header plus the entry table for entries.
func MetadataSize(entries []PackerEntry) uint64 {
	size := uint64(headerLen)
	for _, e := range entries {
		size += entryLen(e.Name)
	}
	return size
}

// AssignOffsets is the second phase: with all sizes known, it places each
// payload after the metadata region and its predecessors, in scan order. The
// input is not modified.
func (p *Packer) AssignOffsets(entries []PackerEntry) ([]PackerEntry, error) {
	out := make([]PackerEntry, len(entries))
	pos := MetadataSize(entries)
	for i, e := range entries {
		if pos > uint32max {
			return nil, ioErr(ArchiveTooLarge, "assign offsets", e.Name, fmt.Errorf("offset %d overflows uint32", pos))
		}
		e.Offset = uint32(pos)
		out[i] = e
		pos += uint64(e.Size)
	}
	return out, nil
}

// WriteArchive emits the header, every entry record and then every payload,
// all in the same order. The offsets are trusted as computed by AssignOffsets.
// On failure the output is left truncated.
func (p *Packer) WriteArchive(path string, h Header, entries []PackerEntry) (err error) {
	f, err := p.opts.fs.Create(path)
	if err != nil {
		return ioErr(CannotCreateOutput, "create", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = ioErr(WriteFailed, "close", path, cerr)
		}
	}()

	c := NewCursor(f)
	format := p.opts.format
	if err := format.WriteHeader(c, h); err != nil {
		return err
	}
	for _, e := range entries {
		if err := format.WriteEntry(c, Entry{Name: e.Name, Size: e.Size, Offset: e.Offset}); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := c.WriteBytes(e.Data); err != nil {
			return err
		}
		p.opts.logger.Info("packed", "name", e.Name, "size", e.Size, "offset", e.Offset)
	}
	return nil
}

// Pack scans src, assigns offsets and writes the archive to dst.
func (p *Packer) Pack(src, dst string) ([]PackerEntry, error) {
	scanned, err := p.ScanDirectory(src)
	if err != nil {
		return nil, err
	}
	entries, err := p.AssignOffsets(scanned)
	if err != nil {
		return nil, err
	}
	h := p.opts.format.NewHeader(len(entries))
	p.opts.logger.Info("archive", "path", dst, "magic", fmt.Sprintf("%#08x", h.Magic), "version", h.Version, "files", h.FileCount)
	if err := p.WriteArchive(dst, h, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Pack packs the regular files of src into the archive dst.
func Pack(src, dst string, opts ...Option) ([]PackerEntry, error) {
	return NewPacker(opts...).Pack(src, dst)
}
