package archive

// ReadHeader reads magic, version and fileCount in that order. The magic is
// checked before anything else is consumed; the count is checked against
// MaxEntries before any entry is read.
func (f Format) ReadHeader(c *Cursor) (Header, error) {
	magic, err := c.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	if magic != f.Magic {
		return Header{}, formatErr(BadMagic, 0, "got %#08x, want %#08x", magic, f.Magic)
	}
	version, err := c.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	count, err := c.ReadUint32()
	if err != nil {
		return Header{}, err
	}
	if count < 1 || count > f.MaxEntries {
		return Header{}, formatErr(BadEntryCount, 8, "%d not in [1, %d]", count, f.MaxEntries)
	}
	return Header{Magic: magic, Version: version, FileCount: count}, nil
}

// WriteHeader emits h in the on-disk field order. Headers are built by the
// packer, so nothing is validated here.
func (f Format) WriteHeader(c *Cursor, h Header) error {
	var buf [headerLen]byte
	b := writeBuf(buf[:])
	b.uint32(h.Magic)
	b.uint32(h.Version)
	b.uint32(h.FileCount)
	return c.WriteBytes(buf[:])
}

// NewHeader synthesizes the header for count entries.
func (f Format) NewHeader(count int) Header {
	return Header{Magic: f.Magic, Version: f.Version, FileCount: uint32(count)}
}
