package archive

// ReadEntry reads one entry record. fileSize bounds the name before it is
// consumed, so a hostile nameLength never drives the read itself.
func (f Format) ReadEntry(c *Cursor, fileSize int64) (Entry, error) {
	start, err := c.Tell()
	if err != nil {
		return Entry{}, err
	}
	nameLen, err := c.ReadUint32()
	if err != nil {
		return Entry{}, err
	}
	if nameLen < 1 || nameLen > f.MaxNameLen {
		return Entry{}, formatErr(BadNameLength, start, "%d not in [1, %d]", nameLen, f.MaxNameLen)
	}
	pos := start + 4
	if uint64(pos)+uint64(nameLen) > uint64(fileSize) {
		return Entry{}, formatErr(TruncatedName, pos, "name of %d bytes runs past end of %d byte file", nameLen, fileSize)
	}
	name, err := c.ReadString(int(nameLen))
	if err != nil {
		return Entry{}, err
	}
	size, err := c.ReadUint32()
	if err != nil {
		return Entry{}, err
	}
	offset, err := c.ReadUint32()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Size: size, Offset: offset}, nil
}

// ReadTable reads count entries in sequence. The table has no length prefix;
// its end is where the last record stops.
func (f Format) ReadTable(c *Cursor, count uint32, fileSize int64) ([]Entry, error) {
	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		e, err := f.ReadEntry(c, fileSize)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntry emits nameLength, name, size and offset.
func (f Format) WriteEntry(c *Cursor, e Entry) error {
	buf := make([]byte, entryLen(e.Name))
	b := writeBuf(buf)
	b.uint32(uint32(len(e.Name)))
	b.bytes([]byte(e.Name))
	b.uint32(e.Size)
	b.uint32(e.Offset)
	return c.WriteBytes(buf)
}
