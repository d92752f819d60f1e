package archive

const (
	// Signature is the little-endian magic at offset 0 ("GROF" on disk).
	Signature uint32 = 0x464F5247

	// FormatVersion is written by the packer. Readers report it but do not
	// branch on it.
	FormatVersion uint32 = 1

	headerLen     = 12 // magic, version, fileCount (3x uint32)
	entryFixedLen = 12 // nameLength, size, offset (3x uint32) + name

	// Policy ceiling on fileCount. It bounds the entry table allocation for a
	// hostile count field; the on-disk field could hold far more.
	defaultMaxEntries = 10000

	// nameLength is a uint32 on disk but names are limited to 255 bytes.
	defaultMaxNameLen = 255

	uint32max = (1 << 32) - 1
)

// Format binds the constants the codecs validate against. Tests and callers
// may substitute a variant with another magic or stricter limits.
type Format struct {
	Magic      uint32
	Version    uint32
	MaxEntries uint32
	MaxNameLen uint32
}

// DefaultFormat returns the format written and accepted by forge.
func DefaultFormat() Format {
	return Format{
		Magic:      Signature,
		Version:    FormatVersion,
		MaxEntries: defaultMaxEntries,
		MaxNameLen: defaultMaxNameLen,
	}
}

// Header is the fixed 12 byte archive header.
type Header struct {
	Magic     uint32
	Version   uint32
	FileCount uint32
}

// Entry is one record of the entry table. Offset is absolute within the
// archive.
type Entry struct {
	Name   string
	Size   uint32
	Offset uint32
}

// PackerEntry is the write-side record. Offset is zero until AssignOffsets
// has run.
type PackerEntry struct {
	Name   string
	Size   uint32
	Data   []byte
	Offset uint32
}

// entryLen is the encoded size of an entry record with the given name.
func entryLen(name string) uint64 {
	return entryFixedLen + uint64(len(name))
}
