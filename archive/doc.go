// Package archive reads and writes forge archives.
//
// An archive is a 12 byte header (magic, version, fileCount), followed by
// fileCount entry records (nameLength, name, size, offset) and then the
// payload region. All integers are little-endian uint32. Entry offsets are
// absolute and must lie past the end of the entry table.
//
// Extraction validates the whole table before writing any output. Packing is
// split into a discovery phase (ScanDirectory) and an offset assignment phase
// (AssignOffsets) before the archive is written in one pass.
package archive
