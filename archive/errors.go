package archive

import (
	"fmt"

	"github.com/pkg/errors"
)

// IOKind classifies failures against the backing medium.
type IOKind int

const (
	CannotOpen IOKind = iota + 1
	ReadFailed
	SeekFailed
	TellFailed
	WriteFailed
	CannotCreateOutput
	FileTooLarge
	ArchiveTooLarge
)

var ioKindNames = map[IOKind]string{
	CannotOpen:         "cannot open",
	ReadFailed:         "read failed",
	SeekFailed:         "seek failed",
	TellFailed:         "tell failed",
	WriteFailed:        "write failed",
	CannotCreateOutput: "cannot create output",
	FileTooLarge:       "file too large",
	ArchiveTooLarge:    "archive too large",
}

func (k IOKind) String() string { return ioKindNames[k] }

// FormatKind classifies structural violations of the archive layout.
type FormatKind int

const (
	BadMagic FormatKind = iota + 1
	BadEntryCount
	BadNameLength
	TruncatedName
	OffsetInMetadata
	EntryOutOfRange
	UnsafeName
	DuplicateName
)

var formatKindNames = map[FormatKind]string{
	BadMagic:         "bad magic",
	BadEntryCount:    "bad entry count",
	BadNameLength:    "bad name length",
	TruncatedName:    "truncated name",
	OffsetInMetadata: "offset in metadata",
	EntryOutOfRange:  "entry out of range",
	UnsafeName:       "unsafe entry name",
	DuplicateName:    "duplicate entry name",
}

func (k FormatKind) String() string { return formatKindNames[k] }

// ConfigKind classifies invalid usage or directory arguments.
type ConfigKind int

const (
	InvalidInputDir ConfigKind = iota + 1
	EmptyInputDir
	Usage
)

var configKindNames = map[ConfigKind]string{
	InvalidInputDir: "invalid input directory",
	EmptyInputDir:   "empty input directory",
	Usage:           "usage",
}

func (k ConfigKind) String() string { return configKindNames[k] }

// Sentinels for errors.Is. Matching is by kind only.
var (
	ErrCannotOpen         = &IOError{Kind: CannotOpen}
	ErrReadFailed         = &IOError{Kind: ReadFailed}
	ErrSeekFailed         = &IOError{Kind: SeekFailed}
	ErrTellFailed         = &IOError{Kind: TellFailed}
	ErrWriteFailed        = &IOError{Kind: WriteFailed}
	ErrCannotCreateOutput = &IOError{Kind: CannotCreateOutput}
	ErrFileTooLarge       = &IOError{Kind: FileTooLarge}
	ErrArchiveTooLarge    = &IOError{Kind: ArchiveTooLarge}

	ErrBadMagic         = &FormatError{Kind: BadMagic}
	ErrBadEntryCount    = &FormatError{Kind: BadEntryCount}
	ErrBadNameLength    = &FormatError{Kind: BadNameLength}
	ErrTruncatedName    = &FormatError{Kind: TruncatedName}
	ErrOffsetInMetadata = &FormatError{Kind: OffsetInMetadata}
	ErrEntryOutOfRange  = &FormatError{Kind: EntryOutOfRange}
	ErrUnsafeName       = &FormatError{Kind: UnsafeName}
	ErrDuplicateName    = &FormatError{Kind: DuplicateName}

	ErrInvalidInputDir = &ConfigError{Kind: InvalidInputDir}
	ErrEmptyInputDir   = &ConfigError{Kind: EmptyInputDir}
	ErrUsage           = &ConfigError{Kind: Usage}
)

// IOError reports an open, read, write or seek failure.
type IOError struct {
	Kind IOKind
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	msg := "forge: " + e.Kind.String()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool {
	t, ok := target.(*IOError)
	return ok && t.Kind == e.Kind
}

// FormatError reports a malformed archive. Offset is the archive position the
// problem was detected at, or -1 when it does not apply.
type FormatError struct {
	Kind   FormatKind
	Offset int64
	Detail string
}

func (e *FormatError) Error() string {
	msg := "forge: " + e.Kind.String()
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *FormatError) Is(target error) bool {
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}

// ConfigError reports invalid CLI usage or directory arguments.
type ConfigError struct {
	Kind   ConfigKind
	Path   string
	Detail string
}

func (e *ConfigError) Error() string {
	msg := "forge: " + e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Kind == e.Kind
}

func ioErr(kind IOKind, op, path string, err error) error {
	return errors.WithStack(&IOError{Kind: kind, Op: op, Path: path, Err: err})
}

func formatErr(kind FormatKind, offset int64, format string, args ...interface{}) error {
	return errors.WithStack(&FormatError{Kind: kind, Offset: offset, Detail: fmt.Sprintf(format, args...)})
}

// NewUsageError reports invalid command line usage.
func NewUsageError(detail string) error {
	return configErr(Usage, "", detail)
}

func configErr(kind ConfigKind, path, detail string) error {
	return errors.WithStack(&ConfigError{Kind: kind, Path: path, Detail: detail})
}
