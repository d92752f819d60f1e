package archive

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

type options struct {
	fs        afero.Fs
	format    Format
	logger    *log.Logger
	overwrite bool
}

// Option configures a Reader or a Packer.
type Option func(*options)

// WithFs sets the filesystem all paths are resolved against.
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithFormat replaces DefaultFormat.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithLogger sets the sink for status lines. Logging never affects control
// flow.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithOverwrite controls whether extraction may replace existing files.
func WithOverwrite(overwrite bool) Option {
	return func(o *options) { o.overwrite = overwrite }
}

func newOptions(opts []Option) options {
	o := options{
		fs:        afero.NewOsFs(),
		format:    DefaultFormat(),
		overwrite: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}
