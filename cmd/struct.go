package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/abe-nagisa/forge/archive"
)

// Config keys. Flags, FORGE_* environment variables and the config file all
// resolve through these.
const (
	keyOutput     = "output"
	keyMaxEntries = "max_entries"
	keyVerbose    = "verbose"
	keyOverwrite  = "overwrite"
)

const (
	defaultOutput     = "."
	defaultMaxEntries = 10000
	configName        = ".forge"
	envPrefix         = "forge"
)

// app is the state shared by every command of one root command tree.
type app struct {
	v      *viper.Viper
	fs     afero.Fs
	logger *log.Logger
}

// options translates the resolved configuration into archive options.
func (a *app) options() []archive.Option {
	f := archive.DefaultFormat()
	f.MaxEntries = uint32(a.v.GetInt(keyMaxEntries))
	return []archive.Option{
		archive.WithFs(a.fs),
		archive.WithFormat(f),
		archive.WithLogger(a.logger),
		archive.WithOverwrite(a.v.GetBool(keyOverwrite)),
	}
}
