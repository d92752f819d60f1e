package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abe-nagisa/forge/archive"
)

func newExtractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract ARCHIVE",
		Short: "Extract every entry of an archive into the output directory",
		Long: `Extract validates the whole entry table first and writes nothing if any
entry is malformed. Entries are then written in table order.`,
		Args: exactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return a.extract(args[0])
		},
	}
}

func (a *app) extract(path string) error {
	dir := a.v.GetString(keyOutput)
	entries, err := archive.Extract(path, dir, a.options()...)
	if err != nil {
		return err
	}
	a.logger.Info("done", "files", len(entries), "dest", dir)
	return nil
}
