package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abe-nagisa/forge/archive"
)

func newPackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pack SRCDIR ARCHIVE",
		Short: "Pack the regular files of a directory into an archive",
		Long: `Pack reads every regular file directly inside SRCDIR, in name order, and
writes them to ARCHIVE. Subdirectories are not descended into.`,
		Args: exactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			entries, err := archive.Pack(args[0], args[1], a.options()...)
			if err != nil {
				return err
			}
			a.logger.Info("done", "files", len(entries), "archive", args[1])
			return nil
		},
	}
}
