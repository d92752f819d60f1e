package cmd

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/abe-nagisa/forge/archive"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list ARCHIVE",
		Short: "Print the header and entry table of an archive",
		Args:  exactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			r, err := archive.Open(args[0], a.options()...)
			if err != nil {
				return err
			}
			defer r.Close()

			h, entries, err := r.ReadAll()
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "File magic: %#08x\n", h.Magic)
			fmt.Fprintf(out, "File version: %d\n", h.Version)
			fmt.Fprintf(out, "Files: %d\n", h.FileCount)

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("NAME", "SIZE", "OFFSET")
			for _, e := range entries {
				t.Row(displayName(e.Name), strconv.FormatUint(uint64(e.Size), 10), strconv.FormatUint(uint64(e.Offset), 10))
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}
}

// displayName quotes names that are not valid UTF-8 so they print safely.
func displayName(name string) string {
	if !utf8.ValidString(name) {
		return strconv.Quote(name)
	}
	return name
}
