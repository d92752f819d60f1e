package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abe-nagisa/forge/archive"
)

// Execute runs the forge command line and exits with status 1 on any error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Running the root command with a single
// archive path extracts it.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), fs: afero.NewOsFs()}
	var (
		cfgFile string
		bindErr error
	)

	root := &cobra.Command{
		Use:   "forge ARCHIVE",
		Short: "Extract and pack forge archives",
		Long: `forge reads and writes forge archives: a header, a table of
file entries and the concatenated file payloads.

Given a single archive path, forge extracts it into the output directory.`,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			if bindErr != nil {
				return bindErr
			}
			return a.init(c, cfgFile)
		},
		RunE: func(c *cobra.Command, args []string) error {
			return a.extract(args[0])
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.forge.yaml)")
	pf.BoolP("verbose", "v", false, "log every entry")
	pf.StringP("output", "o", defaultOutput, "directory to extract into")
	pf.Int("max-entries", defaultMaxEntries, "refuse archives declaring more entries than this")
	pf.Bool("overwrite", true, "replace existing files when extracting")
	bindErr = bindFlags(a.v, pf, map[string]string{
		keyVerbose:    "verbose",
		keyOutput:     "output",
		keyMaxEntries: "max-entries",
		keyOverwrite:  "overwrite",
	})

	root.AddCommand(newExtractCmd(a), newPackCmd(a), newListCmd(a))
	return root
}

// init reads the config file and the environment and builds the logger.
func (a *app) init(c *cobra.Command, cfgFile string) error {
	v := a.v
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "find home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return errors.Wrapf(err, "read config %s", cfgFile)
		}
	}

	if n := v.GetInt(keyMaxEntries); n < 1 || n > defaultMaxEntries {
		return archive.NewUsageError(fmt.Sprintf("max-entries %d not in [1, %d]", n, defaultMaxEntries))
	}

	a.logger = log.NewWithOptions(c.ErrOrStderr(), log.Options{Prefix: "forge"})
	if v.GetBool(keyVerbose) {
		a.logger.SetLevel(log.DebugLevel)
	}
	if used := v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config", "file", used)
	}
	return nil
}

// bindFlags binds each config key to the named flag of fs. A flag missing
// from fs is reported rather than silently left unbound.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}

// exactArgs reports argument count mistakes as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) != n {
			return archive.NewUsageError(fmt.Sprintf("%s takes %d argument(s), got %d; usage: %s", c.Name(), n, len(args), c.UseLine()))
		}
		return nil
	}
}
