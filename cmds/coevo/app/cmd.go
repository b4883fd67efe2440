package app

import (
	"fmt"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/coevolution/pkg/utils"
)

type Options struct {
	fs       vfs.FileSystem
	config   string
	logLevel string

	cfg *Config
}

// Complete evaluates the configuration and sets up logging.
func (o *Options) Complete() error {
	cfg, err := GetConfig(o.fs, o.config)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.LogLevel = utils.Pointer(o.logLevel)
	}
	o.cfg = cfg
	return ConfigureLogging(*cfg.LogLevel)
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	run := &Run{mainopts: opts}
	maincmd := &cobra.Command{
		Use:   "coevo <options> [<scenario>]",
		Short: "simulate the co-evolution of versioned artifacts",
		Long: `
This command runs example ecosystems of metamodels, models and
transformations in an artifact repository. Every stored artifact is
propagated to the interested transformations, whose results are
stored again. A scenario can be given by name or index, directly or
with the run command.
`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				err := cmd.Help()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nScenarios:\n")
				PrintScenarios(cmd.OutOrStdout())
				return nil
			}
			return run.Run(args[0])
		},
	}
	run.cmd = maincmd

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.logLevel, "log-level", "L", "", "log level")
	flags.StringVarP(&opts.config, "config", "c", "", "config file")
	run.AddFlags(maincmd.Flags())

	maincmd.AddCommand(NewRun(opts))
	maincmd.AddCommand(NewList(opts))
	return maincmd
}
