package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/config"
)

type rootOptions struct {
	verbose    bool
	configPath string
	stderr     io.Writer
}

// loadConfig reads the --config file, or the defaults when none was given.
func (o *rootOptions) loadConfig() (config.Config, error) {
	return config.Load(o.configPath)
}

// Execute runs the blockfall CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stderr: stderr}

	root := &cobra.Command{
		Use:          "blockfall",
		Short:        "A falling-block puzzle game",
		Long:         `blockfall is a falling-block puzzle game with a windowed and a terminal frontend, plus a headless soak harness for exercising the engine.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(opts.stderr, level)))
		},
	}

	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML settings file")

	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newSoakCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
}
