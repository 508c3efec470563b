// Package commands implements CLI commands.
package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mitranim/fermion"
	"github.com/mitranim/fermion/internal/config"
	"github.com/mitranim/fermion/internal/debug"
)

// Fs is the filesystem documents are read from.
var Fs = afero.NewOsFs()

type globalFlags struct {
	configFile string
	verbose    bool
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           "fermion",
		Short:         "Render SQL statements from YAML documents",
		Long:          "Fermion compiles YAML statement documents into parameterized SQL and bound values",
		Version:       fermion.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.InitWriter(flags.verbose, cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Path to config file (default: .fermion.yaml in the current or home directory)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewRenderCommand(&flags))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: flags.configFile})
	if err != nil {
		return nil, err
	}
	debug.Debug("loaded config", "file", cfg.File, "bind", cfg.Bind.String(), "color", cfg.Color)
	return cfg, nil
}
