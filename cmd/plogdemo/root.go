package main

import (
	"github.com/abyssdigger/plog/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries what subcommands share; v is filled by the root's
// PersistentPreRunE.
type app struct {
	cfgFile string
	v       *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "plogdemo",
		Short: "Exercise the plog logging pipeline",
		Long: `plogdemo builds a logger from a plog configuration file (plog.yaml in
the working directory or the user config directory, PLOG_* environment
variables override it) and runs one operation with it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.v, err = config.NewViper(a.cfgFile)
			return err
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./plog.yaml or $HOME/.config/plog/plog.yaml)")

	rootCmd.AddCommand(
		newEmitCmd(a),
		newSweepCmd(a),
		newArchiveCmd(a),
		newLevelsCmd(),
	)
	return rootCmd
}

// bindFlags binds flags to config keys (key -> flag name), so a flag given
// on the command line overrides the config file and environment.
func (a *app) bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}
