// Package cli provides the calc command-line host for the calculator engine.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "calc",
		Short: "Keypad calculator",
		Long: `calc drives the calculator engine with keypad input.

Keys: 0-9 . AC +/- % + - * / =
Input may be given as separate arguments ("5 + 3 =") or as one run ("5+3=").`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			return observability.InitLogger(cfg.LogLevel, true)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, config.ConfigFlag, "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")

	rootCmd.AddCommand(newPressCommand())
	rootCmd.AddCommand(newREPLCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calc %s\n", Version)
		},
	}
}
