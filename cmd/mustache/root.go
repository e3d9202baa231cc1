package main

import (
	"fmt"

	"github.com/davorinm/mustache/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "mustache",
		Short: "Render mustache templates",
		Long: `mustache renders mustache templates against JSON, YAML or TOML data
files. Templates support variables, escaped and unescaped output,
sections, inverted sections, comments, partials and delimiter
reassignment.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mustache version %s\n", version)
		},
	}
)

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(versionCmd)
}
