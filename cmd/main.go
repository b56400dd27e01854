package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/beam-cloud/stego/pkg/commands"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "stego",
	Short: "Embed, extract and inspect messages hidden in PNG chunks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.SetLogLevel(logLevel)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled)")
	rootCmd.AddCommand(
		commands.EncodeCmd,
		commands.DecodeCmd,
		commands.RemoveCmd,
		commands.PrintCmd,
		commands.ScanCmd,
	)
}

func main() {
	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
