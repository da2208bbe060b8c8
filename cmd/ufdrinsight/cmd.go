// Package cmd wires the ufdrinsight command line.
package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "ufdrinsight",
	Short: "Forensic analytics over UFDR archives",
	Long: `ufdrinsight ingests UFDR archives (zip containers of heterogeneous
XML extraction data), normalizes messages, calls, contacts and device
metadata into canonical records, and computes a deterministic metrics
report with rule-based investigative risk signals.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLog()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initLog() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
