package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ufdrinsight/ufdrinsight/internal/sample"
)

var (
	sampleOut  string
	sampleSeed int64
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic UFDR archive for testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sample.WriteFile(sampleOut, sampleSeed); err != nil {
			return err
		}
		log.Info().Str("path", sampleOut).Msg("sample archive written")
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "sample_ufdr.zip", "output path")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 1, "random seed")
	rootCmd.AddCommand(sampleCmd)
}
