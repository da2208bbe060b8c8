package cmd

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufdrinsight/ufdrinsight/internal/aggregate"
	"github.com/ufdrinsight/ufdrinsight/internal/errors"
	"github.com/ufdrinsight/ufdrinsight/internal/risk"
	"github.com/ufdrinsight/ufdrinsight/internal/ufdr"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <archive.zip>",
	Short: "Analyze one UFDR archive and print the report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	result, err := ufdr.Parse(data)
	if err != nil {
		if stderrors.Is(err, errors.ErrNoMessages) {
			return fmt.Errorf("%s: %v", args[0], err)
		}
		return err
	}

	metrics := aggregate.Aggregate(result.Messages, result.Calls, result.Metadata)
	risks := risk.Detect(metrics)

	out := map[string]interface{}{
		"metrics":         metrics,
		"risks":           risks,
		"errors":          result.Errors,
		"dropped_records": result.DroppedRecords,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
