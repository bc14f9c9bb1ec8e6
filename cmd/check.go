package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yuchen/rootdrill/internal/dataset"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the dataset file",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, err := resolveDataPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve dataset path: %w", err)
		}

		report, err := dataset.Check(dataPath)
		if err != nil {
			return fmt.Errorf("dataset check failed: %w", err)
		}

		fmt.Printf("entryCount=%d\n", report.EntryCount)
		fmt.Printf("exampleCount=%d\n", report.ExampleCount)
		fmt.Printf("fieldCompleteness=%.3f\n", report.FieldCompleteness)
		fmt.Println("validation passed")
		return nil
	},
}
