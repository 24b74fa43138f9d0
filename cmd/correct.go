package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/classtrack/gradescan/internal/jobs"
)

var correctCmd = &cobra.Command{
	Use:   "correct",
	Short: "Apply reviewer corrections to a processed result",
	Long: `Apply per-student score/status overrides to a saved processing result.

The overrides file is a YAML list:
  - student_id: "001"
    score: "8.5"
  - student_id: "007"
    status: ["Absent"]

Corrected entries are replaced and stamped with the editor and timestamp;
entries without an override are left exactly as OCR produced them. The
corrected result supersedes the input file's grades rather than editing
OCR-derived data in place.`,
	RunE: runCorrect,
}

var (
	correctResultPath    string
	correctOverridesPath string
	correctEditor        string
	correctOutput        string
)

func init() {
	RootCmd.AddCommand(correctCmd)

	correctCmd.Flags().StringVar(&correctResultPath, "result", "", "Path to the result YAML to correct (required)")
	correctCmd.Flags().StringVar(&correctOverridesPath, "overrides", "", "Path to the overrides YAML (required)")
	correctCmd.Flags().StringVar(&correctEditor, "editor", "", "Name recorded as the editor (required)")
	correctCmd.Flags().StringVarP(&correctOutput, "output", "o", "", "Output path (defaults to overwriting the result file)")

	for _, flag := range []string{"result", "overrides", "editor"} {
		if err := correctCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
}

func runCorrect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(correctResultPath)
	if err != nil {
		return fmt.Errorf("failed to read result file: %w", err)
	}

	var result SheetResult
	if err := yaml.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("failed to parse result file: %w", err)
	}

	overrideData, err := os.ReadFile(correctOverridesPath)
	if err != nil {
		return fmt.Errorf("failed to read overrides file: %w", err)
	}

	var overrides []jobs.Override
	if err := yaml.Unmarshal(overrideData, &overrides); err != nil {
		return fmt.Errorf("failed to parse overrides file: %w", err)
	}

	corrected, err := jobs.ApplyCorrections(result.Grades, overrides, correctEditor, time.Now())
	if err != nil {
		return fmt.Errorf("failed to apply corrections: %w", err)
	}
	result.Grades = corrected

	slog.Info("Corrections applied", "overrides", len(overrides), "students", len(corrected), "editor", correctEditor)

	outputPath := correctOutput
	if outputPath == "" {
		outputPath = correctResultPath
	}

	out, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, out, 0644)
}
