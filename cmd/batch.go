package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/classtrack/gradescan/internal/config"
	"github.com/classtrack/gradescan/internal/jobs"
	"github.com/classtrack/gradescan/internal/roster"
	"github.com/classtrack/gradescan/pkg/sheet"
)

// BatchSummary is the saved output of one batch run.
type BatchSummary struct {
	Provider  string      `yaml:"provider"`
	Model     string      `yaml:"model,omitempty"`
	Timestamp string      `yaml:"timestamp"`
	Jobs      []*jobs.Job `yaml:"jobs"`
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Process a batch of grade sheets from a CSV manifest",
	Long: `Process many grade sheets concurrently, one job per sheet.

The manifest CSV has 3 columns:
  sheet_id,image,roster

Where:
  - sheet_id: your identifier for the sheet (e.g. period-3-quiz-7)
  - image: path or URL of the scanned sheet image
  - roster: path to the class roster CSV for that sheet's period

Sheets are independent units of work: a fixed-size worker pool processes the
queue and each failed sheet is retried as a whole before being marked
failed. One failed sheet never blocks the rest of the batch.

Example:
  gradescan batch --manifest sheets.csv --provider vision --dir ./scans`,
	RunE: runBatch,
}

var (
	batchManifestPath string
	batchProvider     string
	batchModel        string
	batchTemp         float64
	batchDir          string
	batchRows         []int
)

func init() {
	RootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchManifestPath, "manifest", "c", "", "Path to the batch manifest CSV (required)")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "Provider to use: vision, claude, gemini, openai, ollama")
	batchCmd.Flags().StringVarP(&batchModel, "model", "m", "", "Model to use (text providers only)")
	batchCmd.Flags().Float64VarP(&batchTemp, "temperature", "t", 0.0, "Temperature for text providers")
	batchCmd.Flags().StringVar(&batchDir, "dir", "./", "Prepend your manifest file paths with a directory")
	batchCmd.Flags().IntSliceVar(&batchRows, "rows", []int{}, "A list of manifest row numbers to process")

	if err := batchCmd.MarkFlagRequired("manifest"); err != nil {
		panic(err)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	providerName := batchProvider
	if providerName == "" {
		providerName = cfg.Provider.Name
	}
	model := batchModel
	if model == "" {
		model = cfg.Provider.Model
	}

	manifest, err := readManifest(batchManifestPath, batchRows)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}

	resultsDir := "results"
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	store := jobs.NewMemoryStore()
	runner := jobs.NewRunner(store, func(ctx context.Context, job *jobs.Job) ([]sheet.ProcessedGrade, error) {
		return processSheet(ctx, cfg, job.Provider, model, batchTemp, job.ImagePath, job.Roster)
	}, jobs.RunnerConfig{
		Workers:       cfg.Jobs.Workers,
		QueueSize:     cfg.Jobs.QueueSize,
		RetryAttempts: cfg.Jobs.RetryAttempts,
		RetryDelay:    cfg.Jobs.RetryDelay,
	})

	runner.Start(cmd.Context())

	for _, entry := range manifest {
		students, err := roster.LoadCSV(entry.rosterPath)
		if err != nil {
			slog.Error("Skipping sheet with unreadable roster", "sheet", entry.sheetID, "err", err)
			continue
		}
		job := jobs.NewJob(entry.sheetID, entry.imagePath, providerName, roster.Entries(students))
		if err := runner.Submit(job); err != nil {
			slog.Error("Failed to queue sheet", "sheet", entry.sheetID, "err", err)
		}
	}

	runner.Close()

	summary := BatchSummary{
		Provider:  providerName,
		Model:     model,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Jobs:      store.List(),
	}

	outputPath := filepath.Join(resultsDir, fmt.Sprintf("batch_%s.yaml", summary.Timestamp))
	data, err := yaml.Marshal(summary)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	fmt.Printf("\nBatch completed. Results saved to: %s\n", outputPath)
	printBatchStats(summary.Jobs)

	return nil
}

type manifestEntry struct {
	sheetID    string
	imagePath  string
	rosterPath string
}

func readManifest(path string, testRows []int) ([]manifestEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("manifest file is empty")
	}

	// Skip header row if present
	dataRows := records
	if strings.EqualFold(strings.TrimSpace(records[0][0]), "sheet_id") {
		dataRows = records[1:]
	}

	if len(testRows) == 0 {
		for i := 0; i < len(dataRows); i++ {
			testRows = append(testRows, i)
		}
	}

	var entries []manifestEntry
	for i, row := range dataRows {
		if !slices.Contains(testRows, i) {
			slog.Warn("Skipping row", "row", i+1)
			continue
		}
		if len(row) < 3 {
			slog.Warn("Insufficient columns (expected 3: sheet_id, image, roster)", "row", i+1, "columns", len(row))
			continue
		}
		entries = append(entries, manifestEntry{
			sheetID:    strings.TrimSpace(row[0]),
			imagePath:  filepath.Join(batchDir, strings.TrimSpace(row[1])),
			rosterPath: filepath.Join(batchDir, strings.TrimSpace(row[2])),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable rows in manifest")
	}

	return entries, nil
}

func printBatchStats(allJobs []*jobs.Job) {
	completed, failed := 0, 0
	for _, job := range allJobs {
		switch job.Status {
		case jobs.StatusCompleted:
			completed++
		case jobs.StatusFailed:
			failed++
			fmt.Printf("FAILED %s (%s): %s\n", job.SheetID, job.ID, job.Error)
		}
	}

	fmt.Printf("\n=== BATCH SUMMARY ===\n")
	fmt.Printf("Total Sheets: %d\n", len(allJobs))
	fmt.Printf("Completed: %d\n", completed)
	fmt.Printf("Failed: %d\n", failed)
}
