package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/classtrack/gradescan/internal/config"
	"github.com/classtrack/gradescan/internal/roster"
	"github.com/classtrack/gradescan/internal/utils"
	"github.com/classtrack/gradescan/pkg/claude"
	"github.com/classtrack/gradescan/pkg/gemini"
	"github.com/classtrack/gradescan/pkg/googlevision"
	"github.com/classtrack/gradescan/pkg/ollama"
	"github.com/classtrack/gradescan/pkg/openai"
	"github.com/classtrack/gradescan/pkg/providers"
	"github.com/classtrack/gradescan/pkg/sheet"
)

// SheetResult is the saved output of one processing run.
type SheetResult struct {
	SheetID   string                 `yaml:"sheet_id,omitempty"`
	ImagePath string                 `yaml:"image_path"`
	Provider  string                 `yaml:"provider"`
	Model     string                 `yaml:"model,omitempty"`
	Timestamp string                 `yaml:"timestamp"`
	Grades    []sheet.ProcessedGrade `yaml:"grades"`
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one scanned grade sheet into per-student grades",
	Long: `Process a scanned grade sheet image against a class roster.

The vision provider returns positioned text fragments that are clustered
into rows and columns to find marked cells. The claude, gemini, openai, and
ollama providers instead read the sheet in one shot and return a
Row,Score,Status table. Either way the output is one grade entry per roster student, in
roster order.`,
	RunE: runProcess,
}

var (
	processImagePath  string
	processRosterPath string
	processProvider   string
	processModel      string
	processTemp       float64
	processOutput     string
	processSheetID    string
)

func init() {
	RootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processImagePath, "image", "", "Path or URL of the scanned sheet image (required)")
	processCmd.Flags().StringVar(&processRosterPath, "roster", "", "Path to the class roster CSV (required)")
	processCmd.Flags().StringVar(&processProvider, "provider", "", "Provider to use: vision, claude, gemini, openai, ollama")
	processCmd.Flags().StringVarP(&processModel, "model", "m", "", "Model to use (text providers only)")
	processCmd.Flags().Float64VarP(&processTemp, "temperature", "t", 0.0, "Temperature for text providers")
	processCmd.Flags().StringVarP(&processOutput, "output", "o", "", "Output path for the result YAML (prints to stdout if not specified)")
	processCmd.Flags().StringVar(&processSheetID, "sheet-id", "", "Identifier recorded on the result")

	if err := processCmd.MarkFlagRequired("image"); err != nil {
		slog.Error("Unable to mark image as required", "err", err)
		os.Exit(1)
	}
	if err := processCmd.MarkFlagRequired("roster"); err != nil {
		slog.Error("Unable to mark roster as required", "err", err)
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	providerName := processProvider
	if providerName == "" {
		providerName = cfg.Provider.Name
	}
	model := processModel
	if model == "" {
		model = cfg.Provider.Model
	}

	students, err := roster.LoadCSV(processRosterPath)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	entries := roster.Entries(students)

	slog.Info("Processing grade sheet", "image", processImagePath, "provider", providerName, "students", len(entries))

	grades, err := processSheet(cmd.Context(), cfg, providerName, model, processTemp, processImagePath, entries)
	if err != nil {
		return utils.MaskSensitiveError(err)
	}

	result := SheetResult{
		SheetID:   processSheetID,
		ImagePath: processImagePath,
		Provider:  providerName,
		Model:     model,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
		Grades:    grades,
	}

	return outputResult(result, processOutput)
}

// newRegistry registers every available provider.
func newRegistry() *providers.Registry {
	registry := providers.NewRegistry()
	registry.Register(googlevision.New())
	registry.Register(claude.New())
	registry.Register(gemini.New())
	registry.Register(ollama.New())
	registry.Register(openai.New())
	return registry
}

// processSheet runs the whole pipeline for one sheet: OCR call, then either
// the row/column path (vision providers) or the free-text path (text
// providers). Only the provider call can fail; everything downstream of it
// absorbs ambiguity into empty fields for the reviewer.
func processSheet(ctx context.Context, cfg *config.Config, providerName, model string, temperature float64, imagePath string, entries []sheet.RosterEntry) ([]sheet.ProcessedGrade, error) {
	registry := newRegistry()

	prov, err := registry.Get(providerName)
	if err != nil {
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}

	pcfg := providers.Config{
		Provider:    providerName,
		Model:       model,
		Prompt:      providers.DefaultSheetPrompt(cfg.Grading.Scale),
		Temperature: temperature,
		Timeout:     cfg.Provider.Timeout,
	}
	if err := prov.ValidateConfig(pcfg); err != nil {
		return nil, fmt.Errorf("provider configuration validation failed: %w", err)
	}

	imageBase64, err := imageAsBase64(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	switch p := prov.(type) {
	case providers.VisionProvider:
		objects, err := p.DetectText(ctx, pcfg, imagePath, imageBase64)
		if err != nil {
			return nil, fmt.Errorf("text detection failed: %w", err)
		}
		analysis := sheet.Analyze(objects, cfg.Tolerances)
		slog.Info("Sheet analyzed", "fragments", len(objects), "rows", len(analysis.Rows), "columns", len(analysis.Columns))
		return analysis.Grades(entries, cfg.Grading, cfg.Tolerances, nil), nil
	case providers.TextProvider:
		response, err := p.DescribeSheet(ctx, pcfg, imagePath, imageBase64)
		if err != nil {
			return nil, fmt.Errorf("sheet description failed: %w", err)
		}
		slog.Debug("Provider response", "length", len(response))
		return sheet.ParseFreeText(response, entries), nil
	default:
		return nil, fmt.Errorf("provider %s supports no known processing mode", providerName)
	}
}

func outputResult(result SheetResult, outputPath string) error {
	data, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, data, 0644)
	}
	fmt.Print(string(data))
	return nil
}

// imageAsBase64 reads a local file or URL and returns its base64 encoding.
func imageAsBase64(imagePath string) (string, error) {
	var imageData []byte
	var err error

	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		resp, err := http.Get(imagePath)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		imageData, err = io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
	} else {
		imageData, err = os.ReadFile(imagePath)
		if err != nil {
			return "", err
		}
	}

	return base64.StdEncoding.EncodeToString(imageData), nil
}
