package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/classtrack/gradescan/pkg/sheet"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !reflect.DeepEqual(cfg.Tolerances, sheet.DefaultTolerances()) {
		t.Errorf("Tolerances = %+v, want the stock tolerances", cfg.Tolerances)
	}
	if !reflect.DeepEqual(cfg.Grading, sheet.DefaultScaleConfig()) {
		t.Errorf("Grading = %+v, want the stock scale config", cfg.Grading)
	}
	if cfg.Provider.Name != "vision" {
		t.Errorf("Provider.Name = %q, want vision", cfg.Provider.Name)
	}
	if cfg.Jobs.Workers != 5 || cfg.Jobs.QueueSize != 100 {
		t.Errorf("Jobs = %+v, want 5 workers and queue size 100", cfg.Jobs)
	}
	if cfg.Jobs.RetryAttempts != 3 || cfg.Jobs.RetryDelay != 2*time.Second {
		t.Errorf("Jobs retry settings = %+v", cfg.Jobs)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent-but-unset"))
	if err == nil {
		t.Fatal("expected an error for an explicitly named missing config file")
	}

	// No explicit file: defaults come through untouched.
	t.Chdir(t.TempDir())
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	content := `
tolerances:
  row_y_tolerance: 12
grading:
  scale: ["A", "B", "C"]
  statuses_enabled: false
  first_scale_column: 3
provider:
  name: claude
  model: claude-sonnet-4-20250514
jobs:
  workers: 2
`
	path := filepath.Join(t.TempDir(), "gradescan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Tolerances.RowYTolerance != 12 {
		t.Errorf("RowYTolerance = %v, want 12", cfg.Tolerances.RowYTolerance)
	}
	// Settings the file omits keep their defaults.
	if cfg.Tolerances.MarkXTolerance != sheet.DefaultTolerances().MarkXTolerance {
		t.Errorf("MarkXTolerance = %v, want default", cfg.Tolerances.MarkXTolerance)
	}
	if !reflect.DeepEqual(cfg.Grading.Scale, []string{"A", "B", "C"}) {
		t.Errorf("Scale = %v, want [A B C]", cfg.Grading.Scale)
	}
	if cfg.Grading.StatusesEnabled {
		t.Error("StatusesEnabled = true, want false")
	}
	if cfg.Grading.FirstScaleColumn != 3 {
		t.Errorf("FirstScaleColumn = %d, want 3", cfg.Grading.FirstScaleColumn)
	}
	if cfg.Provider.Name != "claude" {
		t.Errorf("Provider.Name = %q, want claude", cfg.Provider.Name)
	}
	if cfg.Jobs.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Jobs.Workers)
	}
	if cfg.Jobs.QueueSize != 100 {
		t.Errorf("QueueSize = %d, want default 100", cfg.Jobs.QueueSize)
	}
}
