package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgallion1/citeshield/internal/chunker"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MaxLines != 40 || cfg.Overlap != 5 {
		t.Errorf("expected 40/5 chunking, got %d/%d", cfg.MaxLines, cfg.Overlap)
	}
	if cfg.PageSize != 5 || cfg.MaxResults != 3 {
		t.Errorf("expected page size 5 and 3 results, got %d and %d", cfg.PageSize, cfg.MaxResults)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("CHUNK_MAX_LINES", "25")
	t.Setenv("CHUNK_OVERLAP", "0")
	t.Setenv("SCORE_WEIGHT_COVERAGE", "2.5")
	t.Setenv("BRIEF_TTL", "15m")
	t.Setenv("PAGE_SIZE", "-3")
	t.Setenv("SEARCH_COVERAGE_FIRST", "false")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MaxLines != 25 {
		t.Errorf("expected max lines 25, got %d", cfg.MaxLines)
	}
	if cfg.Overlap != 0 {
		t.Errorf("an explicit zero overlap must be kept, got %d", cfg.Overlap)
	}
	if cfg.WeightCoverage != 2.5 {
		t.Errorf("expected coverage weight 2.5, got %v", cfg.WeightCoverage)
	}
	if cfg.BriefTTL != 15*time.Minute {
		t.Errorf("expected 15m TTL, got %v", cfg.BriefTTL)
	}
	if cfg.PageSize != 5 {
		t.Errorf("invalid page size should fall back to 5, got %d", cfg.PageSize)
	}
	if cfg.Scorer().CoverageFirst {
		t.Error("SEARCH_COVERAGE_FIRST=false should give a plain weighted scorer")
	}
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citeshield.yaml")
	body := "max_lines: 60\noverlap: 10\nweight_density: 0\nbrief_ttl: 2h\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CHUNK_OVERLAP", "12")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.MaxLines != 60 {
		t.Errorf("expected max lines from file, got %d", cfg.MaxLines)
	}
	if cfg.Overlap != 12 {
		t.Errorf("environment should win over file, got %d", cfg.Overlap)
	}
	if cfg.WeightDensity != 0 {
		t.Errorf("expected density weight 0 from file, got %v", cfg.WeightDensity)
	}
	if cfg.WeightCoverage != 10 {
		t.Errorf("keys absent from the file keep defaults, got %v", cfg.WeightCoverage)
	}
	if cfg.BriefTTL != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %v", cfg.BriefTTL)
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_UsesEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("page_size: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigFile, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 9 {
		t.Errorf("expected page size 9, got %d", cfg.PageSize)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Overlap = cfg.MaxLines
	if err := cfg.Validate(); !chunker.IsConfigurationError(err) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}

	cfg = Default()
	cfg.WeightDensity = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}

	cfg = Default()
	if err := cfg.ValidateServer(); err == nil {
		t.Error("expected error for missing API key")
	}
	cfg.APIKey = "secret"
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStoreOptionsApplied(t *testing.T) {
	cfg := Default()
	sc := cfg.Scorer()
	if sc.Weights.Coverage != 10 || sc.MinTermLength != 3 || !sc.CoverageFirst {
		t.Errorf("unexpected scorer %+v", sc)
	}
	if got := len(cfg.StoreOptions()); got != 5 {
		t.Errorf("expected 5 store options, got %d", got)
	}
	if !cfg.LoaderOptions().PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
}
