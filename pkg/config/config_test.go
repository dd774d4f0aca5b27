package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate cleanly, got %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Build.VoteReductionStrategy != DefaultVoteReductionStrategy {
		t.Errorf("VoteReductionStrategy = %q, want default", cfg.Build.VoteReductionStrategy)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdag.toml")
	content := "[build]\nincorporate_ccf = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Build.IncorporateCCF {
		t.Errorf("IncorporateCCF = false, want true")
	}
	if cfg.Render.Format != DefaultRenderFormat {
		t.Errorf("Render.Format = %q, want default %q", cfg.Render.Format, DefaultRenderFormat)
	}
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	cfg := Default()
	cfg.Build.VoteReductionStrategy = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject an unknown strategy")
	}
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Render.Format = "bmp"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject an unknown render format")
	}
}

func TestValidateDefaultsZeroScaleAndRejectsNegative(t *testing.T) {
	cfg := Default()
	cfg.Render.Scale = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("SetDefaults should have restored the default scale before validation, got error: %v", err)
	}

	cfg.Render.Scale = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected Validate to reject a negative scale")
	}
}
