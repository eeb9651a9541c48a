package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Folder != "duplicated" {
		t.Errorf("Expected default output folder, got %s", cfg.Output.Folder)
	}
	if cfg.Hash.Algorithm != "sha256" {
		t.Errorf("Expected default algorithm sha256, got %s", cfg.Hash.Algorithm)
	}
	if cfg.Scan.Recurse || cfg.Run.DryRun {
		t.Error("Expected recurse and dry-run to default to false")
	}
	if cfg.Performance.Workers <= 0 {
		t.Errorf("Expected positive worker default, got %d", cfg.Performance.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected info log level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "dupmover.yaml")
	content := `
output:
  folder: /tmp/quarantine
hash:
  algorithm: md5
scan:
  recurse: true
run:
  dry_run: true
performance:
  workers: 3
logging:
  level: debug
`
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(viper.New(), cfgFile)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Folder != "/tmp/quarantine" || cfg.Hash.Algorithm != "md5" {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if !cfg.Scan.Recurse || !cfg.Run.DryRun || cfg.Performance.Workers != 3 {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected debug level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DUPMOVER_HASH_ALGORITHM", "sha1")

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Hash.Algorithm != "sha1" {
		t.Errorf("Expected env override sha1, got %s", cfg.Hash.Algorithm)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
