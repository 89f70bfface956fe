package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.IOTimeoutMS != int(DefaultIOTimeout/time.Millisecond) {
		t.Errorf("IOTimeoutMS = %d", cfg.IOTimeoutMS)
	}
	if cfg.AtomicMode != string(AtomicAuto) {
		t.Errorf("AtomicMode = %q", cfg.AtomicMode)
	}
	if cfg.Backup.MaxAgeDays != DefaultBackupMaxAgeDays {
		t.Errorf("Backup.MaxAgeDays = %d", cfg.Backup.MaxAgeDays)
	}
	if cfg.Backup.MaxCount != DefaultBackupMaxCount {
		t.Errorf("Backup.MaxCount = %d", cfg.Backup.MaxCount)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("ALPH_IO_TIMEOUT_MS", "500")
	t.Setenv("ALPH_ATOMIC_MODE", "copy")
	t.Setenv("ALPH_BACKUP_MAX_COUNT", "3")
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got := cfg.IOTimeout(); got != 500*time.Millisecond {
		t.Errorf("IOTimeout() = %v, want 500ms", got)
	}
	if got := cfg.Atomic(); got != AtomicCopy {
		t.Errorf("Atomic() = %v, want copy", got)
	}
	if cfg.Backup.MaxCount != 3 {
		t.Errorf("Backup.MaxCount = %d, want 3", cfg.Backup.MaxCount)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "io_timeout_ms: 2000\natomic_mode: rename\nbackup:\n  max_count: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.IOTimeout() != 2*time.Second {
		t.Errorf("IOTimeout() = %v", cfg.IOTimeout())
	}
	if cfg.Atomic() != AtomicRename {
		t.Errorf("Atomic() = %v", cfg.Atomic())
	}
	if cfg.Backup.MaxCount != 5 {
		t.Errorf("Backup.MaxCount = %d", cfg.Backup.MaxCount)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestHelpersFallBack(t *testing.T) {
	cfg := &Config{IOTimeoutMS: -1, AtomicMode: "bogus"}
	if cfg.IOTimeout() != DefaultIOTimeout {
		t.Errorf("IOTimeout() = %v", cfg.IOTimeout())
	}
	if cfg.Atomic() != AtomicAuto {
		t.Errorf("Atomic() = %v", cfg.Atomic())
	}
}
