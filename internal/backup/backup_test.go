package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	alpherrors "github.com/alph-cli/alph/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCreateAndRestore(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "settings.json")
	writeFile(t, original, `{"a":1}`)

	m := NewManager()
	info, err := m.Create(original)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if info.OriginalPath != original {
		t.Errorf("OriginalPath = %q", info.OriginalPath)
	}
	if filepath.Dir(info.BackupPath) != dir {
		t.Errorf("backup not a sibling: %q", info.BackupPath)
	}

	data, err := os.ReadFile(info.BackupPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("backup content = %q", data)
	}

	// Clobber the original and restore.
	writeFile(t, original, "corrupted")
	if err := m.Restore(info); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored, _ := os.ReadFile(original)
	if string(restored) != `{"a":1}` {
		t.Errorf("restored content = %q", restored)
	}
}

func TestCreateMissingOriginal(t *testing.T) {
	m := NewManager()
	_, err := m.Create(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, alpherrors.ErrBackupFailed) {
		t.Errorf("expected ErrBackupFailed, got %v", err)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	m := NewManager()
	err := m.Restore(&Info{
		OriginalPath: filepath.Join(t.TempDir(), "a.json"),
		BackupPath:   filepath.Join(t.TempDir(), "a.bak.20260101T000000Z.json"),
	})
	if !errors.Is(err, alpherrors.ErrRollbackFailed) {
		t.Errorf("expected ErrRollbackFailed, got %v", err)
	}
}

func TestBackupNameEncodesTimestamp(t *testing.T) {
	ts := time.Date(2026, 8, 30, 10, 15, 30, 0, time.UTC)
	got := backupPathFor("/cfg/settings.json", ts)
	want := filepath.Join("/cfg", "settings.bak.20260830T101530Z.json")
	if got != want {
		t.Errorf("backupPathFor = %q, want %q", got, want)
	}

	// No extension
	got = backupPathFor("/cfg/config", ts)
	want = filepath.Join("/cfg", "config.bak.20260830T101530Z")
	if got != want {
		t.Errorf("backupPathFor = %q, want %q", got, want)
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		entry string
		base  string
		ok    bool
	}{
		{"settings.bak.20260830T101530Z.json", "settings.json", true},
		{"settings.bak.notatimestamp.json", "settings.json", false},
		{"settings.json", "settings.json", false},
		{"other.bak.20260830T101530Z.json", "settings.json", false},
		{"settings.bak.20260830T101530Z.toml", "settings.json", false},
		{"config.bak.20260830T101530Z", "config", true},
	}

	for _, tt := range tests {
		_, ok := parseBackupName(tt.entry, tt.base)
		if ok != tt.ok {
			t.Errorf("parseBackupName(%q, %q) ok = %v, want %v", tt.entry, tt.base, ok, tt.ok)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "mcp.json")
	writeFile(t, original, "{}")

	// Fabricate backups out of listing order.
	stamps := []string{"20260101T000000Z", "20260301T000000Z", "20260201T000000Z"}
	for _, s := range stamps {
		writeFile(t, filepath.Join(dir, "mcp.bak."+s+".json"), "{}")
	}
	// One with an invalid timestamp, silently excluded.
	writeFile(t, filepath.Join(dir, "mcp.bak.garbage.json"), "{}")

	m := NewManager()
	infos, err := m.List(original)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i].Timestamp.After(infos[i-1].Timestamp) {
			t.Error("List not sorted newest first")
		}
	}
	if infos[0].Timestamp.Format(TimestampLayout) != "20260301T000000Z" {
		t.Errorf("newest = %v", infos[0].Timestamp)
	}
}

func TestListMissingDirectory(t *testing.T) {
	m := NewManager()
	infos, err := m.List(filepath.Join(t.TempDir(), "nosuchdir", "mcp.json"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if infos != nil {
		t.Errorf("expected nil, got %d entries", len(infos))
	}
}

func TestCreateCollisionWithinSecond(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "mcp.json")
	writeFile(t, original, "{}")

	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithClock(func() time.Time { return fixed }))

	first, err := m.Create(original)
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Create(original)
	if err != nil {
		t.Fatal(err)
	}
	if first.BackupPath == second.BackupPath {
		t.Errorf("backup paths collided: %s", first.BackupPath)
	}
}

func TestPruneByCount(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "mcp.json")
	writeFile(t, original, "{}")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range 15 {
		ts := base.Add(time.Duration(i) * time.Hour)
		writeFile(t, backupPathFor(original, ts), "{}")
	}

	now := base.Add(24 * time.Hour)
	m := NewManager(
		WithMaxCount(10),
		WithMaxAge(365*24*time.Hour),
		WithClock(func() time.Time { return now }),
	)

	deleted, err := m.Prune(original)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if deleted != 5 {
		t.Errorf("Prune deleted %d, want 5", deleted)
	}

	infos, _ := m.List(original)
	if len(infos) != 10 {
		t.Fatalf("%d backups remain, want 10", len(infos))
	}
	// The five oldest must be the ones removed.
	oldest := infos[len(infos)-1].Timestamp
	if oldest.Before(base.Add(5 * time.Hour)) {
		t.Errorf("oldest remaining = %v, the 5 oldest should have gone", oldest)
	}
}

func TestPruneByAge(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "mcp.json")
	writeFile(t, original, "{}")

	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	writeFile(t, backupPathFor(original, now.Add(-40*24*time.Hour)), "{}")
	writeFile(t, backupPathFor(original, now.Add(-10*24*time.Hour)), "{}")

	m := NewManager(
		WithMaxAge(30*24*time.Hour),
		WithMaxCount(10),
		WithClock(func() time.Time { return now }),
	)

	deleted, err := m.Prune(original)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted %d, want 1", deleted)
	}

	infos, _ := m.List(original)
	if len(infos) != 1 {
		t.Fatalf("%d backups remain, want 1", len(infos))
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "mcp.json")
	writeFile(t, original, "{}")

	m := NewManager()
	latest, err := m.Latest(original)
	if err != nil {
		t.Fatal(err)
	}
	if latest != nil {
		t.Errorf("expected nil with no backups, got %+v", latest)
	}

	writeFile(t, backupPathFor(original, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)), "{}")
	writeFile(t, backupPathFor(original, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)), "{}")

	latest, err = m.Latest(original)
	if err != nil {
		t.Fatal(err)
	}
	if latest == nil || latest.Timestamp.Month() != time.June {
		t.Errorf("Latest = %+v, want the June backup", latest)
	}
}
