package backup

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	alpherrors "github.com/alph-cli/alph/internal/errors"
	"github.com/alph-cli/alph/internal/logging"
)

// TimestampLayout is the format encoded into backup file names.
// Example: settings.bak.20260830T101530Z.json
const TimestampLayout = "20060102T150405Z"

// Default retention policy.
const (
	// DefaultMaxAge is how long backups are kept before pruning.
	DefaultMaxAge = 30 * 24 * time.Hour

	// DefaultMaxCount is how many backups are retained per file.
	DefaultMaxCount = 10
)

// Info describes one backup of one file.
type Info struct {
	// OriginalPath is the file the backup was taken from.
	OriginalPath string

	// BackupPath is the timestamped sibling copy.
	BackupPath string

	// Timestamp is when the backup was created (UTC, second resolution).
	Timestamp time.Time
}

// Manager creates, lists, restores, and prunes sibling backups of
// configuration files.
type Manager struct {
	maxAge   time.Duration
	maxCount int
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxAge sets the retention window used by Prune.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

// WithMaxCount sets the retention count used by Prune.
func WithMaxCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxCount = n
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the logger for prune diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager creates a backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		maxAge:   DefaultMaxAge,
		maxCount: DefaultMaxCount,
		now:      time.Now,
		log:      logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// backupPathFor builds the sibling path for a backup of path at ts:
// <dir>/<stem>.bak.<timestamp><ext>
func backupPathFor(path string, ts time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+".bak."+ts.UTC().Format(TimestampLayout)+ext)
}

// parseBackupName extracts the timestamp from a directory entry that backs up
// originalBase. Returns false for names that do not match the pattern or
// carry an invalid timestamp.
func parseBackupName(entry, originalBase string) (time.Time, bool) {
	ext := filepath.Ext(originalBase)
	stem := strings.TrimSuffix(originalBase, ext)

	prefix := stem + ".bak."
	if !strings.HasPrefix(entry, prefix) {
		return time.Time{}, false
	}
	middle := strings.TrimPrefix(entry, prefix)
	if ext != "" {
		if !strings.HasSuffix(middle, ext) {
			return time.Time{}, false
		}
		middle = strings.TrimSuffix(middle, ext)
	}

	ts, err := time.Parse(TimestampLayout, middle)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Create copies path to a timestamped sibling and verifies the copy exists.
// It fails with ErrBackupFailed when the original is missing or unreadable.
func (m *Manager) Create(path string) (*Info, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "opening %s for backup", path),
			alpherrors.ErrBackupFailed,
		)
	}
	defer src.Close()

	ts := m.now().UTC().Truncate(time.Second)
	dst := backupPathFor(path, ts)
	// Second-resolution timestamps collide when two edits land within one
	// second; advance until the name is free.
	for {
		if _, statErr := os.Stat(dst); os.IsNotExist(statErr) {
			break
		}
		ts = ts.Add(time.Second)
		dst = backupPathFor(path, ts)
	}

	if err := copyFile(src, dst); err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "copying %s to %s", path, dst),
			alpherrors.ErrBackupFailed,
		)
	}

	// Verify the copy landed before reporting success.
	if _, err := os.Stat(dst); err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "verifying backup %s", dst),
			alpherrors.ErrBackupFailed,
		)
	}

	return &Info{
		OriginalPath: path,
		BackupPath:   dst,
		Timestamp:    ts,
	}, nil
}

// Restore copies the backup content back over the original path and verifies
// the restored file exists. It fails with ErrRollbackFailed when the backup
// is missing or unreadable.
func (m *Manager) Restore(info *Info) error {
	if info == nil {
		return errors.Mark(errors.New("nil backup info"), alpherrors.ErrRollbackFailed)
	}

	src, err := os.Open(info.BackupPath)
	if err != nil {
		return errors.Mark(
			errors.Wrapf(err, "opening backup %s", info.BackupPath),
			alpherrors.ErrRollbackFailed,
		)
	}
	defer src.Close()

	if err := copyFile(src, info.OriginalPath); err != nil {
		return errors.Mark(
			errors.Wrapf(err, "restoring %s", info.OriginalPath),
			alpherrors.ErrRollbackFailed,
		)
	}

	if _, err := os.Stat(info.OriginalPath); err != nil {
		return errors.Mark(
			errors.Wrapf(err, "verifying restored file %s", info.OriginalPath),
			alpherrors.ErrRollbackFailed,
		)
	}
	return nil
}

// List returns all backups of path found in its directory, newest first.
// Entries with unparseable timestamps are silently excluded.
func (m *Manager) List(path string) ([]Info, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupName(entry.Name(), base)
		if !ok {
			continue
		}
		infos = append(infos, Info{
			OriginalPath: path,
			BackupPath:   filepath.Join(dir, entry.Name()),
			Timestamp:    ts,
		})
	}

	slices.SortFunc(infos, func(a, b Info) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return infos, nil
}

// Latest returns the most recent backup of path, or nil when none exist.
func (m *Manager) Latest(path string) (*Info, error) {
	infos, err := m.List(path)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}
	return &infos[0], nil
}

// Prune deletes backups of path that are older than the retention window OR
// beyond the retained count (newest kept). Per-file deletion errors are
// logged and do not abort the sweep.
func (m *Manager) Prune(path string) (deleted int, err error) {
	infos, err := m.List(path)
	if err != nil {
		return 0, err
	}

	cutoff := m.now().UTC().Add(-m.maxAge)
	for i, info := range infos {
		if i < m.maxCount && !info.Timestamp.Before(cutoff) {
			continue
		}
		if rmErr := os.Remove(info.BackupPath); rmErr != nil {
			m.log.Warn("pruning backup failed",
				"backup", info.BackupPath, "error", rmErr.Error())
			continue
		}
		deleted++
	}
	return deleted, nil
}

// copyFile streams an open source file into dst, truncating any existing
// content.
func copyFile(src *os.File, dst string) error {
	info, err := src.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrap(err, "creating destination")
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrap(err, "copying content")
	}
	return out.Close()
}
