package agent

import (
	"log/slog"
	"time"

	"github.com/alph-cli/alph/internal/backup"
	"github.com/alph-cli/alph/internal/config"
	"github.com/alph-cli/alph/internal/fileops"
	"github.com/alph-cli/alph/internal/logging"
	"github.com/alph-cli/alph/internal/safeedit"
)

// Deps bundles the shared machinery every provider composes. One Deps value
// is built at startup and handed to each provider constructor so they all
// share the same file-operation budget, backup retention policy, and
// safe-edit engine.
type Deps struct {
	Ops     *fileops.Ops
	Backups *backup.Manager
	Engine  *safeedit.Engine
	Log     *slog.Logger
}

// NewDeps builds the provider dependencies from loaded configuration.
func NewDeps(cfg *config.Config, log *slog.Logger) Deps {
	if log == nil {
		log = logging.NewDiscard()
	}

	ops := fileops.New(
		fileops.WithTimeout(cfg.IOTimeout()),
		fileops.WithAtomicMode(fileops.ParseAtomicMode(cfg.AtomicMode)),
		fileops.WithLogger(log),
	)

	backupOpts := []backup.Option{backup.WithLogger(log)}
	if cfg.Backup.MaxAgeDays > 0 {
		backupOpts = append(backupOpts, backup.WithMaxAge(time.Duration(cfg.Backup.MaxAgeDays)*24*time.Hour))
	}
	if cfg.Backup.MaxCount > 0 {
		backupOpts = append(backupOpts, backup.WithMaxCount(cfg.Backup.MaxCount))
	}
	backups := backup.NewManager(backupOpts...)

	return Deps{
		Ops:     ops,
		Backups: backups,
		Engine:  safeedit.New(ops, backups, safeedit.WithLogger(log)),
		Log:     log,
	}
}

// TestDeps builds dependencies with defaults suitable for tests.
func TestDeps(log *slog.Logger) Deps {
	if log == nil {
		log = logging.NewDiscard()
	}
	ops := fileops.New(fileops.WithLogger(log))
	backups := backup.NewManager(backup.WithLogger(log))
	return Deps{
		Ops:     ops,
		Backups: backups,
		Engine:  safeedit.New(ops, backups, safeedit.WithLogger(log)),
		Log:     log,
	}
}
