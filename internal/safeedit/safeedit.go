// Package safeedit orchestrates the backup, modify, validate, write,
// re-validate, rollback lifecycle applied to every configuration mutation.
//
// The engine is the single place where rollback is decided. Callers supply a
// modifier (the business logic: inject or remove a server entry) and an
// optional validator (a structural predicate over the candidate document);
// the engine guarantees that a failure at any point after the initial backup
// attempts to restore the file to its pre-edit content.
package safeedit

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/alph-cli/alph/internal/backup"
	alpherrors "github.com/alph-cli/alph/internal/errors"
	"github.com/alph-cli/alph/internal/fileops"
	"github.com/alph-cli/alph/internal/logging"
)

// Modifier transforms the current document into the candidate document.
// The engine treats it as a black box; it must not perform I/O on the
// target file.
type Modifier func(doc map[string]any) (map[string]any, error)

// Validator checks a candidate document for structural correctness.
// A non-nil return aborts the edit (before the write) or triggers rollback
// (after it).
type Validator func(doc map[string]any) error

// Result reports the outcome of one Edit call.
type Result struct {
	// Success is true when the file holds the validated candidate document.
	Success bool

	// Backup describes the pre-edit backup, when one was created.
	Backup *backup.Info

	// Err carries the failure, nil on success.
	Err error
}

// Engine runs safe edits against configuration files.
type Engine struct {
	ops     *fileops.Ops
	backups *backup.Manager
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// New creates an Engine using the given file operations and backup manager.
func New(ops *fileops.Ops, backups *backup.Manager, opts ...Option) *Engine {
	e := &Engine{
		ops:     ops,
		backups: backups,
		log:     logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// editConfig holds per-call settings.
type editConfig struct {
	codec        fileops.Codec
	validator    Validator
	createBackup bool
	autoRollback bool
}

// EditOption configures a single Edit call.
type EditOption func(*editConfig)

// WithValidator sets the structural validator run before and after the write.
func WithValidator(v Validator) EditOption {
	return func(c *editConfig) {
		c.validator = v
	}
}

// WithCodec sets the document codec. Defaults to JSON.
func WithCodec(codec fileops.Codec) EditOption {
	return func(c *editConfig) {
		c.codec = codec
	}
}

// WithoutBackup disables the pre-edit backup.
func WithoutBackup() EditOption {
	return func(c *editConfig) {
		c.createBackup = false
	}
}

// WithoutRollback disables automatic restore on failure.
func WithoutRollback() EditOption {
	return func(c *editConfig) {
		c.autoRollback = false
	}
}

// Edit runs the safe-edit lifecycle against path.
//
// When the file pre-exists and backups are enabled, a failed backup aborts
// before anything else happens: the engine never edits a file it could not
// back up. A missing file is not an error; the modifier starts from an empty
// document and the write creates the file.
func (e *Engine) Edit(path string, modifier Modifier, opts ...EditOption) Result {
	cfg := editConfig{
		codec:        fileops.JSON,
		createBackup: true,
		autoRollback: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	exists := e.ops.FileExists(path)

	var info *backup.Info
	if cfg.createBackup && exists {
		created, err := e.backups.Create(path)
		if err != nil {
			return Result{Err: errors.Wrapf(err, "backing up %s before edit", path)}
		}
		info = created
		e.log.Debug("backup created", "path", path, "backup", info.BackupPath)
	}

	// fail wraps an error in a Result, restoring the backup first when
	// rollback applies. A rollback failure is combined with the original
	// error, never substituted for it.
	fail := func(err error) Result {
		if cfg.autoRollback && info != nil {
			if restoreErr := e.backups.Restore(info); restoreErr != nil {
				err = errors.CombineErrors(err, restoreErr)
			} else {
				e.log.Debug("rolled back after failure", "path", path)
			}
		}
		return Result{Backup: info, Err: err}
	}

	var doc map[string]any
	if exists {
		read, err := e.ops.ReadDoc(path, cfg.codec)
		if err != nil {
			return fail(err)
		}
		doc = read
	} else {
		doc = make(map[string]any)
	}

	candidate, err := modifier(doc)
	if err != nil {
		return fail(errors.Wrapf(err, "modifying %s", path))
	}

	if cfg.validator != nil {
		if err := cfg.validator(candidate); err != nil {
			// Nothing has been written; the file stays untouched.
			return Result{
				Backup: info,
				Err: errors.Mark(
					errors.Wrapf(err, "pre-write validation of %s", path),
					alpherrors.ErrValidationFailed,
				),
			}
		}
	}

	if err := e.ops.WriteDoc(path, cfg.codec, candidate); err != nil {
		return fail(err)
	}

	// Re-read and re-validate what actually landed on disk. This defends
	// against serialization bugs and write-time corruption.
	written, err := e.ops.ReadDoc(path, cfg.codec)
	if err != nil {
		return fail(errors.Wrapf(err, "re-reading %s after write", path))
	}
	if cfg.validator != nil {
		if err := cfg.validator(written); err != nil {
			vErr := errors.Mark(
				errors.Wrapf(err, "post-write validation of %s", path),
				alpherrors.ErrValidationFailed,
			)
			if cfg.autoRollback && info != nil {
				return fail(vErr)
			}
			// No backup to restore from: the file stays in its new,
			// invalid state and the failure is surfaced as-is.
			return Result{Backup: info, Err: vErr}
		}
	}

	return Result{Success: true, Backup: info}
}
