// Package fileops provides the primitive file operations underlying the
// safe-edit pipeline: classified reads, atomic writes, existence and
// permission probes, all raced against a configurable timeout so a hung
// filesystem cannot block the process indefinitely.
package fileops

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	alpherrors "github.com/alph-cli/alph/internal/errors"
	"github.com/alph-cli/alph/internal/logging"
)

// DefaultTimeout is the per-operation I/O budget when none is configured.
const DefaultTimeout = 15 * time.Second

// Ops performs file operations with timeout and atomic-write semantics.
type Ops struct {
	timeout time.Duration
	mode    AtomicMode
	log     *slog.Logger
}

// Option configures an Ops.
type Option func(*Ops)

// WithTimeout sets the per-operation I/O budget.
// Non-positive values disable the timeout guard.
func WithTimeout(d time.Duration) Option {
	return func(o *Ops) {
		o.timeout = d
	}
}

// WithAtomicMode forces an atomic-write finalize strategy.
func WithAtomicMode(mode AtomicMode) Option {
	return func(o *Ops) {
		o.mode = mode
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(o *Ops) {
		o.log = log
	}
}

// New creates an Ops with the given options.
func New(opts ...Option) *Ops {
	o := &Ops{
		timeout: DefaultTimeout,
		mode:    ModeAuto,
		log:     logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// guard runs fn, failing with ErrTimeout if it does not complete within the
// configured budget. The goroutine running fn is not cancelled; it finishes
// in the background and its result is discarded.
func (o *Ops) guard(op, path string, fn func() error) error {
	if o.timeout <= 0 {
		return fn()
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(o.timeout):
		return errors.Mark(
			errors.Newf("%s %s: no completion within %s", op, path, o.timeout),
			alpherrors.ErrTimeout,
		)
	}
}

// classify re-wraps an OS-level error with a path-bearing message and marks
// it with the matching sentinel so callers never interpret raw errno values.
func classify(err error, op, path string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrapf(err, "%s %s", op, path)
	switch {
	case os.IsNotExist(err):
		return errors.Mark(wrapped, alpherrors.ErrNotFound)
	case os.IsPermission(err):
		return errors.Mark(wrapped, alpherrors.ErrPermissionDenied)
	default:
		return wrapped
	}
}

// ReadFile reads the full content of a file.
// Fails with ErrNotFound, ErrPermissionDenied, or ErrTimeout.
func (o *Ops) ReadFile(path string) ([]byte, error) {
	var data []byte
	err := o.guard("reading", path, func() error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return classify(readErr, "reading", path)
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ReadDoc reads and decodes a configuration document using the given codec.
// A decode failure is marked ErrParse.
func (o *Ops) ReadDoc(path string, codec Codec) (map[string]any, error) {
	data, err := o.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc := make(map[string]any)
	if err := codec.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "parsing %s as %s", path, codec.Name()),
			alpherrors.ErrParse,
		)
	}
	return doc, nil
}

// WriteDoc encodes a configuration document with the given codec and writes
// it atomically.
func (o *Ops) WriteDoc(path string, codec Codec, doc map[string]any) error {
	data, err := codec.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encoding %s as %s", path, codec.Name())
	}
	return o.AtomicWrite(path, data, 0o644)
}

// ReadJSON reads and parses a JSON file into a generic document.
func (o *Ops) ReadJSON(path string) (map[string]any, error) {
	return o.ReadDoc(path, JSON)
}

// WriteJSON writes a document as 2-space pretty-printed JSON, atomically.
func (o *Ops) WriteJSON(path string, doc map[string]any) error {
	return o.WriteDoc(path, JSON, doc)
}

// FileExists returns true if path exists and is a regular file.
func (o *Ops) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsReadable returns true if the file can be opened for reading.
func (o *Ops) IsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// IsWritable returns true if the file can be opened for writing, or, when it
// does not exist, if its parent directory accepts new files.
func (o *Ops) IsWritable(path string) bool {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err == nil {
		f.Close()
		return true
	}
	if !os.IsNotExist(err) {
		return false
	}
	// Probe the parent directory with a throwaway entry.
	probe := path + ".probe"
	pf, probeErr := os.OpenFile(probe, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if probeErr != nil {
		return false
	}
	pf.Close()
	os.Remove(probe)
	return true
}

// Stat returns file info with classified errors.
func (o *Ops) Stat(path string) (fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, classify(err, "stat", path)
	}
	return info, nil
}

// Delete removes a file. Deleting a missing file is not an error.
func (o *Ops) Delete(path string) error {
	return o.guard("deleting", path, func() error {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		return classify(err, "deleting", path)
	})
}

// EnsureDir creates the directory and any parents.
func (o *Ops) EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o755
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return classify(err, "creating directory", path)
	}
	return nil
}
