package fileops

import (
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	alpherrors "github.com/alph-cli/alph/internal/errors"
)

// AtomicMode selects the finalize strategy for atomic writes.
type AtomicMode string

const (
	// ModeAuto renames, falling back to copy on cross-device or permission
	// failures. This is the default.
	ModeAuto AtomicMode = "auto"

	// ModeCopy always finalizes by copy + fsync. Useful on filesystems where
	// rename misbehaves (some network shares, some Windows setups).
	ModeCopy AtomicMode = "copy"

	// ModeRename always finalizes by rename, with no fallback.
	ModeRename AtomicMode = "rename"
)

// ParseAtomicMode maps a configuration string to an AtomicMode.
// Unrecognized values fall back to ModeAuto.
func ParseAtomicMode(s string) AtomicMode {
	switch AtomicMode(strings.ToLower(s)) {
	case ModeCopy:
		return ModeCopy
	case ModeRename:
		return ModeRename
	default:
		return ModeAuto
	}
}

// tempPath returns the temp-file sibling for path: <path>.tmp.<16-hex>.
func tempPath(path string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return path + ".tmp." + hex[:16]
}

// AtomicWrite writes content to path such that a reader never observes a
// partially-written file. Content goes to a temp sibling first, then the
// temp file is finalized by rename or, depending on the mode, by
// copy + fsync + delete-temp.
//
// The temp file never survives the call: on any failure it is removed
// best-effort, and cleanup errors are swallowed so they cannot mask the
// original error.
func (o *Ops) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	return o.guard("writing", path, func() error {
		return o.atomicWrite(path, data, perm)
	})
}

func (o *Ops) atomicWrite(path string, data []byte, perm os.FileMode) (err error) {
	tmp := tempPath(path)

	defer func() {
		if err != nil {
			// Best-effort cleanup; never masks the write error.
			os.Remove(tmp)
		}
	}()

	f, createErr := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if createErr != nil {
		return errors.Mark(errors.Wrapf(createErr, "creating temp file for %s", path), alpherrors.ErrWriteFailed)
	}

	if _, writeErr := f.Write(data); writeErr != nil {
		f.Close()
		return errors.Mark(errors.Wrapf(writeErr, "writing temp file for %s", path), alpherrors.ErrWriteFailed)
	}
	if syncErr := f.Sync(); syncErr != nil {
		f.Close()
		return errors.Mark(errors.Wrapf(syncErr, "syncing temp file for %s", path), alpherrors.ErrWriteFailed)
	}
	if closeErr := f.Close(); closeErr != nil {
		return errors.Mark(errors.Wrapf(closeErr, "closing temp file for %s", path), alpherrors.ErrWriteFailed)
	}

	switch o.mode {
	case ModeCopy:
		return o.finalizeByCopy(tmp, path, perm)
	case ModeRename:
		return finalizeByRename(tmp, path)
	default:
		renameErr := finalizeByRename(tmp, path)
		if renameErr == nil {
			return nil
		}
		if isRenameFallbackError(renameErr) {
			o.log.Debug("rename failed, falling back to copy",
				"path", path, "cause", renameErr.Error())
			return o.finalizeByCopy(tmp, path, perm)
		}
		return renameErr
	}
}

func finalizeByRename(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		return errors.Mark(errors.Wrapf(err, "renaming temp file to %s", path), alpherrors.ErrWriteFailed)
	}
	return nil
}

// finalizeByCopy copies the temp file over the destination, fsyncs it, and
// removes the temp file. Less atomic than rename but immune to cross-device
// and rename-permission quirks.
func (o *Ops) finalizeByCopy(tmp, path string, perm os.FileMode) error {
	src, err := os.Open(tmp)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "opening temp file for %s", path), alpherrors.ErrWriteFailed)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "opening %s for copy", path), alpherrors.ErrWriteFailed)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return errors.Mark(errors.Wrapf(err, "copying into %s", path), alpherrors.ErrWriteFailed)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return errors.Mark(errors.Wrapf(err, "syncing %s", path), alpherrors.ErrWriteFailed)
	}
	if err := dst.Close(); err != nil {
		return errors.Mark(errors.Wrapf(err, "closing %s", path), alpherrors.ErrWriteFailed)
	}

	// Swallowed: the destination is complete, a stale temp file is cosmetic.
	os.Remove(tmp)
	return nil
}

// isRenameFallbackError reports whether a rename failure should trigger the
// copy fallback: cross-device links and permission refusals qualify, anything
// else (e.g. disk full) does not.
func isRenameFallbackError(err error) bool {
	if errors.Is(err, syscall.EXDEV) {
		return true
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		if errors.Is(linkErr.Err, syscall.EXDEV) || os.IsPermission(linkErr.Err) {
			return true
		}
	}
	return os.IsPermission(err)
}
