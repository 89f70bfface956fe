// Package errors provides error handling conventions for the alph CLI.
//
// This package defines sentinel errors for the failure taxonomy of the
// configuration-edit engine, an ExitError type for CLI exit code handling,
// and exit code constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, alpherrors.ErrNotFound) {
//	    // handle not found case
//	}
//
// Context attachment is done with github.com/cockroachdb/errors, so a wrapped
// sentinel still matches:
//
//	return errors.Wrapf(alpherrors.ErrParse, "reading %s", path)
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
package errors
