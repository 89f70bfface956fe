package agent

import "github.com/alph-cli/alph/internal/mcp"

// Provider is the per-tool adapter contract. It is the sole surface the
// command layer calls.
//
// Implementations must be safe for concurrent use by the Registry; the
// in-memory last-backup reference is the only mutable state a Base carries
// and it is mutex-protected.
type Provider interface {
	// Name returns the agent identifier (claude, cursor, gemini, ...).
	Name() string

	// Detect probes the agent's candidate config paths in order: explicit
	// env override, configDir-relative project path, platform default,
	// then legacy locations. It returns the first candidate that exists,
	// is readable, and parses; an empty path when none exist; and an
	// error when a candidate exists but cannot be read or parsed, which
	// distinguishes "not installed" from "installed but broken".
	Detect(configDir string) (string, error)

	// Configure renders the server entry in the agent's native shape and
	// injects it through the safe-edit engine, preserving all unrelated
	// document content. It returns the backup path when a backup was made.
	Configure(cfg *mcp.ServerConfig, backup bool) (string, error)

	// Remove deletes the server entry from every scope the removal's
	// policy implies. It fails with a NotFound kind when the id is absent
	// from all of them, leaving every file untouched.
	Remove(rm *mcp.RemovalConfig) (string, error)

	// ListServers returns the server ids currently registered, empty (not
	// an error) when the file or section is absent.
	ListServers(configDir string) ([]string, error)

	// HasServer reports whether the id is registered.
	HasServer(id, configDir string) (bool, error)

	// Validate re-reads the current config file and reports structural
	// correctness. Failures of any kind read as false, never as an error.
	Validate() bool

	// Rollback restores the most recent backup, preferring the in-memory
	// reference from the last edit and falling back to the on-disk backup
	// history. It returns the restored backup path, or an empty path when
	// no backup exists. A restore that fails re-validation is an error:
	// the caller must know the rollback itself is suspect.
	Rollback() (string, error)
}
