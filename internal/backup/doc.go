// Package backup creates and manages timestamped sibling copies of
// configuration files.
//
// A backup of /home/u/.cursor/mcp.json taken at 2026-08-30 10:15:30 UTC is
// written to /home/u/.cursor/mcp.bak.20260830T101530Z.json. The timestamp in
// the name is the single source of truth for ordering: listing parses and
// validates it, and pruning applies both an age window and a retained-count
// limit against it regardless of directory listing order.
//
// Backups are byte-identical copies. Rollback restores one over the original
// and verifies the result before reporting success.
package backup
