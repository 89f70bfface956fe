// Package paths centralizes filesystem path resolution for alph.
//
// It maps each supported AI coding agent to its native MCP configuration
// file, both global (home-relative) and project-scoped, plus the legacy
// locations still probed during detection and the ALPH_<AGENT>_CONFIG
// override variables. It also wraps XDG base-directory lookups for alph's
// own config and data files.
package paths
