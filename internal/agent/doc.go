// Package agent defines the uniform provider contract that every supported
// AI coding tool implements, and the shared Base adapter most providers are
// built from.
//
// # Providers
//
// A Provider knows where its tool keeps MCP server configuration, how to
// detect an installation, and how to rewrite the file through the safe-edit
// lifecycle. Per-tool packages (cursor, claude, gemini, windsurf, kiro,
// warp, codex, generic) construct a Base with a Spec describing their
// layout: config paths, the JSON key the server map lives under, the codec,
// the structural validator, and optional hooks for tools that nest project
// entries inside the global file.
//
// # Registry
//
// The Registry fans detection and write operations out across providers
// concurrently. Each provider's edit is independently protected by the
// safe-edit engine; there is no transaction spanning multiple agents'
// files.
package agent
