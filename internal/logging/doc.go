// Package logging provides structured logging for the alph CLI.
//
// It wraps log/slog with a TTY-optimized text handler (colorized when the
// output supports it), a JSON handler for machine consumption, and automatic
// redaction of credential-bearing attribute values. MCP server descriptors
// carry access keys in headers and env maps, so every attribute passes
// through the redaction filter before being written.
package logging
