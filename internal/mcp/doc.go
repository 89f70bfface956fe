// Package mcp defines the canonical Model Context Protocol server
// descriptors that the rest of alph operates on.
//
// A [ServerConfig] captures one registration intent independently of any
// agent's native file format; per-agent renderers translate it into each
// tool's idiosyncratic JSON or TOML shape. A [RemovalConfig] captures the
// matching removal intent, including the scope policy for agents that keep
// both global and project-local server lists.
package mcp
