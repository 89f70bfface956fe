package mcp

import (
	"github.com/cockroachdb/errors"
)

// Transport identifies how an agent communicates with an MCP server.
type Transport string

const (
	// TransportStdio is local process communication via stdin/stdout.
	TransportStdio Transport = "stdio"

	// TransportHTTP is remote communication over streamable HTTP.
	TransportHTTP Transport = "http"

	// TransportSSE is remote communication via Server-Sent Events.
	TransportSSE Transport = "sse"
)

// Valid returns true for a recognized transport value.
func (t Transport) Valid() bool {
	switch t {
	case TransportStdio, TransportHTTP, TransportSSE:
		return true
	}
	return false
}

// Remote returns true for network transports.
func (t Transport) Remote() bool {
	return t == TransportHTTP || t == TransportSSE
}

// ServerConfig is the write intent for one MCP server registration.
// It is constructed by the command layer and treated as immutable here;
// renderers build fresh per-agent entries from it and never mutate it.
type ServerConfig struct {
	// ServerID is the unique name the entry is registered under.
	ServerID string

	// Transport selects stdio, http, or sse.
	Transport Transport

	// URL is the endpoint for remote transports.
	URL string

	// AccessKey, when set, is sent as a bearer Authorization header unless
	// Headers already carries one.
	AccessKey string

	// Headers are HTTP headers for remote transports.
	Headers map[string]string

	// Env holds environment variables for the server process.
	Env map[string]string

	// Command is the executable for stdio transport.
	Command string

	// Args are arguments for Command.
	Args []string

	// Cwd is the working directory for stdio servers (agents that support it).
	Cwd string

	// TimeoutMS is a per-server timeout in milliseconds (agents that support it).
	TimeoutMS int

	// ConfigDir optionally overrides the directory the target config file is
	// resolved against; for project-scoped agents it names the project root.
	ConfigDir string
}

// RemovalScope controls which configuration scopes a removal touches.
type RemovalScope string

const (
	// ScopeAuto tries the global scope, then likely project roots (the
	// working directory and the enclosing git repository root).
	ScopeAuto RemovalScope = "auto"

	// ScopeGlobal touches only the agent-wide configuration.
	ScopeGlobal RemovalScope = "global"

	// ScopeProject touches only the project-scoped configuration.
	ScopeProject RemovalScope = "project"

	// ScopeAll touches every scope the agent supports.
	ScopeAll RemovalScope = "all"
)

// RemovalConfig is the write intent for removing a server registration.
type RemovalConfig struct {
	// ServerID is the entry to remove.
	ServerID string

	// ConfigDir optionally names the project root for project scopes.
	ConfigDir string

	// Scope defaults to ScopeAuto when empty.
	Scope RemovalScope

	// Backup controls whether a backup is taken before the edit.
	Backup bool
}

// EffectiveScope returns the scope with the auto default applied.
func (r *RemovalConfig) EffectiveScope() RemovalScope {
	if r.Scope == "" {
		return ScopeAuto
	}
	return r.Scope
}

// Validate checks that the write intent is internally consistent.
func (c *ServerConfig) Validate() error {
	if c.ServerID == "" {
		return errors.New("server id is required")
	}
	if !c.Transport.Valid() {
		return errors.Newf("invalid transport %q", string(c.Transport))
	}
	if c.Transport == TransportStdio && c.Command == "" {
		return errors.New("stdio transport requires a command")
	}
	if c.Transport.Remote() && c.URL == "" {
		return errors.Newf("%s transport requires a url", string(c.Transport))
	}
	return nil
}

// EffectiveHeaders returns a fresh header map with the access key folded in
// as a bearer Authorization header when none is present. The returned map is
// never the one stored on the config.
func (c *ServerConfig) EffectiveHeaders() map[string]string {
	out := make(map[string]string, len(c.Headers)+1)
	for k, v := range c.Headers {
		out[k] = v
	}
	if c.AccessKey != "" {
		if _, ok := out["Authorization"]; !ok {
			out["Authorization"] = "Bearer " + c.AccessKey
		}
	}
	return out
}
