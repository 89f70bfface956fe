// Package render maps canonical MCP server descriptors into each agent's
// native configuration fragment.
//
// Rendering is pure: given identical input it always produces identical
// output, performs no I/O, and never mutates the input descriptor. Every
// entry is a fresh object; maps and slices are copied, never aliased.
//
// The per-agent, per-transport shapes are dispatched through an explicit
// strategy table keyed by (agent, transport). An unsupported pair is a
// lookup failure, not a silent fall-through to some generic shape: external
// tools validate these files against exact key names, so every shape is
// spelled out.
package render

import (
	"github.com/cockroachdb/errors"

	"github.com/alph-cli/alph/internal/mcp"
	"github.com/alph-cli/alph/internal/paths"
)

// AgentGeneric names the file-path-driven provider for tools that follow
// the plain {mcpServers: {...}} convention.
const AgentGeneric = "generic"

// Func renders one server entry for one (agent, transport) pair.
type Func func(cfg *mcp.ServerConfig) map[string]any

type key struct {
	agent     string
	transport mcp.Transport
}

// table is the complete shape dispatch. Adding an agent means adding its
// rows here; a missing row surfaces as an explicit error from Entry.
var table = map[key]Func{
	{paths.AgentCursor, mcp.TransportStdio}: cursorStdio,
	{paths.AgentCursor, mcp.TransportSSE}:   cursorSSE,
	{paths.AgentCursor, mcp.TransportHTTP}:  cursorHTTP,

	{paths.AgentClaude, mcp.TransportStdio}: claudeStdio,
	{paths.AgentClaude, mcp.TransportSSE}:   claudeSSE,
	{paths.AgentClaude, mcp.TransportHTTP}:  claudeHTTP,

	{paths.AgentGemini, mcp.TransportStdio}: geminiStdio,
	{paths.AgentGemini, mcp.TransportSSE}:   geminiSSE,
	{paths.AgentGemini, mcp.TransportHTTP}:  geminiHTTP,

	{paths.AgentWindsurf, mcp.TransportStdio}: windsurfStdio,
	{paths.AgentWindsurf, mcp.TransportSSE}:   windsurfRemote,
	{paths.AgentWindsurf, mcp.TransportHTTP}:  windsurfRemote,

	{paths.AgentKiro, mcp.TransportStdio}: kiroStdio,
	{paths.AgentKiro, mcp.TransportSSE}:   kiroRemote,
	{paths.AgentKiro, mcp.TransportHTTP}:  kiroRemote,

	{paths.AgentWarp, mcp.TransportStdio}: warpStdio,
	{paths.AgentWarp, mcp.TransportSSE}:   warpRemote,
	{paths.AgentWarp, mcp.TransportHTTP}:  warpRemote,

	{paths.AgentCodex, mcp.TransportStdio}: codexStdio,
	{paths.AgentCodex, mcp.TransportSSE}:   codexRemote,
	{paths.AgentCodex, mcp.TransportHTTP}:  codexRemote,

	{AgentGeneric, mcp.TransportStdio}: genericStdio,
	{AgentGeneric, mcp.TransportSSE}:   genericRemote,
	{AgentGeneric, mcp.TransportHTTP}:  genericRemote,
}

// Entry renders the native server entry for agent. The input is validated
// first so shape functions can assume a consistent descriptor.
func Entry(agent string, cfg *mcp.ServerConfig) (map[string]any, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, ok := table[key{agent, cfg.Transport}]
	if !ok {
		return nil, errors.Newf("agent %q does not support transport %q", agent, string(cfg.Transport))
	}
	return fn(cfg), nil
}

// Fragment renders the full injectable fragment {<serversKey>: {<id>: entry}}.
func Fragment(agent, serversKey string, cfg *mcp.ServerConfig) (map[string]any, error) {
	entry, err := Entry(agent, cfg)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		serversKey: map[string]any{
			cfg.ServerID: entry,
		},
	}, nil
}

// Supports reports whether the table has a row for the pair.
func Supports(agent string, transport mcp.Transport) bool {
	_, ok := table[key{agent, transport}]
	return ok
}

// putCommand sets command plus optional args and env. Shared by the stdio
// shapes that take no extra keys.
func putCommand(entry map[string]any, cfg *mcp.ServerConfig) {
	entry["command"] = cfg.Command
	if len(cfg.Args) > 0 {
		entry["args"] = copyStrings(cfg.Args)
	}
	if len(cfg.Env) > 0 {
		entry["env"] = copyMap(cfg.Env)
	}
}

// putHeaders sets headers only when at least one is present.
func putHeaders(entry map[string]any, cfg *mcp.ServerConfig) {
	if headers := cfg.EffectiveHeaders(); len(headers) > 0 {
		entry["headers"] = headers
	}
}

func copyStrings(xs []string) []string {
	out := make([]string, len(xs))
	copy(out, xs)
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
