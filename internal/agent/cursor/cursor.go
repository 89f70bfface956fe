// Package cursor is the provider for Cursor's mcp.json files.
package cursor

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Cursor provider. Cursor keeps a flat mcpServers map in
// ~/.cursor/mcp.json globally and <project>/.cursor/mcp.json per project.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentCursor,
		ServersKey: "mcpServers",
		Validate:   validateDoc,
	}, deps)
}

// validateDoc checks Cursor's structural rules: an entry without a url is a
// stdio server and must carry a non-empty command; an sse entry must carry
// a url.
func validateDoc(doc map[string]any) *validate.Result {
	result := &validate.Result{}

	servers, present, err := agent.Section(doc, "mcpServers")
	if err != nil {
		result.Addf("mcpServers", "%v", err)
		return result
	}
	if !present {
		return result
	}

	for id, raw := range servers {
		entry, ok := agent.EntryMap(raw)
		if !ok {
			result.Add("mcpServers."+id, "entry is not an object", raw)
			continue
		}

		typ, _ := agent.StringField(entry, "type")
		_, hasURL := agent.StringField(entry, "url")

		if typ == "sse" && !hasURL {
			result.Add("mcpServers."+id+".url", "sse entry requires a url", nil)
			continue
		}
		if !hasURL {
			command, ok := agent.StringField(entry, "command")
			if !ok || command == "" {
				result.Add("mcpServers."+id+".command", "stdio entry requires a non-empty command", entry["command"])
			}
			if args, present := entry["args"]; present && !agent.IsArray(args) {
				result.Add("mcpServers."+id+".args", "args must be an array", args)
			}
		}
	}
	return result
}
