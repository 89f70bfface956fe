// Package windsurf is the provider for Windsurf's mcp_config.json.
package windsurf

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Windsurf provider. Windsurf has a single global
// mcp_config.json under ~/.codeium/windsurf and no project-scoped file.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:       paths.AgentWindsurf,
		ServersKey: "mcpServers",
		Validate:   validateDoc,
	}, deps)
}

// validateDoc checks that every entry is either a stdio server (command)
// or a remote server (serverUrl), never neither.
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

		command, hasCommand := agent.StringField(entry, "command")
		serverURL, hasServerURL := agent.StringField(entry, "serverUrl")

		switch {
		case hasServerURL:
			if serverURL == "" {
				result.Add("mcpServers."+id+".serverUrl", "serverUrl must be non-empty", serverURL)
			}
		case hasCommand:
			if command == "" {
				result.Add("mcpServers."+id+".command", "command must be non-empty", command)
			}
			if args, present := entry["args"]; present && !agent.IsArray(args) {
				result.Add("mcpServers."+id+".args", "args must be an array", args)
			}
		default:
			result.Add("mcpServers."+id, "entry needs a command or a serverUrl", nil)
		}
	}
	return result
}
