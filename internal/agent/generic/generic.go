// Package generic is the provider for tools that follow the plain
// {"mcpServers": {...}} convention but are not individually supported. The
// caller supplies the config file path.
package generic

import (
	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/render"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds a generic provider over an explicit config file path. There is
// no detection table for it: the supplied path is the only candidate, and
// no env var overrides it.
func New(path string, deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:               render.AgentGeneric,
		ServersKey:         "mcpServers",
		Validate:           validateDoc,
		DisableEnvOverride: true,
		GlobalPath:         func() string { return path },
		ProjectPath:        func(string) string { return "" },
		Legacy:             func() []string { return nil },
	}, deps)
}

// validateDoc applies the lowest-common-denominator rules: entries are
// objects, stdio entries have a command, typed remote entries have a url.
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

		_, hasURL := agent.StringField(entry, "url")
		typ, hasType := agent.StringField(entry, "type")

		switch {
		case hasType:
			if typ != "sse" && typ != "http" {
				result.Add("mcpServers."+id+".type", "unknown transport type", typ)
			}
			if !hasURL {
				result.Add("mcpServers."+id+".url", "remote entry requires a url", nil)
			}
		case hasURL:
			// untyped remote entry, acceptable
		default:
			command, ok := agent.StringField(entry, "command")
			if !ok || command == "" {
				result.Add("mcpServers."+id+".command", "stdio entry requires a non-empty command", entry["command"])
			}
		}
	}
	return result
}
