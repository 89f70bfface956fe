// Package claude is the provider for Claude's ~/.claude.json.
//
// Claude keeps everything in one global file: top-level mcpServers for the
// user scope, and per-project entries nested under
// projects["<absolute project path>"].mcpServers. Project-scoped operations
// therefore edit the global file, addressing the matching project node.
package claude

import (
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/alph-cli/alph/internal/agent"
	"github.com/alph-cli/alph/internal/paths"
	"github.com/alph-cli/alph/internal/validate"
)

// New builds the Claude provider.
func New(deps agent.Deps) agent.Provider {
	return agent.NewBase(agent.Spec{
		Name:           paths.AgentClaude,
		ServersKey:     "mcpServers",
		NestedProjects: true,
		Validate:       validateDoc,
		Inject:         inject,
		Delete:         remove,
		IDs:            serverIDs,
	}, deps)
}

// serversFor navigates to the server map for the scope: the top-level map,
// or the project node's map when projectDir is given. create controls
// whether missing intermediate objects are materialized.
func serversFor(doc map[string]any, projectDir string, create bool) (map[string]any, error) {
	if projectDir == "" {
		if create {
			return agent.EnsureSection(doc, "mcpServers")
		}
		servers, _, err := agent.Section(doc, "mcpServers")
		return servers, err
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving project dir %q", projectDir)
	}

	if create {
		projects, err := agent.EnsureSection(doc, "projects")
		if err != nil {
			return nil, err
		}
		node, err := agent.EnsureSection(projects, abs)
		if err != nil {
			return nil, err
		}
		return agent.EnsureSection(node, "mcpServers")
	}

	projects, _, err := agent.Section(doc, "projects")
	if err != nil || projects == nil {
		return nil, err
	}
	node, _, err := agent.Section(projects, abs)
	if err != nil || node == nil {
		return nil, err
	}
	servers, _, err := agent.Section(node, "mcpServers")
	return servers, err
}

func inject(doc map[string]any, id string, entry map[string]any, projectDir string) error {
	servers, err := serversFor(doc, projectDir, true)
	if err != nil {
		return err
	}
	servers[id] = entry
	return nil
}

func remove(doc map[string]any, id string, projectDir string) (bool, error) {
	servers, err := serversFor(doc, projectDir, false)
	if err != nil || servers == nil {
		return false, err
	}
	if _, ok := servers[id]; !ok {
		return false, nil
	}
	delete(servers, id)
	return true, nil
}

func serverIDs(doc map[string]any, projectDir string) ([]string, error) {
	servers, err := serversFor(doc, projectDir, false)
	if err != nil || servers == nil {
		return nil, err
	}
	ids := make([]string, 0, len(servers))
	for id := range servers {
		ids = append(ids, id)
	}
	return ids, nil
}

// validateDoc checks every server map in the document: the top-level one
// and each project node's.
func validateDoc(doc map[string]any) *validate.Result {
	result := &validate.Result{}

	servers, _, err := agent.Section(doc, "mcpServers")
	if err != nil {
		result.Addf("mcpServers", "%v", err)
	} else {
		validateServers(result, "mcpServers", servers)
	}

	projects, _, err := agent.Section(doc, "projects")
	if err != nil {
		result.Addf("projects", "%v", err)
		return result
	}
	for projectPath, raw := range projects {
		node, ok := agent.EntryMap(raw)
		if !ok {
			result.Add("projects."+projectPath, "project node is not an object", raw)
			continue
		}
		nested, _, err := agent.Section(node, "mcpServers")
		if err != nil {
			result.Addf("projects."+projectPath+".mcpServers", "%v", err)
			continue
		}
		validateServers(result, "projects."+projectPath+".mcpServers", nested)
	}
	return result
}

func validateServers(result *validate.Result, prefix string, servers map[string]any) {
	for id, raw := range servers {
		entry, ok := agent.EntryMap(raw)
		if !ok {
			result.Add(prefix+"."+id, "entry is not an object", raw)
			continue
		}

		typ, _ := agent.StringField(entry, "type")
		url, hasURL := agent.StringField(entry, "url")

		switch typ {
		case "sse", "http":
			if !hasURL || url == "" {
				result.Add(prefix+"."+id+".url", typ+" entry requires a url", entry["url"])
			}
		case "":
			if !hasURL {
				command, ok := agent.StringField(entry, "command")
				if !ok || command == "" {
					result.Add(prefix+"."+id+".command", "stdio entry requires a non-empty command", entry["command"])
				}
			}
		default:
			result.Add(prefix+"."+id+".type", "unknown transport type", typ)
		}
	}
}
