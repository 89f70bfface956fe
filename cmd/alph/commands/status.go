package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// statusFormat holds the value of the --format flag.
var statusFormat string

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "table",
		"output format: table, json, yaml")
	rootCmd.AddCommand(statusCmd)
}

// agentStatus is one agent's row in the detection report.
type agentStatus struct {
	Agent    string   `json:"agent" yaml:"agent"`
	Detected bool     `json:"detected" yaml:"detected"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Servers  []string `json:"servers,omitempty" yaml:"servers,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show agent detection and configuration overview",
	Long: `Show which agents are installed, where their config files live,
whether those files pass the agent's structural validation, and which
MCP servers are registered.

An agent whose config file exists but cannot be read or parsed is
reported as an error rather than as not installed.

Examples:
  # Human-readable table
  alph status

  # Machine-readable output for scripting
  alph status --format json
  alph status --format yaml`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	reg := newRegistry(newDeps())

	detections := reg.DetectAll(ctx, agentsFlag, dirFlag)
	statuses := make([]agentStatus, 0, len(detections))
	for _, d := range detections {
		st := agentStatus{Agent: d.Agent, Detected: d.Detected, Path: d.Path}
		if d.Err != nil {
			st.Error = d.Err.Error()
		}
		if d.Detected {
			if p, ok := reg.Lookup(d.Agent); ok {
				st.Valid = p.Validate()
				if servers, err := p.ListServers(dirFlag); err == nil {
					st.Servers = servers
				}
			}
		}
		statuses = append(statuses, st)
	}

	switch statusFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(statuses)
	case "table":
		printStatusTable(statuses)
		return nil
	default:
		return errors.Newf("invalid --format %q: must be table, json, or yaml", statusFormat)
	}
}

func printStatusTable(statuses []agentStatus) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%-10s %-10s %-8s %-8s %s\n", "AGENT", "DETECTED", "VALID", "SERVERS", "PATH")
	for _, st := range statuses {
		detected := gray("no")
		valid := gray("-")
		servers := gray("-")
		path := gray("-")

		switch {
		case st.Error != "":
			detected = red("error")
			path = truncate(st.Error, 60)
		case st.Detected:
			detected = green("yes")
			if st.Valid {
				valid = green("yes")
			} else {
				valid = red("no")
			}
			servers = fmt.Sprintf("%d", len(st.Servers))
			path = st.Path
		}
		fmt.Printf("%-10s %-10s %-8s %-8s %s\n", st.Agent, detected, valid, servers, path)
	}
}
