// Package validate provides the structural-validation framework shared by
// agent providers.
//
// Each provider checks the parsed configuration document against its own
// partial schema and reports a list of violations (field path + reason)
// rather than a bare boolean, preserving debuggability while the public
// provider contract stays Validate() bool.
package validate

import (
	"fmt"
	"strings"
)

// Violation represents a single structural problem in a configuration
// document.
type Violation struct {
	// Path identifies the offending field, e.g. "mcpServers.github.command".
	Path string

	// Reason is a human-readable description of the problem.
	Reason string

	// Value is the offending value, when useful (optional).
	Value any
}

// Error implements the error interface.
func (v Violation) Error() string {
	var sb strings.Builder
	if v.Path != "" {
		sb.WriteString(v.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(v.Reason)
	if v.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", v.Value)
	}
	return sb.String()
}

// Result aggregates violations found in one document.
type Result struct {
	Violations []Violation
}

// Add appends a violation.
func (r *Result) Add(path, reason string, value any) {
	r.Violations = append(r.Violations, Violation{Path: path, Reason: reason, Value: value})
}

// Addf appends a violation with a formatted reason and no value.
func (r *Result) Addf(path, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// OK returns true when no violations were recorded.
func (r *Result) OK() bool {
	return r == nil || len(r.Violations) == 0
}

// Err returns an error summarizing all violations, or nil when the result
// is clean.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Error())
	}
	return fmt.Errorf("%d violation(s): %s", len(r.Violations), strings.Join(msgs, "; "))
}

// Merge appends all violations from other into r.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}
