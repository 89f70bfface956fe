package agent

import "github.com/cockroachdb/errors"

// Helpers for navigating parsed configuration documents. Documents arrive in
// two representations: freshly built in memory (Go-native values such as
// []string and map[string]string inside the rendered entry) and re-read from
// disk (everything decoded to map[string]any, []any, string, float64).
// Validators and section navigation must tolerate both.

// Section returns doc[key] as a map. The bool reports presence; a present
// value of the wrong type is an error, never silently replaced.
func Section(doc map[string]any, key string) (map[string]any, bool, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, true, errors.Newf("key %q holds %T, expected an object", key, raw)
	}
	return section, true, nil
}

// EnsureSection returns doc[key] as a map, creating it when absent.
func EnsureSection(doc map[string]any, key string) (map[string]any, error) {
	section, present, err := Section(doc, key)
	if err != nil {
		return nil, err
	}
	if !present {
		section = make(map[string]any)
		doc[key] = section
	}
	return section, nil
}

// EntryMap returns a server entry as a map, false for any other shape.
func EntryMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// StringField returns the string value of entry[key], false when the key is
// absent or holds a non-string.
func StringField(entry map[string]any, key string) (string, bool) {
	v, ok := entry[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IsArray reports whether v is a slice in either representation.
func IsArray(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	}
	return false
}

// FirstArg returns args[0] as a string from either slice representation.
func FirstArg(v any) (string, bool) {
	switch args := v.(type) {
	case []string:
		if len(args) > 0 {
			return args[0], true
		}
	case []any:
		if len(args) > 0 {
			s, ok := args[0].(string)
			return s, ok
		}
	}
	return "", false
}
